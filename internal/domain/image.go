package domain

// GeneratedImage is a decoded image ready to be written to disk
type GeneratedImage struct {
	// Index is the 1-based position of the entry in the provider response.
	Index int
	Bytes []byte
	Path  string
}

// GenerationRecord is the sidecar written next to a batch of images
type GenerationRecord struct {
	Prompt string   `json:"prompt"`
	Files  []string `json:"files"`
}
