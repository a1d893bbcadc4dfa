package domain

import "strings"

// ModelFamily groups model identifiers that accept the same optional request fields.
type ModelFamily int

const (
	FamilyGeneric ModelFamily = iota
	FamilyDallE3
	FamilyGPTImage
)

// FamilyRules lists which optional fields a family accepts.
type FamilyRules struct {
	AllowStyle        bool
	AllowBackground   bool
	AllowOutputFormat bool
	// MaxCount is the largest n accepted per call; 0 means unbounded.
	MaxCount int
}

var familyRules = map[ModelFamily]FamilyRules{
	FamilyGeneric:  {},
	FamilyDallE3:   {AllowStyle: true, MaxCount: 1},
	FamilyGPTImage: {AllowBackground: true, AllowOutputFormat: true},
}

// familyPrefixes is checked in order; the first match wins.
var familyPrefixes = []struct {
	prefix string
	family ModelFamily
}{
	{"dall-e-3", FamilyDallE3},
	{"gpt-image", FamilyGPTImage},
}

// FamilyOf resolves the family for a model identifier
func FamilyOf(model string) ModelFamily {
	for _, p := range familyPrefixes {
		if strings.HasPrefix(model, p.prefix) {
			return p.family
		}
	}
	return FamilyGeneric
}

// Rules returns the field rules for the family
func (f ModelFamily) Rules() FamilyRules {
	return familyRules[f]
}

func (f ModelFamily) String() string {
	switch f {
	case FamilyDallE3:
		return "dall-e-3"
	case FamilyGPTImage:
		return "gpt-image"
	default:
		return "generic"
	}
}
