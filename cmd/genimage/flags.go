package main

import (
	"errors"
	"strings"
)

// inputList collects every -i value. Blank values are rejected.
type inputList []string

func (l *inputList) String() string {
	if l == nil || len(*l) == 0 {
		return ""
	}
	return strings.Join(*l, ",")
}

func (l *inputList) Set(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return errors.New("input path must not be empty")
	}
	*l = append(*l, v)
	return nil
}

const defaultSize = "1024x1024"

// resolutionSizes maps the -resolution shorthand to an API size.
var resolutionSizes = map[string]string{
	"1K": "1024x1024",
	"2K": "1536x1024",
	"4K": "1536x1024",
}

// sizeForResolution looks up res case-insensitively, falling back to defaultSize.
func sizeForResolution(res string) string {
	if size, ok := resolutionSizes[strings.ToUpper(strings.TrimSpace(res))]; ok {
		return size
	}
	return defaultSize
}
