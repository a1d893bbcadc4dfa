// Package prompts supplies the prompt used when the caller does not give one.
package prompts

import (
	"fmt"
	"math/rand"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Defaults is the built-in prompt pool.
var Defaults = []string{
	"ultra-detailed studio photo of a lobster astronaut",
	"cinematic wide shot of a glasshouse cafe in a tropical rainforest, morning mist",
	"macro photograph of dewdrops on a spiderweb at sunrise, shallow depth of field",
	"isometric cutaway of a cozy cabin library, warm lighting, rainy window",
	"surreal desert landscape with floating rocks, golden hour light",
}

// Picker chooses a prompt from a pool using the supplied random source.
type Picker struct {
	pool []string
	rnd  *rand.Rand
}

// NewPicker returns a Picker over pool. An empty pool falls back to Defaults.
func NewPicker(pool []string, rnd *rand.Rand) *Picker {
	if len(pool) == 0 {
		pool = Defaults
	}
	return &Picker{pool: pool, rnd: rnd}
}

// Pick returns one prompt from the pool.
func (p *Picker) Pick() string {
	return p.pool[p.rnd.Intn(len(p.pool))]
}

// Resolve returns prompt when it is non-blank, otherwise a pick from the pool.
func (p *Picker) Resolve(prompt string) string {
	if strings.TrimSpace(prompt) != "" {
		return prompt
	}
	return p.Pick()
}

type promptFile struct {
	Prompts []string `yaml:"prompts"`
}

// LoadFile reads a YAML prompt pool of the form:
//
//	prompts:
//	  - first prompt
//	  - second prompt
func LoadFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompts file: %w", err)
	}

	var pf promptFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("failed to parse prompts file: %w", err)
	}

	pool := make([]string, 0, len(pf.Prompts))
	for _, p := range pf.Prompts {
		if p = strings.TrimSpace(p); p != "" {
			pool = append(pool, p)
		}
	}
	if len(pool) == 0 {
		return nil, fmt.Errorf("prompts file %s contains no prompts", path)
	}
	return pool, nil
}
