package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestFamilyOf(t *testing.T) {
	tests := []struct {
		model    string
		expected ModelFamily
	}{
		{"dall-e-3", FamilyDallE3},
		{"dall-e-3-hd", FamilyDallE3},
		{"gpt-image-1", FamilyGPTImage},
		{"gpt-image-1-mini", FamilyGPTImage},
		{"dall-e-2", FamilyGeneric},
		{"", FamilyGeneric},
		{"DALL-E-3", FamilyGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			assert.Equal(t, tt.expected, FamilyOf(tt.model))
		})
	}
}

func TestFamilyRules(t *testing.T) {
	dalle := FamilyDallE3.Rules()
	assert.True(t, dalle.AllowStyle)
	assert.False(t, dalle.AllowBackground)
	assert.False(t, dalle.AllowOutputFormat)
	assert.Equal(t, 1, dalle.MaxCount)

	gpt := FamilyGPTImage.Rules()
	assert.False(t, gpt.AllowStyle)
	assert.True(t, gpt.AllowBackground)
	assert.True(t, gpt.AllowOutputFormat)
	assert.Zero(t, gpt.MaxCount)

	assert.Equal(t, FamilyRules{}, FamilyGeneric.Rules())
}

func TestFamilyOf_PrefixProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		suffix := rapid.StringMatching(`[a-z0-9-]{0,12}`).Draw(rt, "suffix")
		assert.Equal(rt, FamilyDallE3, FamilyOf("dall-e-3"+suffix))
		assert.Equal(rt, FamilyGPTImage, FamilyOf("gpt-image"+suffix))
	})
}
