package idgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomGenerator_Format(t *testing.T) {
	g := NewRandomGenerator()

	for i := 0; i < 200; i++ {
		code := g.NewCode()
		assert.Len(t, code, CodeLength)
		assert.Regexp(t, "^[0-9A-Z]{8}$", code)
	}
}

func TestRandomGenerator_Uniqueness(t *testing.T) {
	g := NewRandomGenerator()
	codes := make(map[string]bool)

	for i := 0; i < 1000; i++ {
		codes[g.NewCode()] = true
	}

	// Should generate different codes (at least 99% unique)
	assert.Greater(t, len(codes), 990)
}
