// internal/utils/slug_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Alejandra González", "alejandra-gonzalez"},
		{"Juan Pablo", "juan-pablo"},
		{"  María  Peñalosa  ", "maria-penalosa"},
		{"ÑOÑO", "nono"},
		{"TVS Sport 100!", "tvs-sport-100"},
		{"a--b", "a-b"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateSlug(tt.input))
		})
	}
}

func TestGenerateSlugIdempotent(t *testing.T) {
	// A generated slug must survive another pass unchanged; the resolver
	// relies on this when it re-slugs identifiers that are already slugs.
	inputs := []string{"Alejandra González", "Juan Pablo", "tricargo-200-refrigerado"}
	for _, in := range inputs {
		once := GenerateSlug(in)
		assert.Equal(t, once, GenerateSlug(once))
	}
}
