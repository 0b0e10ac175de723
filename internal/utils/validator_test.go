// internal/utils/validator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slugPayload struct {
	Slug string `validate:"slug"`
}

type phonePayload struct {
	Phone string `validate:"co_phone"`
}

func TestSlugValidator(t *testing.T) {
	valid := []string{"alejandra-gonzalez", "juan-pablo", "tvs-sport-100"}
	invalid := []string{"Juan-Pablo", "doble--guion", "-inicio", "final-", "a", "con espacios"}

	for _, s := range valid {
		assert.NoError(t, ValidateStruct(&slugPayload{Slug: s}), s)
	}
	for _, s := range invalid {
		assert.Error(t, ValidateStruct(&slugPayload{Slug: s}), s)
	}
}

func TestColombianPhoneValidator(t *testing.T) {
	valid := []string{"3177352000", "317 735 2000", "573177352000", "57-317-735-2000"}
	invalid := []string{"12345", "31773520001", "583177352000"}

	for _, p := range valid {
		assert.NoError(t, ValidateStruct(&phonePayload{Phone: p}), p)
	}
	for _, p := range invalid {
		assert.Error(t, ValidateStruct(&phonePayload{Phone: p}), p)
	}
}

func TestGetValidationErrors(t *testing.T) {
	err := ValidateStruct(&phonePayload{Phone: "12345"})
	require.Error(t, err)

	errs := GetValidationErrors(err)
	require.Len(t, errs, 1)
	assert.Equal(t, "phone", errs[0].Field)
	assert.Equal(t, "co_phone", errs[0].Tag)
}
