package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"alice@example.com",
		"alice.smith+tag@sub.example.co",
		"A_B-c%d@example.io",
	}
	for _, email := range valid {
		assert.True(t, ValidateEmail(email), email)
	}

	invalid := []string{
		"",
		"alice",
		"alice@",
		"@example.com",
		"alice@example",
		"alice @example.com",
	}
	for _, email := range invalid {
		assert.False(t, ValidateEmail(email), email)
	}
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("Sup3rSecret"))

	cases := map[string]string{
		"too short":  "Ab1",
		"no upper":   "lowercase1only",
		"no lower":   "UPPERCASE1ONLY",
		"no digit":   "NoDigitsHere",
		"empty":      "",
		"whitespace": "        ",
	}
	for name, password := range cases {
		assert.Error(t, ValidatePassword(password), name)
	}
}
