package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeneratePasscode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := GeneratePasscode()
		assert.Len(t, code, PasscodeLength)
		for _, ch := range code {
			assert.True(t, strings.ContainsRune(passcodeAlphabet, ch), "unexpected character %q in %s", ch, code)
		}
		seen[code] = true
	}
	// 100 draws from a 36^6 space should not all collide.
	assert.Greater(t, len(seen), 1)
}
