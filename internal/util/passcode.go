package util

import "crypto/rand"

const (
	passcodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	PasscodeLength   = 6
)

// GeneratePasscode returns a 6-character class passcode over A-Z0-9.
// Passcodes are not checked for uniqueness across classes; a collision
// only matters if two classes share one, which at 36^6 is tolerated.
func GeneratePasscode() string {
	buf := make([]byte, PasscodeLength)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	for i, b := range buf {
		buf[i] = passcodeAlphabet[int(b)%len(passcodeAlphabet)]
	}
	return string(buf)
}
