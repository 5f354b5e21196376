package services

import "crypto/rand"

const (
	oneTimePasswordLength   = 10
	oneTimePasswordAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// GenerateOneTimePassword returns a random temporary credential drawn from
// crypto/rand. It is delivered to the user once and only its bcrypt hash is
// persisted.
func GenerateOneTimePassword() (string, error) {
	// Bytes at or above limit are discarded so every alphabet character is
	// equally likely; a plain modulo would skew toward the first characters.
	limit := byte(256 - 256%len(oneTimePasswordAlphabet))

	out := make([]byte, 0, oneTimePasswordLength)
	buf := make([]byte, oneTimePasswordLength)
	for len(out) < oneTimePasswordLength {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if b >= limit {
				continue
			}
			out = append(out, oneTimePasswordAlphabet[int(b)%len(oneTimePasswordAlphabet)])
			if len(out) == oneTimePasswordLength {
				break
			}
		}
	}
	return string(out), nil
}
