package random

import (
	"crypto/rand"
)

// TokenAlphabet is safe in URLs, headers and shell arguments
const TokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Random supplies the secret material for API keys. Swapped for a queue in
// tests so generated keys are predictable.
type Random interface {
	// Token returns n characters drawn uniformly from TokenAlphabet
	Token(n int) (string, error)
}

// CryptoRandom draws tokens from crypto/rand
type CryptoRandom struct{}

// New creates a new CryptoRandom
func New() *CryptoRandom {
	return &CryptoRandom{}
}

// Token implements Random. Bytes at or above the largest multiple of the
// alphabet size are discarded so every character is equally likely.
func (r *CryptoRandom) Token(n int) (string, error) {
	if n <= 0 {
		return "", nil
	}
	limit := byte(256 - 256%len(TokenAlphabet))
	out := make([]byte, 0, n)
	buf := make([]byte, n*2)
	for len(out) < n {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if b >= limit {
				continue
			}
			out = append(out, TokenAlphabet[int(b)%len(TokenAlphabet)])
			if len(out) == n {
				break
			}
		}
	}
	return string(out), nil
}
