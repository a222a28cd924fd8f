package mocks

import (
	"errors"
	"strings"
	"sync"

	"github.com/taichi6930/race-schedule-api-sub006/internal/dependencies/random"
)

// ErrRandomExhausted is returned once a strict MockRandom runs out of tokens
var ErrRandomExhausted = errors.New("mock random: no tokens queued")

// MockRandom hands out queued tokens in order
type MockRandom struct {
	mu     sync.Mutex
	tokens []string

	// Strict makes an empty queue an error instead of a filler token
	Strict bool
}

var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a MockRandom preloaded with tokens
func NewMockRandom(tokens ...string) *MockRandom {
	return &MockRandom{tokens: tokens}
}

// Token returns the next queued token regardless of n. With nothing queued
// it returns n copies of 'x'.
func (r *MockRandom) Token(n int) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.tokens) == 0 {
		if r.Strict {
			return "", ErrRandomExhausted
		}
		return strings.Repeat("x", n), nil
	}
	tok := r.tokens[0]
	r.tokens = r.tokens[1:]
	return tok, nil
}

// Queue appends tokens
func (r *MockRandom) Queue(tokens ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens = append(r.tokens, tokens...)
}
