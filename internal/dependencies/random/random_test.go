package random

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenLengthAndAlphabet(t *testing.T) {
	r := New()
	for _, n := range []int{1, 7, 40, 300} {
		tok, err := r.Token(n)
		require.NoError(t, err)
		assert.Len(t, tok, n)
		for _, c := range tok {
			assert.True(t, strings.ContainsRune(TokenAlphabet, c), "unexpected %q", c)
		}
	}
}

func TestTokenEmpty(t *testing.T) {
	tok, err := New().Token(0)
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestTokensDiffer(t *testing.T) {
	r := New()
	a, err := r.Token(40)
	require.NoError(t, err)
	b, err := r.Token(40)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
