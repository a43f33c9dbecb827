package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMin(t *testing.T) {
	require.Equal(t, 1, Min(1, 2))
	require.Equal(t, 1, Min(2, 1))
	require.Equal(t, -3, Min(-3, 0))
}

func TestRandomAlphabetString(t *testing.T) {
	s := RandomAlphabetString(8)
	require.Len(t, s, 8)
	for _, c := range s {
		require.True(t, strings.ContainsRune(alphabet, c))
	}
}
