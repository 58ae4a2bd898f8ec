package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashStringStable(t *testing.T) {
	// The checksum must never change: existing backup files depend on it.
	require.Equal(t, "22ci", HashString("abc"))
	require.Equal(t, "0", HashString(""))

	require.Equal(t, HashString("payload"), HashString("payload"))
	require.NotEqual(t, HashString("payload"), HashString("payloae"))
}
