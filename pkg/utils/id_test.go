package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSessionID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := GenerateSessionID()
		require.NoError(t, err)
		assert.Len(t, id, sessionIDLength)
		assert.Empty(t, strings.Trim(id, characters))
		assert.False(t, seen[id])
		seen[id] = true
	}
}
