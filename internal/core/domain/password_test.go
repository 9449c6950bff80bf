package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordMD5(t *testing.T) {
	// md5("password")
	assert.Equal(t, "5f4dcc3b5aa765d61d8327deb882cf99", HashPasswordMD5("password"))
	// md5("")
	assert.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", HashPasswordMD5(""))
}

func TestGeneratePassword_Length(t *testing.T) {
	for _, n := range []int{8, 12, 32} {
		pw, err := GeneratePassword(n)
		require.NoError(t, err)
		assert.Len(t, pw, n)
	}
}

func TestGeneratePassword_MinimumLength(t *testing.T) {
	pw, err := GeneratePassword(3)

	require.NoError(t, err)
	assert.Len(t, pw, MinPasswordLength)
}

func TestGeneratePassword_ContainsEveryClass(t *testing.T) {
	for i := 0; i < 50; i++ {
		pw, err := GeneratePassword(MinPasswordLength)
		require.NoError(t, err)

		assert.True(t, strings.ContainsAny(pw, lowerChars), "missing lower in %q", pw)
		assert.True(t, strings.ContainsAny(pw, upperChars), "missing upper in %q", pw)
		assert.True(t, strings.ContainsAny(pw, digitChars), "missing digit in %q", pw)
		assert.True(t, strings.ContainsAny(pw, symbolChars), "missing symbol in %q", pw)
	}
}

func TestGeneratePassword_Varies(t *testing.T) {
	a, err := GeneratePassword(16)
	require.NoError(t, err)
	b, err := GeneratePassword(16)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}
