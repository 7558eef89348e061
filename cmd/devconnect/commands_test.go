package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorize(t *testing.T) {
	old := noColor
	defer func() { noColor = old }()

	noColor = true
	assert.Equal(t, "hello", colorize(colorGreen, "hello"))

	noColor = false
	result := colorize(colorGreen, "hello")
	assert.True(t, strings.Contains(result, "\033["), "expected ANSI codes, got %q", result)
}

func TestTokenRoundtrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	assert.Empty(t, loadToken())

	require.NoError(t, saveToken("tok-abc"))
	assert.Equal(t, "tok-abc", loadToken())

	clearToken()
	assert.Empty(t, loadToken())
}

func TestProfileGetRequiresArg(t *testing.T) {
	defer rootCmd.SetArgs(nil)

	rootCmd.SetArgs([]string{"profile", "get"})
	err := rootCmd.Execute()
	require.Error(t, err)
}
