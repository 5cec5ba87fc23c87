package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidTheme(t *testing.T) {
	t.Run("Accepts every listed theme", func(t *testing.T) {
		for _, theme := range Themes {
			assert.True(t, IsValidTheme(theme), "theme %q should be recognized", theme)
		}
	})

	t.Run("Rejects unknown values", func(t *testing.T) {
		assert.False(t, IsValidTheme("neon"))
		assert.False(t, IsValidTheme(""))
		assert.False(t, IsValidTheme("DARK"))
	})
}

func TestDefaultTheme(t *testing.T) {
	// The fallback value must itself be a member of the allow-list.
	assert.True(t, IsValidTheme(DefaultTheme))
	assert.Equal(t, ThemeDark, DefaultTheme)
}
