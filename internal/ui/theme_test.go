package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetThemeByName(t *testing.T) {
	assert.Equal(t, "dark", GetTheme("dark").Name)
	assert.Equal(t, "light", GetTheme("light").Name)
}

func TestGetThemeFallsBackToDark(t *testing.T) {
	assert.Equal(t, "dark", GetTheme("solarized").Name)
	assert.Equal(t, "dark", GetTheme("").Name)
}
