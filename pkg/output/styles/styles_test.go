package styles

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultStyles(t *testing.T) {
	for _, name := range []string{"heading", "link", "copy", "unlink", "skip", "error", "path"} {
		t.Run(name, func(t *testing.T) {
			assert.True(t, Has(name), "style %s should be defined", name)
		})
	}
	assert.False(t, Has("missing"))
}

func TestGetUnknownStyle(t *testing.T) {
	assert.Equal(t, lipgloss.NewStyle().Render("x"), Get("missing").Render("x"))
}

func TestLoad(t *testing.T) {
	t.Cleanup(func() {
		require.NoError(t, Load(defaultStyles))
	})

	err := Load([]byte(`
colors:
  accent:
    light: "#000000"
    dark: "#ffffff"
styles:
  custom:
    bold: true
    foreground: accent
`))
	require.NoError(t, err)
	assert.True(t, Has("custom"))
	assert.False(t, Has("link"))

	assert.Error(t, Load([]byte("styles: [unclosed")))
	assert.True(t, Has("custom"), "a failed load keeps the current styles")
}

func TestConfigurePlainOutput(t *testing.T) {
	Configure(&bytes.Buffer{})
	assert.Equal(t, "linked", Render("link", "linked"))
	assert.Equal(t, "failed", Render("error", "failed"))
}
