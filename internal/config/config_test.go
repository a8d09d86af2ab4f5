package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/metcalfc/booklet/internal/dictionary"
	"github.com/metcalfc/booklet/internal/markup"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	for name, path := range map[string]string{
		"empty path":   "",
		"missing file": filepath.Join(t.TempDir(), "nope.yaml"),
	} {
		t.Run(name, func(t *testing.T) {
			cfg, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, DefaultConfig(), *cfg)
			assert.Equal(t, dictionary.DefaultEndpoint, cfg.Dictionary.Endpoint)
			assert.Equal(t, "#f0f0f0", cfg.Theme.Text)
		})
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
theme:
  text: "#dddddd"
  dim: "#101010"
dictionary:
  endpoint: http://localhost:8080/entries/
  timeout: 3s
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "#dddddd", cfg.Theme.Text)
	assert.Equal(t, "#101010", cfg.Theme.Dim)
	assert.Equal(t, DefaultConfig().Theme.Marker, cfg.Theme.Marker, "unset colors keep defaults")
	assert.Equal(t, "http://localhost:8080/entries/", cfg.Dictionary.Endpoint)
	assert.Equal(t, 3*time.Second, cfg.Dictionary.Timeout)
}

func TestLoadEmptyValuesFallBack(t *testing.T) {
	path := writeConfig(t, `
theme:
  text: ""
dictionary:
  endpoint: ""
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), *cfg)
}

func TestLoadParseError(t *testing.T) {
	path := writeConfig(t, "theme: [not, a, map")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestLoadInvalid(t *testing.T) {
	path := writeConfig(t, `
theme:
  text: chartreuse
  marker: "#12"
dictionary:
  endpoint: ftp://example.com/
  timeout: -2s
`)

	_, err := Load(path)
	require.Error(t, err)

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.NotEmpty(t, fieldErrs)

	for _, field := range []string{"theme.text", "theme.marker", "dictionary.endpoint", "dictionary.timeout"} {
		assert.Contains(t, err.Error(), field)
	}
	assert.NotContains(t, err.Error(), "theme.selection")
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
	assert.Equal(t, filepath.Join("/tmp/xdg-config", "booklet", "config.yaml"), DefaultPath())
}

func TestViewerTheme(t *testing.T) {
	path := writeConfig(t, `
theme:
  marker: "#ff0000"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	theme, err := cfg.ViewerTheme(termenv.ANSI256)
	require.NoError(t, err)
	assert.Equal(t, termenv.ANSI256, theme.Palette.Profile)
	assert.Equal(t, "#ff0000", theme.Palette.Marker.Hex())
	assert.Equal(t, markup.RGB(240, 240, 240).Hex(), theme.Palette.Text.Hex())
	assert.Equal(t, "#c8c800", theme.Anchor.Hex())
}
