package registry_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/killstats/internal/registry"
)

func TestParse(t *testing.T) {
	data := []byte(`
bosses:
  - Ferumbras
  - "  Arthom the Hunter "
  - ""
  - Ferumbras
  - Zulazza
`)
	names, err := registry.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ferumbras", "Arthom the Hunter", "Zulazza"}, names)
}

func TestParse_Empty(t *testing.T) {
	names, err := registry.Parse([]byte(""))
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestParse_Invalid(t *testing.T) {
	_, err := registry.Parse([]byte("bosses: [unterminated"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse registry YAML")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bosses.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bosses:\n  - Orshabaal\n"), 0o644))

	names, err := registry.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Orshabaal"}, names)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := registry.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read registry file")
}
