package regexmap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadParsesOrderedMappings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "regexes.yaml")
	contents := `
mappings:
  - pattern: '^(?P<level>[A-Z])(?P<datetime>\d{4} \d{2}:\d{2}:[\d\.]+)\s+\d+ (?P<file>\S+:\d+)\] (?P<text>.+)$'
    datetime: "0102 15:04:05.000000"
    datetime_prepend: "2006"
  - pattern: '^(?P<a>\S+) (?P<b>\S+)$'
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	mappings, err := Load(path)
	require.NoError(t, err)
	require.Len(t, mappings, 2)
	require.Equal(t, "2006", mappings[0].DatetimePrepend)
	require.Equal(t, "", mappings[1].Datetime)
}

func TestLoadRejectsInvalidPattern(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "regexes.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mappings:\n  - pattern: '(unclosed'\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
