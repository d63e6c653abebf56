package logging

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigureRedirectsDefaultLogger(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wd.log")

	closer, err := Configure(path)
	require.NoError(t, err)
	t.Cleanup(func() {
		closer.Close()
		log.SetOutput(os.Stderr)
	})

	Infof("listening on %s", "stdin")
	Warnf("retrying %d", 3)
	Errorf("failed: %v", "boom")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)
	require.True(t, strings.Contains(contents, "INFO: listening on stdin"))
	require.True(t, strings.Contains(contents, "WARN: retrying 3"))
	require.True(t, strings.Contains(contents, "ERROR: failed: boom"))
}

func TestConfigureEmptyPathLeavesLoggerUnset(t *testing.T) {
	closer, err := Configure("")
	require.NoError(t, err)
	require.Nil(t, closer)
}
