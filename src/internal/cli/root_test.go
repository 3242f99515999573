// FILE: eventweaver/src/internal/cli/root_test.go
package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCommand executes the root command with args, capturing output.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

// writeFixtures lays out two jsonl sources and a config referencing
// them, returning the config path.
func writeFixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	api := `{"ts": "2025-03-01T10:00:00Z", "level": 2, "msg": "service started", "user": "amy"}
{"ts": "2025-03-01T10:00:12Z", "level": 3, "msg": "authentication warning"}
`
	worker := `{"ts": "2025-03-01T10:00:05Z", "msg": "queue drained"}
`
	cfg := `
[defaults]
timestamp_field = "ts"
severity_field = "level"
message_field = "msg"

[[sources]]
name = "api"
path = "api.jsonl"
kind = "jsonl"
metadata_fields = ["user"]

[[sources]]
name = "worker"
path = "worker.jsonl"
kind = "jsonl"

[heuristics]
gap_ms = 5000
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "api.jsonl"), []byte(api), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "worker.jsonl"), []byte(worker), 0644))
	path := filepath.Join(dir, "weave.toml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0644))
	return path
}

func TestRootCommand(t *testing.T) {
	t.Run("MissingConfigIsCommandError", func(t *testing.T) {
		_, err := runCommand(t, "fuse", "--quiet",
			"--config", filepath.Join(t.TempDir(), "absent.toml"))
		require.Error(t, err)
		assert.Equal(t, ExitCommandError, GetExitCode(err))
	})

	t.Run("UnknownSubcommand", func(t *testing.T) {
		_, err := runCommand(t, "nonsense")
		require.Error(t, err)
	})
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "weave")
}
