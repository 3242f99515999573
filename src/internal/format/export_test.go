// FILE: eventweaver/src/internal/format/export_test.go
package format

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteExport(t *testing.T) {
	t.Run("PlainJSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out", "events.json")
		require.NoError(t, WriteExport(path, sampleEvents(), 2))

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		var decoded []map[string]any
		require.NoError(t, json.Unmarshal(data, &decoded))
		require.Len(t, decoded, 2)
		assert.Equal(t, "api", decoded[0]["source"])
		assert.Equal(t, "worker-1", decoded[1]["source"])
	})

	t.Run("GzipBySuffix", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "events.json.gz")
		require.NoError(t, WriteExport(path, sampleEvents(), 0))

		file, err := os.Open(path)
		require.NoError(t, err)
		defer file.Close()

		zr, err := gzip.NewReader(file)
		require.NoError(t, err)
		defer zr.Close()

		data, err := io.ReadAll(zr)
		require.NoError(t, err)

		var decoded []map[string]any
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Len(t, decoded, 2)
	})

	t.Run("UnwritablePath", func(t *testing.T) {
		dir := t.TempDir()
		err := WriteExport(dir, sampleEvents(), 0)
		require.Error(t, err)
	})
}
