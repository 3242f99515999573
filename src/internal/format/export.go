// FILE: eventweaver/src/internal/format/export.go
package format

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"eventweaver/src/internal/core"

	"github.com/klauspost/compress/gzip"
)

// WriteExport writes events as a JSON array to path, creating parent
// directories as needed. A ".gz" suffix switches on gzip compression.
func WriteExport(path string, events []core.Event, indent int) error {
	payload, err := EventsJSON(events, indent)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	if strings.HasSuffix(path, ".gz") {
		zw := gzip.NewWriter(file)
		if _, err := zw.Write(payload); err != nil {
			zw.Close()
			return fmt.Errorf("failed to write export: %w", err)
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("failed to finalize export: %w", err)
		}
	} else {
		if _, err := file.Write(payload); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
	}

	return file.Close()
}
