package formatter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tordrt/dbstructure/structure"
)

// SnapshotWriter writes a structure to a directory of JSON files: one
// _structure.json with the whole tree plus one <schema>.<table>.json per
// table. Checking the directory into version control turns schema drift
// into per-table diffs.
type SnapshotWriter struct {
	OutputDir string
}

// NewSnapshotWriter creates a new snapshot writer
func NewSnapshotWriter(outputDir string) *SnapshotWriter {
	return &SnapshotWriter{OutputDir: outputDir}
}

// Format writes the structure to the snapshot directory
func (w *SnapshotWriter) Format(s *structure.Structure) error {
	// Create output directory if it doesn't exist
	if err := os.MkdirAll(w.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := w.writeFile("_structure.json", s); err != nil {
		return fmt.Errorf("failed to write structure file: %w", err)
	}

	for i := range s.Tables {
		table := &s.Tables[i]
		name := fmt.Sprintf("%s.%s.json", table.Schema, table.Name)
		if err := w.writeFile(name, table); err != nil {
			return fmt.Errorf("failed to write table file for %s.%s: %w", table.Schema, table.Name, err)
		}
	}

	return nil
}

func (w *SnapshotWriter) writeFile(name string, v any) error {
	file, err := os.Create(filepath.Join(w.OutputDir, name))
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
