package formatter

import (
	"encoding/json"
	"io"

	"github.com/tordrt/dbstructure/structure"
)

// JSONFormatter renders a structure as indented JSON. Because the tree is
// already normalized, the output is byte-stable for a given schema and can
// be diffed or compared directly.
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// Format writes the structure as one JSON document
func (f *JSONFormatter) Format(s *structure.Structure) error {
	enc := json.NewEncoder(f.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
