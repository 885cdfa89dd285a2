package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/tordrt/dbstructure/structure"
)

// TextFormatter renders a structure as compact text
type TextFormatter struct {
	writer io.Writer
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter(w io.Writer) *TextFormatter {
	return &TextFormatter{writer: w}
}

// Format writes the structure in compact text format
func (f *TextFormatter) Format(s *structure.Structure) error {
	for i := range s.Tables {
		if i > 0 {
			_, _ = fmt.Fprintln(f.writer) // Blank line between tables
		}

		if err := f.formatTable(&s.Tables[i]); err != nil {
			return err
		}
	}
	return nil
}

func (f *TextFormatter) formatTable(table *structure.Table) error {
	// Header line: kind, qualified name, primary key, storage flags
	pkStr := ""
	if pk := table.PrimaryKey(); len(pk) > 0 {
		pkStr = fmt.Sprintf(" (PK: %s)", strings.Join(pk, ", "))
	}
	flags := ""
	if table.WithoutRowid {
		flags += " WITHOUT ROWID"
	}
	if table.Strict {
		flags += " STRICT"
	}
	_, _ = fmt.Fprintf(f.writer, "%s %s.%s%s%s\n",
		strings.ToUpper(string(table.Kind)), table.Schema, table.Name, pkStr, flags)

	// Columns
	for i := range table.Columns {
		_, _ = fmt.Fprintf(f.writer, "  %s\n", f.formatColumn(&table.Columns[i]))
	}

	// Indexes
	if len(table.Indexes) > 0 {
		_, _ = fmt.Fprintln(f.writer)
		_, _ = fmt.Fprintln(f.writer, "  INDEXES:")
		for i := range table.Indexes {
			_, _ = fmt.Fprintf(f.writer, "    %s\n", f.formatIndex(&table.Indexes[i]))
		}
	}

	return nil
}

func (f *TextFormatter) formatColumn(col *structure.Column) string {
	parts := []string{col.Name + ":", col.Type}

	if col.NotNull {
		parts = append(parts, "NOT NULL")
	}

	if col.Default != nil {
		parts = append(parts, fmt.Sprintf("DEFAULT %s", *col.Default))
	}

	return strings.Join(parts, " ")
}

func (f *TextFormatter) formatIndex(idx *structure.Index) string {
	names := make([]string, len(idx.Columns))
	for i, c := range idx.Columns {
		names[i] = c.Name
		if names[i] == "" {
			names[i] = "<expr>"
		}
	}

	line := fmt.Sprintf("%s (%s)", idx.Name, strings.Join(names, ", "))
	if idx.Unique {
		line += " UNIQUE"
	}
	if idx.Partial {
		line += " PARTIAL"
	}
	if label := originLabel(idx.Origin); label != "" {
		line += " [" + label + "]"
	}
	return line
}

// originLabel describes constraint-generated indexes; explicit CREATE INDEX
// entries get no label.
func originLabel(origin structure.IndexOrigin) string {
	switch origin {
	case structure.OriginUnique:
		return "unique constraint"
	case structure.OriginPrimaryKey:
		return "primary key"
	default:
		return ""
	}
}
