// Package structure defines the normalized schema description produced by
// dbstructure.
//
// A Structure is a value: every sequence in the tree is sorted by a rule that
// does not depend on creation order (tables by schema then name, columns by
// name, indexes by name, index key columns by their position within the key),
// so two structurally equivalent databases yield deeply-equal Structures.
// Callers compare trees with reflect.DeepEqual or by serializing them.
package structure

// TableKind identifies the kind of catalog object, as reported by SQLite's
// table_list pragma.
type TableKind string

const (
	KindTable   TableKind = "table"
	KindView    TableKind = "view"
	KindShadow  TableKind = "shadow"
	KindVirtual TableKind = "virtual"
)

// IndexOrigin records why an index exists, using SQLite's origin codes.
type IndexOrigin string

const (
	// OriginCreateIndex marks an index from an explicit CREATE INDEX.
	OriginCreateIndex IndexOrigin = "c"
	// OriginUnique marks an index generated for a UNIQUE constraint.
	OriginUnique IndexOrigin = "u"
	// OriginPrimaryKey marks an index generated for a PRIMARY KEY constraint.
	OriginPrimaryKey IndexOrigin = "pk"
)

// Structure is the full schema description of one database connection:
// every table-like object visible to it, across all attached schemas,
// excluding the temp schema and SQLite-internal objects.
type Structure struct {
	Tables []Table `json:"tables"`
}

// Table is one catalog entry. The boolean flags are recorded exactly as the
// catalog reports them; whether they are meaningful for the table's kind
// (WITHOUT ROWID on a view, say) is not validated here.
type Table struct {
	Schema       string    `json:"schema"`
	Name         string    `json:"name"`
	Kind         TableKind `json:"kind"`
	WithoutRowid bool      `json:"withoutRowid"`
	Strict       bool      `json:"strict"`
	Columns      []Column  `json:"columns"`
	Indexes      []Index   `json:"indexes"`
}

// Column is one table column. Type is the declared type verbatim, not a
// normalized type. PrimaryKey is 0 for non-key columns, otherwise the
// column's 1-based position within the primary key.
type Column struct {
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	NotNull    bool    `json:"notNull"`
	Default    *string `json:"default"`
	PrimaryKey int     `json:"primaryKey"`
}

// Index is one index on a table, including the sqlite_autoindex entries
// generated for UNIQUE and PRIMARY KEY constraints.
type Index struct {
	Name    string        `json:"name"`
	Unique  bool          `json:"unique"`
	Origin  IndexOrigin   `json:"origin"`
	Partial bool          `json:"partial"`
	Columns []IndexColumn `json:"columns"`
}

// IndexColumn is one key column of an index, in key order. An index over an
// expression has no column name in the catalog; Name is empty for those.
type IndexColumn struct {
	Name string `json:"name"`
}

// Table returns the table with the given schema and name, or nil.
func (s *Structure) Table(schema, name string) *Table {
	for i := range s.Tables {
		if s.Tables[i].Schema == schema && s.Tables[i].Name == name {
			return &s.Tables[i]
		}
	}
	return nil
}

// Column returns the named column, or nil if the table has no such column.
func (t *Table) Column(name string) *Column {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i]
		}
	}
	return nil
}

// Index returns the named index, or nil if the table has no such index.
func (t *Table) Index(name string) *Index {
	for i := range t.Indexes {
		if t.Indexes[i].Name == name {
			return &t.Indexes[i]
		}
	}
	return nil
}

// ColumnNames returns the table's column names in their normalized
// (alphabetical) order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// PrimaryKey returns the names of the primary key columns in key order
// (by ordinal), or nil for a table without a declared primary key.
func (t *Table) PrimaryKey() []string {
	width := 0
	for i := range t.Columns {
		if t.Columns[i].PrimaryKey > width {
			width = t.Columns[i].PrimaryKey
		}
	}
	if width == 0 {
		return nil
	}
	pk := make([]string, width)
	for i := range t.Columns {
		if ord := t.Columns[i].PrimaryKey; ord > 0 {
			pk[ord-1] = t.Columns[i].Name
		}
	}
	return pk
}
