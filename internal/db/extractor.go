package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tordrt/dbstructure/structure"
)

// Querier is the one capability the extractor needs from a connection:
// execute a parameterized read query and get rows back. *sql.DB, *sql.Conn
// and *sql.Tx all satisfy it.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

const (
	// Every table-like object in every attached schema except temp, skipping
	// SQLite's reserved-prefix internals. Sorted so output order never
	// depends on creation or attachment order.
	tableListQuery = `
		SELECT schema, name, type, wr, strict
		FROM pragma_table_list
		WHERE schema <> 'temp' AND name NOT LIKE 'sqlite_%'
		ORDER BY schema, name`

	// Columns sorted by name rather than declaration order, so that two
	// schemas differing only in column declaration order compare equal.
	columnListQuery = `
		SELECT name, type, "notnull", dflt_value, pk
		FROM pragma_table_info(?1, ?2)
		ORDER BY name`

	indexListQuery = `
		SELECT name, "unique", origin, partial
		FROM pragma_index_list(?1, ?2)
		ORDER BY name`

	// seqno order preserves the left-to-right key order of composite indexes.
	indexColumnQuery = `
		SELECT name
		FROM pragma_index_info(?1, ?2)
		ORDER BY seqno`
)

// StructureExtractor reads the SQLite catalog through a Querier and
// assembles the normalized structure tree.
//
// Extraction is read-only and stateless: every call issues the same fixed
// set of catalog queries and builds a fresh tree. Any query failure aborts
// the whole extraction; a partial tree is never returned.
type StructureExtractor struct {
	q Querier
}

// NewStructureExtractor creates an extractor over the given connection.
func NewStructureExtractor(q Querier) *StructureExtractor {
	return &StructureExtractor{q: q}
}

// Extract describes the whole database: all tables with their columns and
// indexes, in normalized order.
func (e *StructureExtractor) Extract(ctx context.Context) (*structure.Structure, error) {
	tables, err := e.listTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}

	for i := range tables {
		t := &tables[i]

		t.Columns, err = e.listColumns(ctx, t.Schema, t.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to list columns for %s.%s: %w", t.Schema, t.Name, err)
		}

		t.Indexes, err = e.listIndexes(ctx, t.Schema, t.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to list indexes for %s.%s: %w", t.Schema, t.Name, err)
		}

		for j := range t.Indexes {
			idx := &t.Indexes[j]
			idx.Columns, err = e.listIndexColumns(ctx, t.Schema, idx.Name)
			if err != nil {
				return nil, fmt.Errorf("failed to list columns for index %s.%s: %w", t.Schema, idx.Name, err)
			}
		}
	}

	return &structure.Structure{Tables: tables}, nil
}

// listTables enumerates all table-like objects visible to the connection.
// The result set is fully drained before returning so later per-table
// queries never run with an open cursor.
func (e *StructureExtractor) listTables(ctx context.Context) ([]structure.Table, error) {
	rows, err := e.q.QueryContext(ctx, tableListQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []structure.Table
	for rows.Next() {
		var t structure.Table
		var kind string
		var wr, strict int

		if err := rows.Scan(&t.Schema, &t.Name, &kind, &wr, &strict); err != nil {
			return nil, err
		}

		t.Kind = structure.TableKind(kind)
		t.WithoutRowid = asBool(wr)
		t.Strict = asBool(strict)
		tables = append(tables, t)
	}

	return tables, rows.Err()
}

// listColumns returns the columns of one table, ordered by column name.
func (e *StructureExtractor) listColumns(ctx context.Context, schema, table string) ([]structure.Column, error) {
	rows, err := e.q.QueryContext(ctx, columnListQuery, table, schema)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []structure.Column
	for rows.Next() {
		var c structure.Column
		var notNull int
		var defaultValue sql.NullString

		if err := rows.Scan(&c.Name, &c.Type, &notNull, &defaultValue, &c.PrimaryKey); err != nil {
			return nil, err
		}

		c.NotNull = asBool(notNull)
		if defaultValue.Valid {
			c.Default = &defaultValue.String
		}
		columns = append(columns, c)
	}

	return columns, rows.Err()
}

// listIndexes returns the indexes of one table, ordered by index name.
// Constraint-generated sqlite_autoindex entries are included: they carry the
// origin tags that distinguish a UNIQUE constraint from a CREATE INDEX.
func (e *StructureExtractor) listIndexes(ctx context.Context, schema, table string) ([]structure.Index, error) {
	rows, err := e.q.QueryContext(ctx, indexListQuery, table, schema)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var indexes []structure.Index
	for rows.Next() {
		var idx structure.Index
		var origin string
		var unique, partial int

		if err := rows.Scan(&idx.Name, &unique, &origin, &partial); err != nil {
			return nil, err
		}

		idx.Unique = asBool(unique)
		idx.Origin = structure.IndexOrigin(origin)
		idx.Partial = asBool(partial)
		indexes = append(indexes, idx)
	}

	return indexes, rows.Err()
}

// listIndexColumns returns the key columns of one index in key order.
func (e *StructureExtractor) listIndexColumns(ctx context.Context, schema, index string) ([]structure.IndexColumn, error) {
	rows, err := e.q.QueryContext(ctx, indexColumnQuery, index, schema)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []structure.IndexColumn
	for rows.Next() {
		// Expression keys have no column name in the catalog; recorded
		// with an empty name so the key width still matches.
		var name sql.NullString

		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		columns = append(columns, structure.IndexColumn{Name: name.String})
	}

	return columns, rows.Err()
}

// asBool applies the catalog's flag encoding: any nonzero value is true.
func asBool(v int) bool {
	return v != 0
}
