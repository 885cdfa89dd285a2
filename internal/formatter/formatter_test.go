package formatter

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tordrt/dbstructure/structure"
)

func fixture() *structure.Structure {
	pending := "'pending'"
	return &structure.Structure{
		Tables: []structure.Table{
			{
				Schema: "main",
				Name:   "orders",
				Kind:   structure.KindTable,
				Strict: true,
				Columns: []structure.Column{
					{Name: "id", Type: "INTEGER", PrimaryKey: 1},
					{Name: "status", Type: "TEXT", NotNull: true, Default: &pending},
				},
				Indexes: []structure.Index{
					{Name: "idx_orders_status", Origin: structure.OriginCreateIndex, Partial: true,
						Columns: []structure.IndexColumn{{Name: "status"}}},
				},
			},
			{
				Schema: "main",
				Name:   "users",
				Kind:   structure.KindTable,
				Columns: []structure.Column{
					{Name: "email", Type: "TEXT", NotNull: true},
					{Name: "id", Type: "INTEGER", PrimaryKey: 1},
				},
				Indexes: []structure.Index{
					{Name: "sqlite_autoindex_users_1", Unique: true, Origin: structure.OriginUnique,
						Columns: []structure.IndexColumn{{Name: "email"}}},
				},
			},
		},
	}
}

func TestTextFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTextFormatter(&buf).Format(fixture()))
	out := buf.String()

	assert.Contains(t, out, "TABLE main.orders (PK: id) STRICT")
	assert.Contains(t, out, "status: TEXT NOT NULL DEFAULT 'pending'")
	assert.Contains(t, out, "INDEXES:")
	assert.Contains(t, out, "idx_orders_status (status) PARTIAL")
	assert.Contains(t, out, "sqlite_autoindex_users_1 (email) UNIQUE [unique constraint]")
}

func TestTextFormatterEmptyStructure(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTextFormatter(&buf).Format(&structure.Structure{}))
	assert.Empty(t, buf.String())
}

func TestJSONFormatterRoundTrip(t *testing.T) {
	s := fixture()

	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(&buf).Format(s))

	var decoded structure.Structure
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, s, &decoded)
}

func TestJSONFormatterIsByteStable(t *testing.T) {
	var first, second bytes.Buffer
	require.NoError(t, NewJSONFormatter(&first).Format(fixture()))
	require.NoError(t, NewJSONFormatter(&second).Format(fixture()))
	assert.Equal(t, first.String(), second.String())
}

func TestSnapshotWriter(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, NewSnapshotWriter(filepath.Join(dir, "snap")).Format(fixture()))

	overview, err := os.ReadFile(filepath.Join(dir, "snap", "_structure.json"))
	require.NoError(t, err)

	var decoded structure.Structure
	require.NoError(t, json.Unmarshal(overview, &decoded))
	assert.Len(t, decoded.Tables, 2)

	perTable, err := os.ReadFile(filepath.Join(dir, "snap", "main.users.json"))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(perTable), `"users"`))

	_, err = os.Stat(filepath.Join(dir, "snap", "main.orders.json"))
	assert.NoError(t, err)
}
