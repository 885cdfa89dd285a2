// Package dbstructure extracts a canonical, comparison-ready description of
// a SQLite database's schema: its tables, columns, and indexes.
//
// The produced Structure is normalized so that two structurally equivalent
// databases yield deeply-equal trees, no matter in which order their tables,
// columns, or indexes were created. That makes it suitable for verifying that
// two independently constructed databases — say one built by replaying a
// migration history and one built from a consolidated schema file — ended up
// with the same shape.
//
// # Quick Start
//
//	s, err := dbstructure.DescribeDatabase(ctx, "app.db")
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, t := range s.Tables {
//		fmt.Println(t.Schema, t.Name, t.Kind)
//	}
//
// To compare two databases:
//
//	a, _ := dbstructure.DescribeDatabase(ctx, "migrated.db")
//	b, _ := dbstructure.DescribeDatabase(ctx, "consolidated.db")
//	if !reflect.DeepEqual(a, b) {
//		// schemas differ
//	}
//
// # Normalization
//
// At every level the ordering rule is fixed: tables by (schema, name),
// columns by name (not declaration order), indexes by name, index key
// columns by their position within the key. Objects in the temp schema and
// objects whose names carry SQLite's reserved sqlite_ prefix are excluded;
// everything else visible to the connection is included, attached schemas
// too. There are no options.
//
// # Bring Your Own Connection
//
// Describe works against any value with a QueryContext method, so callers
// that already hold a *sql.DB (or want extraction inside a transaction via
// *sql.Tx) do not need a second connection. Extraction only ever reads: four
// families of pragma queries against the catalog, nothing against user data.
package dbstructure

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tordrt/dbstructure/internal/db"
	"github.com/tordrt/dbstructure/structure"
)

// Querier is the connection capability Describe needs: execute a
// parameterized read query, get rows back. *sql.DB, *sql.Conn and *sql.Tx
// all satisfy it.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Describe extracts the normalized structure of the database behind conn.
//
// The call is side-effect-free on the database and holds no state between
// invocations: calling it twice against an unchanged database returns two
// deeply-equal trees. Any catalog query failure aborts the extraction and is
// returned with the underlying driver error in the chain; a partial tree is
// never returned.
//
// Note that the several catalog queries of one extraction are issued
// sequentially on conn; if the database can change concurrently, pass a
// connection whose isolation gives a coherent view (a *sql.Tx, or a
// single-connection pool).
func Describe(ctx context.Context, conn Querier) (*structure.Structure, error) {
	return db.NewStructureExtractor(conn).Extract(ctx)
}

// DescribeDatabase opens the SQLite database file at path, extracts its
// structure, and closes the connection again. Use Describe to reuse an
// existing connection.
func DescribeDatabase(ctx context.Context, path string) (*structure.Structure, error) {
	client, err := db.NewSQLiteClient(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SQLite: %w", err)
	}
	defer func() { _ = client.Close() }()

	return Describe(ctx, client.GetDB())
}
