package dialects

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"datadict/internal/dictionary"
	"datadict/internal/store"
)

// sqliteDialect covers SQLite. The schema segment names an attached
// database ("main" for the primary file); the catalog segment is ignored.
// SQLite keeps no comments, so described entries have no description.
type sqliteDialect struct{}

func (sqliteDialect) DriverName() string { return "sqlite" }

func (sqliteDialect) TableRef(n store.Name) string {
	return quoteParts(`"`, `"`, n.Schema, n.Table)
}

// Older SQLite builds cap a statement at 999 bound parameters.
func (sqliteDialect) BatchRows() int { return 200 }

func (sqliteDialect) Describe(ctx context.Context, db *sqlx.DB, catalog, schema string) ([]dictionary.Entry, error) {
	master := quoteParts(`"`, `"`, schema) + ".sqlite_master"
	literal := "'" + strings.ReplaceAll(schema, "'", "''") + "'"
	q := store.CatalogQuery{
		Tables: fmt.Sprintf(`
            SELECT name AS table_name, NULL AS comment
            FROM %s
            WHERE type = 'table' AND name NOT LIKE 'sqlite_%%'
            ORDER BY name`, master),
		Columns: fmt.Sprintf(`
            SELECT m.name AS table_name, p.name AS column_name, p.type AS data_type, NULL AS comment
            FROM %s AS m
            JOIN pragma_table_info(m.name, %s) AS p
            WHERE m.type = 'table' AND m.name NOT LIKE 'sqlite_%%'
            ORDER BY m.name, p.cid`, master, literal),
	}
	return q.Describe(ctx, db, catalog, schema)
}

func init() {
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
	store.Register("sqlite", sqliteDialect{})
}
