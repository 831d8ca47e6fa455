//go:build duckdb
// +build duckdb

package dialects

import (
	"context"

	"github.com/jmoiron/sqlx"
	_ "github.com/marcboeker/go-duckdb" // duckdb driver

	"datadict/internal/dictionary"
	"datadict/internal/store"
)

// duckDialect covers DuckDB, which resolves catalog.schema.table natively
// across attached databases.
type duckDialect struct{}

var duckCatalog = store.CatalogQuery{
	Tables: `
        SELECT table_name, comment
        FROM duckdb_tables()
        WHERE database_name = ? AND schema_name = ?
        ORDER BY table_name`,
	Columns: `
        SELECT table_name, column_name, data_type, comment
        FROM duckdb_columns()
        WHERE database_name = ? AND schema_name = ?
        ORDER BY table_name, column_index`,
}

func (duckDialect) DriverName() string { return "duckdb" }

func (duckDialect) TableRef(n store.Name) string {
	return quoteParts(`"`, `"`, n.Catalog, n.Schema, n.Table)
}

func (duckDialect) BatchRows() int { return 0 }

func (duckDialect) Describe(ctx context.Context, db *sqlx.DB, catalog, schema string) ([]dictionary.Entry, error) {
	return duckCatalog.Describe(ctx, db, catalog, schema, catalog, schema)
}

func init() {
	sqlx.BindDriver("duckdb", sqlx.QUESTION)
	store.Register("duckdb", duckDialect{})
}
