package dialects

import (
	"context"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"datadict/internal/dictionary"
	"datadict/internal/store"
)

// pgDialect covers PostgreSQL through either lib/pq or pgx.
type pgDialect struct {
	driver string
}

var pgCatalog = store.CatalogQuery{
	Tables: `
        SELECT c.relname AS table_name, obj_description(c.oid, 'pg_class') AS comment
        FROM pg_class c
        JOIN pg_namespace ns ON ns.oid = c.relnamespace
        WHERE ns.nspname = ? AND c.relkind IN ('r', 'p', 'v', 'm', 'f')
        ORDER BY c.relname`,
	Columns: `
        SELECT c.relname AS table_name,
               a.attname AS column_name,
               format_type(a.atttypid, a.atttypmod) AS data_type,
               col_description(c.oid, a.attnum) AS comment
        FROM pg_attribute a
        JOIN pg_class c ON c.oid = a.attrelid
        JOIN pg_namespace ns ON ns.oid = c.relnamespace
        WHERE ns.nspname = ? AND c.relkind IN ('r', 'p', 'v', 'm', 'f')
          AND a.attnum > 0 AND NOT a.attisdropped
        ORDER BY c.relname, a.attnum`,
}

func (d pgDialect) DriverName() string { return d.driver }

// PostgreSQL accepts a catalog qualifier when it names the current database.
func (pgDialect) TableRef(n store.Name) string {
	return quoteParts(`"`, `"`, n.Catalog, n.Schema, n.Table)
}

func (pgDialect) BatchRows() int { return 0 }

func (pgDialect) Describe(ctx context.Context, db *sqlx.DB, catalog, schema string) ([]dictionary.Entry, error) {
	return pgCatalog.Describe(ctx, db, catalog, schema, schema)
}

func init() {
	store.Register("postgres", pgDialect{driver: "postgres"})
	store.Register("pgx", pgDialect{driver: "pgx"})
}
