package dialects

import (
	"context"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"datadict/internal/dictionary"
	"datadict/internal/store"
)

// myDialect covers MySQL and MariaDB, which have no catalog level:
// the catalog segment of a dictionary name is ignored.
type myDialect struct{}

var myCatalog = store.CatalogQuery{
	Tables: `
        SELECT table_name AS table_name, NULLIF(table_comment, '') AS comment
        FROM information_schema.tables
        WHERE table_schema = ?
        ORDER BY table_name`,
	Columns: `
        SELECT table_name AS table_name,
               column_name AS column_name,
               column_type AS data_type,
               NULLIF(column_comment, '') AS comment
        FROM information_schema.columns
        WHERE table_schema = ?
        ORDER BY table_name, ordinal_position`,
}

func (myDialect) DriverName() string { return "mysql" }

func (myDialect) TableRef(n store.Name) string {
	return quoteParts("`", "`", n.Schema, n.Table)
}

func (myDialect) BatchRows() int { return 0 }

func (myDialect) Describe(ctx context.Context, db *sqlx.DB, catalog, schema string) ([]dictionary.Entry, error) {
	return myCatalog.Describe(ctx, db, catalog, schema, schema)
}

func init() {
	store.Register("mysql", myDialect{})
}
