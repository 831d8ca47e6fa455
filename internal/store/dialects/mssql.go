package dialects

import (
	"context"

	_ "github.com/denisenkom/go-mssqldb"
	"github.com/jmoiron/sqlx"

	"datadict/internal/dictionary"
	"datadict/internal/store"
)

// mssqlDialect covers Microsoft SQL Server. Comments live in the
// MS_Description extended property.
type mssqlDialect struct{}

var mssqlCatalog = store.CatalogQuery{
	Tables: `
        SELECT t.name AS table_name, CAST(ep.value AS NVARCHAR(4000)) AS comment
        FROM sys.tables AS t
        JOIN sys.schemas AS s
          ON s.schema_id = t.schema_id
        LEFT JOIN sys.extended_properties AS ep
          ON ep.major_id = t.object_id
         AND ep.minor_id = 0
         AND ep.name = 'MS_Description'
        WHERE s.name = ?
        ORDER BY t.name`,
	Columns: `
        SELECT t.name AS table_name,
               c.name AS column_name,
               ty.name AS data_type,
               CAST(ep.value AS NVARCHAR(4000)) AS comment
        FROM sys.columns AS c
        JOIN sys.tables AS t
          ON t.object_id = c.object_id
        JOIN sys.schemas AS s
          ON s.schema_id = t.schema_id
        JOIN sys.types AS ty
          ON ty.user_type_id = c.user_type_id
        LEFT JOIN sys.extended_properties AS ep
          ON ep.major_id = c.object_id
         AND ep.minor_id = c.column_id
         AND ep.name = 'MS_Description'
        WHERE s.name = ?
        ORDER BY t.name, c.column_id`,
}

func (mssqlDialect) DriverName() string { return "sqlserver" }

func (mssqlDialect) TableRef(n store.Name) string {
	return quoteParts("[", "]", n.Catalog, n.Schema, n.Table)
}

// 2100 parameters per statement at most; four per row.
func (mssqlDialect) BatchRows() int { return 500 }

func (mssqlDialect) Describe(ctx context.Context, db *sqlx.DB, catalog, schema string) ([]dictionary.Entry, error) {
	return mssqlCatalog.Describe(ctx, db, catalog, schema, schema)
}

func init() {
	store.Register("sqlserver", mssqlDialect{})
}
