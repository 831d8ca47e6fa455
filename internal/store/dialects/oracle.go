//go:build oracle
// +build oracle

package dialects

import (
	"context"
	"strings"

	_ "github.com/godror/godror"
	"github.com/jmoiron/sqlx"

	"datadict/internal/dictionary"
	"datadict/internal/store"
)

// oracleDialect covers Oracle. Unquoted Oracle identifiers are stored in
// upper case, so the schema and table are upper-cased before quoting. The
// catalog segment is ignored.
type oracleDialect struct{}

var oracleCatalog = store.CatalogQuery{
	Tables: `
	    SELECT atab.table_name AS "table_name", acom.comments AS "comment"
	    FROM all_tables atab
	    LEFT JOIN all_tab_comments acom
		  ON acom.owner = atab.owner
		 AND acom.table_name = atab.table_name
	    WHERE atab.owner = ?
	    ORDER BY atab.table_name`,
	Columns: `
	    SELECT col.table_name AS "table_name",
	           col.column_name AS "column_name",
	           col.data_type AS "data_type",
	           ccom.comments AS "comment"
	    FROM all_tab_columns col
	    JOIN all_tables atab
		  ON atab.owner = col.owner
		 AND atab.table_name = col.table_name
	    LEFT JOIN all_col_comments ccom
		  ON ccom.owner = col.owner
		 AND ccom.table_name = col.table_name
		 AND ccom.column_name = col.column_name
	    WHERE col.owner = ?
	    ORDER BY col.table_name, col.column_id`,
}

func (oracleDialect) DriverName() string { return "godror" }

func (oracleDialect) TableRef(n store.Name) string {
	return quoteParts(`"`, `"`, strings.ToUpper(n.Schema), strings.ToUpper(n.Table))
}

// Oracle has no multi-row VALUES list.
func (oracleDialect) BatchRows() int { return 1 }

func (oracleDialect) Describe(ctx context.Context, db *sqlx.DB, catalog, schema string) ([]dictionary.Entry, error) {
	return oracleCatalog.Describe(ctx, db, catalog, schema, strings.ToUpper(schema))
}

func init() {
	store.Register("godror", oracleDialect{})
}
