package store

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"

	"datadict/internal/dictionary"
	"datadict/pkg/config"
)

// Dialect adapts the SQL store to one database product.
type Dialect interface {

	// DriverName is the database/sql driver the dialect opens.
	DriverName() string

	// TableRef renders n as a quoted table reference.
	TableRef(n Name) string

	// BatchRows caps the rows per INSERT statement, 0 for no dialect limit.
	BatchRows() int

	// Describe lists the tables of catalog.schema, each followed by its
	// columns, as dictionary entries.
	Describe(ctx context.Context, db *sqlx.DB, catalog, schema string) ([]dictionary.Entry, error)
}

var dialects = map[string]Dialect{}

// Register makes a Dialect available under name.
func Register(name string, d Dialect) {
	dialects[strings.ToLower(name)] = d
}

// listRegistered returns the registered dialect keys in sorted order.
func listRegistered() []string {
	keys := make([]string, 0, len(dialects))
	for k := range dialects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RegisteredDialects lists the dialect names compiled into the binary, as
// shown by the version command.
func RegisteredDialects() []string {
	return listRegistered()
}

// lookup finds the dialect for a driver name or alias.
func lookup(driver string) (Dialect, error) {
	driver = config.NormalizeDriver(driver)
	d, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("dialect not registered: %q (available: %v)", driver, listRegistered())
	}
	return d, nil
}
