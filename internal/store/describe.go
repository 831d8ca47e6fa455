package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"datadict/internal/dictionary"
)

// CatalogQuery holds the two introspection queries of a dialect. Both use
// ? placeholders and are rebound for the driver. Tables must return the
// columns table_name and comment; Columns must return table_name,
// column_name, data_type and comment, ordered by table.
type CatalogQuery struct {
	Tables  string
	Columns string
}

type tableRow struct {
	Table   string         `db:"table_name"`
	Comment sql.NullString `db:"comment"`
}

type columnRow struct {
	Table   string         `db:"table_name"`
	Column  string         `db:"column_name"`
	Type    string         `db:"data_type"`
	Comment sql.NullString `db:"comment"`
}

// Describe runs both queries with args and returns one table entry per
// table followed by the entries of its columns. Entries carry the table
// path catalog.schema.table as parent.
func (q CatalogQuery) Describe(ctx context.Context, db *sqlx.DB, catalog, schema string, args ...any) ([]dictionary.Entry, error) {
	var tables []tableRow
	if err := db.SelectContext(ctx, &tables, db.Rebind(q.Tables), args...); err != nil {
		return nil, fmt.Errorf("query tables: %w", err)
	}
	var columns []columnRow
	if err := db.SelectContext(ctx, &columns, db.Rebind(q.Columns), args...); err != nil {
		return nil, fmt.Errorf("query columns: %w", err)
	}

	byTable := make(map[string][]columnRow, len(tables))
	for _, c := range columns {
		byTable[c.Table] = append(byTable[c.Table], c)
	}

	entries := make([]dictionary.Entry, 0, len(tables)+len(columns))
	for _, t := range tables {
		path := catalog + "." + schema + "." + t.Table
		entries = append(entries, dictionary.Entry{
			Name:        t.Table,
			Parent:      path,
			Type:        dictionary.TableType,
			Description: nullText(t.Comment),
		})
		for _, c := range byTable[t.Table] {
			entries = append(entries, dictionary.Entry{
				Name:        c.Column,
				Parent:      path,
				Type:        c.Type,
				Description: nullText(c.Comment),
			})
		}
	}
	return entries, nil
}

func nullText(s sql.NullString) *string {
	if !s.Valid || s.String == "" {
		return nil
	}
	return dictionary.Text(s.String)
}

// Bootstrap fills the named dictionary from the live catalog of its
// catalog.schema. A dictionary that already holds entries is only replaced
// when force is set; descriptions already written for an entry are kept.
// It returns the number of entries written.
func (s *SQL) Bootstrap(ctx context.Context, name string, force bool) (int, error) {
	n, err := ParseName(name)
	if err != nil {
		return 0, storageErr("bootstrap", name, err)
	}
	existing, err := s.Read(ctx, name)
	if err != nil {
		return 0, err
	}
	if existing.Len() > 0 && !force {
		return 0, fmt.Errorf("%s already holds %d entries, pass force to rebuild it", name, existing.Len())
	}

	found, err := s.dialect.Describe(ctx, s.db, n.Catalog, n.Schema)
	if err != nil {
		return 0, storageErr("bootstrap", name, err)
	}

	ds := Seed(existing, found, n)
	if err := s.Write(ctx, name, ds); err != nil {
		return 0, err
	}
	return ds.Len(), nil
}

// Seed builds the dataset a bootstrap writes: the described entries minus
// the dictionary table itself, keeping existing descriptions by identity.
func Seed(existing dictionary.Dataset, found []dictionary.Entry, n Name) dictionary.Dataset {
	withType := existing.HasType()
	kept := make(map[dictionary.Key]*string, existing.Len())
	for _, e := range existing.Entries {
		if e.Description != nil {
			kept[dictionary.KeyOf(e, withType)] = e.Description
		}
	}

	fields := existing.Fields
	if len(fields) == 0 {
		fields = dictionary.StoredFields
	}
	ds := dictionary.Dataset{
		Fields:  append([]dictionary.Field(nil), fields...),
		Entries: make([]dictionary.Entry, 0, len(found)),
	}
	self := n.String()
	for _, e := range found {
		if e.Parent == self {
			continue
		}
		if d, ok := kept[dictionary.KeyOf(e, withType)]; ok {
			e.Description = d
		}
		ds.Entries = append(ds.Entries, e)
	}
	return ds
}
