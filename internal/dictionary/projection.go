package dictionary

import "strings"

// ColumnSpec describes one column of a rendered view.
type ColumnSpec struct {
	ID           Field  `json:"id"`
	Title        string `json:"name"`
	Editable     bool   `json:"editable"`
	Presentation string `json:"presentation"`
}

// Row is one rendered row: the entry plus the drill-down marker, which is
// only set in the tables view.
type Row struct {
	Entry
	Open string `json:"__open__,omitempty"`
}

// Projection is a filtered view of a dataset together with its column schema.
type Projection struct {
	Rows   []Row        `json:"rows"`
	Schema []ColumnSpec `json:"columns"`
}

// Mode identifies which projection is on screen.
type Mode string

const (
	ModeUnloaded Mode = ""
	ModeTables   Mode = "tables"
	ModeColumns  Mode = "columns"
)

// BuildTables returns every table entry of full, each marked for drill-down.
// A dataset without a type field is treated as all tables.
func BuildTables(full Dataset) Projection {
	hasType := full.HasType()
	rows := []Row{}
	for _, e := range full.Entries {
		if hasType && !e.IsTable() {
			continue
		}
		rows = append(rows, Row{Entry: e.clone(), Open: OpenMarker})
	}

	var schema []ColumnSpec
	if full.Has(FieldName) {
		schema = append(schema, inputColumn(FieldName, "Table"))
	}
	if full.Has(FieldDescription) {
		schema = append(schema, inputColumn(FieldDescription, "Description"))
	}
	if full.Has(FieldParent) {
		schema = append(schema, inputColumn(FieldParent, "Schema"))
	}
	schema = append(schema, ColumnSpec{ID: FieldOpen, Presentation: "markdown"})

	return Projection{Rows: rows, Schema: schema}
}

// BuildColumns returns the column entries owned by table. The schema is
// derived from the dataset fields, so an empty result still has headers.
func BuildColumns(full Dataset, table string) Projection {
	hasType := full.HasType()
	rows := []Row{}
	for _, e := range full.Entries {
		if !OwnedBy(e, table) {
			continue
		}
		if hasType && e.IsTable() {
			continue
		}
		rows = append(rows, Row{Entry: e.clone()})
	}

	var schema []ColumnSpec
	if full.Has(FieldName) {
		schema = append(schema, inputColumn(FieldName, "Column"))
	}
	if full.Has(FieldDescription) {
		schema = append(schema, inputColumn(FieldDescription, "Description"))
	}
	if full.Has(FieldParent) {
		schema = append(schema, inputColumn(FieldParent, "Table"))
	}
	if hasType {
		schema = append(schema, inputColumn(FieldType, "Type"))
	}

	return Projection{Rows: rows, Schema: schema}
}

// OwnedBy reports whether e belongs to table. The parent may hold the bare
// table name or its dotted path ending in the table name.
func OwnedBy(e Entry, table string) bool {
	if table == "" || e.Parent == "" {
		return false
	}
	return e.Parent == table || strings.HasSuffix(e.Parent, "."+table)
}

// inputColumn builds a text column; description is the only editable one.
func inputColumn(f Field, title string) ColumnSpec {
	return ColumnSpec{
		ID:           f,
		Title:        title,
		Editable:     f == FieldDescription,
		Presentation: "input",
	}
}
