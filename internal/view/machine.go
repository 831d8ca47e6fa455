package view

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"datadict/internal/dictionary"
)

// DictionaryTable is the table holding a schema's dictionary.
const DictionaryTable = "data_dict"

const noneLoaded = "Table: (none loaded)"

// Storage reads and overwrites whole dictionaries by name.
type Storage interface {
	Read(ctx context.Context, name string) (dictionary.Dataset, error)
	Write(ctx context.Context, name string, ds dictionary.Dataset) error
}

// Machine computes transitions. It holds no state of its own.
type Machine struct {
	Store Storage

	// Now stamps load statuses. It defaults to time.Now.
	Now func() time.Time

	// Timeout bounds each storage call, 0 for none.
	Timeout time.Duration
}

// DatasetName returns the dictionary name for catalog and schema.
func DatasetName(catalog, schema string) string {
	return catalog + "." + schema + "." + DictionaryTable
}

// Transition returns the emission for action a taken in state s. It never
// fails: problems are reported in the load or save status. Actions it does
// not handle yield the zero Emission.
func (m Machine) Transition(ctx context.Context, s State, a Action) Emission {
	switch a := a.(type) {
	case Load:
		return m.load(ctx, a)
	case OpenRow:
		return openRow(s, a)
	case Back:
		return back(s)
	case Save:
		return m.save(ctx, s)
	case Edit:
		return edit(s, a)
	default:
		return Emission{}
	}
}

func (m Machine) load(ctx context.Context, a Load) Emission {
	catalog := strings.TrimSpace(a.Catalog)
	schema := strings.TrimSpace(a.Schema)
	if catalog == "" || schema == "" {
		return cleared(noneLoaded, "Please enter both catalog and schema.")
	}

	name := DatasetName(catalog, schema)
	ctx, cancel := m.storageContext(ctx)
	defer cancel()
	full, err := m.Store.Read(ctx, name)
	if err != nil {
		return cleared("Table: "+name, fmt.Sprintf("Error loading %s: %v", name, err))
	}

	p := dictionary.BuildTables(full)
	return Emission{
		Rows:          Some(p.Rows),
		Schema:        Some(p.Schema),
		Label:         Some(tablesLabel(name)),
		LoadStatus:    Some(fmt.Sprintf("Loaded %s (%d rows) at %s", name, full.Len(), m.now().Format(time.TimeOnly))),
		DatasetName:   Some(name),
		Full:          Some(&full),
		Mode:          Some(dictionary.ModeTables),
		SelectedTable: Some(""),
	}
}

// cleared is the emission of a load that did not produce a dataset.
func cleared(label, status string) Emission {
	return Emission{
		Rows:          Some([]dictionary.Row{}),
		Schema:        Some([]dictionary.ColumnSpec{}),
		Label:         Some(label),
		LoadStatus:    Some(status),
		DatasetName:   Some(""),
		Full:          Some[*dictionary.Dataset](nil),
		Mode:          Some(dictionary.ModeTables),
		SelectedTable: Some(""),
	}
}

func openRow(s State, a OpenRow) Emission {
	if s.Mode != dictionary.ModeTables || a.Column != dictionary.FieldOpen || s.Full == nil {
		return Emission{}
	}
	if a.Row < 0 || a.Row >= len(s.Rows) {
		return Emission{}
	}
	table := s.Rows[a.Row].Name
	if table == "" {
		return Emission{}
	}

	p := dictionary.BuildColumns(*s.Full, table)
	return Emission{
		Rows:          Some(p.Rows),
		Schema:        Some(p.Schema),
		Label:         Some(columnsLabel(table)),
		Mode:          Some(dictionary.ModeColumns),
		SelectedTable: Some(table),
	}
}

func back(s State) Emission {
	if s.Mode != dictionary.ModeColumns || s.Full == nil || s.DatasetName == "" {
		return Emission{}
	}
	p := dictionary.BuildTables(*s.Full)
	return Emission{
		Rows:          Some(p.Rows),
		Schema:        Some(p.Schema),
		Label:         Some(tablesLabel(s.DatasetName)),
		Mode:          Some(dictionary.ModeTables),
		SelectedTable: Some(""),
	}
}

func (m Machine) save(ctx context.Context, s State) Emission {
	saves := s.Saves + 1
	e := Emission{Saves: Some(saves)}
	switch {
	case s.DatasetName == "":
		e.SaveStatus = Some("No table loaded. Please load a table before saving.")
		return e
	case s.Full == nil:
		e.SaveStatus = Some("No in-memory copy of the data dictionary. Try reloading it.")
		return e
	}

	merged, report := dictionary.Merge(*s.Full, s.Rows, s.Mode, s.SelectedTable)
	e.Merge = &report

	ctx, cancel := m.storageContext(ctx)
	defer cancel()
	if err := m.Store.Write(ctx, s.DatasetName, merged); err != nil {
		e.SaveStatus = Some(fmt.Sprintf("Error saving changes: %v", err))
		return e
	}

	e.Full = Some(&merged)
	switch {
	case s.Mode == dictionary.ModeTables:
		p := dictionary.BuildTables(merged)
		e.Rows, e.Schema = Some(p.Rows), Some(p.Schema)
		e.Label = Some(tablesLabel(s.DatasetName))
	case s.Mode == dictionary.ModeColumns && s.SelectedTable != "":
		p := dictionary.BuildColumns(merged, s.SelectedTable)
		e.Rows, e.Schema = Some(p.Rows), Some(p.Schema)
		e.Label = Some(columnsLabel(s.SelectedTable))
	}
	e.SaveStatus = Some(fmt.Sprintf("Saved changes to %s (click #%d).", s.DatasetName, saves))
	return e
}

func edit(s State, a Edit) Emission {
	if a.Row < 0 || a.Row >= len(s.Rows) || !editable(s.Schema, dictionary.FieldDescription) {
		return Emission{}
	}
	rows := slices.Clone(s.Rows)
	rows[a.Row].Description = nil
	if a.Description != nil {
		rows[a.Row].Description = dictionary.Text(*a.Description)
	}
	return Emission{Rows: Some(rows), InPlace: true}
}

func editable(schema []dictionary.ColumnSpec, f dictionary.Field) bool {
	for _, c := range schema {
		if c.ID == f {
			return c.Editable
		}
	}
	return false
}

// tablesLabel labels the tables view of the named dictionary with its
// catalog.schema.
func tablesLabel(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[:i]
	}
	return "Tables in dictionary: " + name
}

func columnsLabel(table string) string {
	return "Columns for table: " + table
}

func (m Machine) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

func (m Machine) storageContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if m.Timeout > 0 {
		return context.WithTimeout(ctx, m.Timeout)
	}
	return context.WithCancel(ctx)
}
