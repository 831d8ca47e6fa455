package view

import "datadict/internal/dictionary"

// State is everything a session remembers between actions.
type State struct {
	Mode          dictionary.Mode
	DatasetName   string
	Full          *dictionary.Dataset
	SelectedTable string

	// Rows are the rows on screen. Edits land here until the next rebuild.
	Rows   []dictionary.Row
	Schema []dictionary.ColumnSpec

	Label      string
	LoadStatus string
	SaveStatus string

	// Saves counts Save actions, successful or not.
	Saves int
}

// Opt is an optional output value. An unset Opt leaves the state unchanged.
type Opt[T any] struct {
	Value T
	Set   bool
}

// Some returns a set Opt holding v.
func Some[T any](v T) Opt[T] {
	return Opt[T]{Value: v, Set: true}
}

func (o Opt[T]) apply(dst *T) {
	if o.Set {
		*dst = o.Value
	}
}

// Emission is the outcome of one transition. The zero Emission changes nothing.
type Emission struct {
	Rows          Opt[[]dictionary.Row]
	Schema        Opt[[]dictionary.ColumnSpec]
	Label         Opt[string]
	LoadStatus    Opt[string]
	DatasetName   Opt[string]
	Full          Opt[*dictionary.Dataset]
	Mode          Opt[dictionary.Mode]
	SelectedTable Opt[string]
	SaveStatus    Opt[string]
	Saves         Opt[int]

	// InPlace marks a Rows update that keeps the same row set, so the
	// current page is kept.
	InPlace bool

	// Merge is the report of the merge run by a Save, if any.
	Merge *dictionary.MergeReport
}

// Empty reports whether e leaves every field unchanged.
func (e Emission) Empty() bool {
	return !(e.Rows.Set || e.Schema.Set || e.Label.Set || e.LoadStatus.Set ||
		e.DatasetName.Set || e.Full.Set || e.Mode.Set || e.SelectedTable.Set ||
		e.SaveStatus.Set || e.Saves.Set)
}

// Replaced reports whether e swaps the row set for a new one.
func (e Emission) Replaced() bool {
	return e.Rows.Set && !e.InPlace
}

// Apply writes the set fields of e into s.
func (s *State) Apply(e Emission) {
	e.Rows.apply(&s.Rows)
	e.Schema.apply(&s.Schema)
	e.Label.apply(&s.Label)
	e.LoadStatus.apply(&s.LoadStatus)
	e.DatasetName.apply(&s.DatasetName)
	e.Full.apply(&s.Full)
	e.Mode.apply(&s.Mode)
	e.SelectedTable.apply(&s.SelectedTable)
	e.SaveStatus.apply(&s.SaveStatus)
	e.Saves.apply(&s.Saves)
}
