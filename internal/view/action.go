// Package view sequences user actions into transitions between the tables
// view and the columns view of a loaded data dictionary.
package view

import "datadict/internal/dictionary"

// Action is one user action. The set of actions is closed: only the types
// in this package implement it.
type Action interface {
	action()
}

// Load reads the dictionary catalog.schema.data_dict and shows its tables.
type Load struct {
	Catalog string
	Schema  string
}

// OpenRow drills into the table on row Row of the current rows. It only
// acts when the activated cell is the drill-down marker column.
type OpenRow struct {
	Row    int
	Column dictionary.Field
}

// Back returns from the columns view to the tables view.
type Back struct{}

// Save merges the current rows into the dataset and writes it.
type Save struct{}

// Edit sets the description of row Row of the current rows. Edits are lost
// when the rows are rebuilt before a Save.
type Edit struct {
	Row         int
	Description *string
}

// PageNext and PagePrev move between pages of the current rows.
type (
	PageNext struct{}
	PagePrev struct{}
)

func (Load) action()     {}
func (OpenRow) action()  {}
func (Back) action()     {}
func (Save) action()     {}
func (Edit) action()     {}
func (PageNext) action() {}
func (PagePrev) action() {}
