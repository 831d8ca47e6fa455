// Package dictionary holds the data dictionary record model and the pure
// functions that derive views from it and fold edits back into it.
package dictionary

import "strings"

// Field names one column of a data dictionary row.
type Field string

const (
	FieldName        Field = "name"
	FieldDescription Field = "description"
	FieldParent      Field = "parent"
	FieldType        Field = "type"

	// FieldOpen is the synthetic drill-down marker of the tables view.
	// It never exists in a stored dataset.
	FieldOpen Field = "__open__"
)

// TableType is the type value that marks a table-level entry.
const TableType = "table"

// OpenMarker is the text rendered in the drill-down column.
const OpenMarker = "Open"

// StoredFields lists every field a stored dataset may carry, in canonical order.
var StoredFields = []Field{FieldName, FieldParent, FieldType, FieldDescription}

// ParseField maps a stored column name to its Field, ignoring case and
// surrounding whitespace.
func ParseField(s string) (Field, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, f := range StoredFields {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

// Entry is one table or column of the dictionary.
// Empty Name, Parent or Type means the value is absent, unless it was set
// explicitly to empty text (see Stored).
type Entry struct {
	Name        string  `json:"name"`
	Parent      string  `json:"parent"`
	Type        string  `json:"type,omitempty"`
	Description *string `json:"description"`

	blank fieldMask
}

// fieldMask records which of name, parent and type hold empty text rather
// than no value.
type fieldMask uint8

func maskOf(f Field) fieldMask {
	switch f {
	case FieldName:
		return 1
	case FieldParent:
		return 2
	case FieldType:
		return 4
	}
	return 0
}

func (e *Entry) markBlank(f Field, blank bool) {
	if blank {
		e.blank |= maskOf(f)
	} else {
		e.blank &^= maskOf(f)
	}
}

// Stored reports whether f holds a value on e, empty text included. A
// field that is not stored is written back as NULL.
func (e Entry) Stored(f Field) bool {
	if f == FieldDescription {
		return e.Description != nil
	}
	return e.Get(f) != "" || e.blank&maskOf(f) != 0
}

// IsTable reports whether e describes a table rather than a column.
func (e Entry) IsTable() bool {
	return e.Type == TableType
}

// Get returns the value of f on e. A nil description reads as "".
func (e Entry) Get(f Field) string {
	switch f {
	case FieldName:
		return e.Name
	case FieldParent:
		return e.Parent
	case FieldType:
		return e.Type
	case FieldDescription:
		if e.Description != nil {
			return *e.Description
		}
	}
	return ""
}

// Set assigns v to field f of e. Unknown fields are ignored.
func (e *Entry) Set(f Field, v string) {
	switch f {
	case FieldName:
		e.Name = v
	case FieldParent:
		e.Parent = v
	case FieldType:
		e.Type = v
	case FieldDescription:
		e.Description = Text(v)
		return
	default:
		return
	}
	e.markBlank(f, v == "")
}

// copyField overwrites f on dst with the value on src.
func copyField(dst *Entry, src Entry, f Field) {
	switch f {
	case FieldName:
		dst.Name = src.Name
	case FieldParent:
		dst.Parent = src.Parent
	case FieldType:
		dst.Type = src.Type
	case FieldDescription:
		dst.Description = cloneString(src.Description)
		return
	}
	dst.markBlank(f, src.blank&maskOf(f) != 0)
}

func (e Entry) clone() Entry {
	e.Description = cloneString(e.Description)
	return e
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// Text returns a pointer to a copy of s, for building descriptions.
func Text(s string) *string {
	return &s
}

// Key is the composite identity used to match edited rows back to the dataset.
type Key struct {
	Name   string
	Parent string
	Type   string
}

// KeyOf returns the identity of e. When withType is false the type
// component is left empty and only (name, parent) identify the entry.
func KeyOf(e Entry, withType bool) Key {
	k := Key{Name: e.Name, Parent: e.Parent}
	if withType {
		k.Type = e.Type
	}
	return k
}

// Dataset is the complete, unfiltered content of one stored dictionary.
// Fields records which stored fields the source actually carries.
type Dataset struct {
	Fields  []Field `json:"fields"`
	Entries []Entry `json:"entries"`
}

// NewDataset returns a dataset carrying every stored field.
func NewDataset(entries ...Entry) Dataset {
	return Dataset{
		Fields:  append([]Field(nil), StoredFields...),
		Entries: entries,
	}
}

// Has reports whether the dataset schema includes f.
func (d Dataset) Has(f Field) bool {
	for _, have := range d.Fields {
		if have == f {
			return true
		}
	}
	return false
}

// HasType reports whether entries carry a type at all. Without it every
// entry is treated as a table and identity degrades to (name, parent).
func (d Dataset) HasType() bool {
	return d.Has(FieldType)
}

// Len returns the number of entries.
func (d Dataset) Len() int {
	return len(d.Entries)
}

// Clone returns a deep copy of d.
func (d Dataset) Clone() Dataset {
	out := Dataset{
		Fields:  append([]Field(nil), d.Fields...),
		Entries: make([]Entry, len(d.Entries)),
	}
	for i, e := range d.Entries {
		out.Entries[i] = e.clone()
	}
	return out
}

// restrict keeps only the fields of e that the dataset schema carries.
func (d Dataset) restrict(e Entry) Entry {
	var out Entry
	for _, f := range d.Fields {
		copyField(&out, e, f)
	}
	return out
}
