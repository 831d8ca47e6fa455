// Package store reads and rewrites data dictionary tables.
package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"datadict/internal/dictionary"
)

// Store loads a named dictionary and overwrites it in full.
type Store interface {
	// Read returns the whole dataset stored under name.
	Read(ctx context.Context, name string) (dictionary.Dataset, error)

	// Write replaces the content stored under name with ds. Either every
	// row is written or nothing changes.
	Write(ctx context.Context, name string, ds dictionary.Dataset) error

	Close() error
}

// StorageError reports a failed read or write. Its message is the
// underlying cause only, so it can be shown to an operator as is.
type StorageError struct {
	Op   string
	Name string
	Err  error
}

func (e *StorageError) Error() string {
	if e.Err == nil {
		return e.Op + " failed"
	}
	return e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageErr(op, name string, err error) error {
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Name: name, Err: err}
}

var identRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$]*$`)

// Name identifies a dictionary table as catalog.schema.table.
type Name struct {
	Catalog string
	Schema  string
	Table   string
}

func (n Name) String() string {
	return n.Catalog + "." + n.Schema + "." + n.Table
}

// ParseName splits a dotted dictionary name and checks that every segment
// is a plain identifier, so it can be quoted safely into SQL.
func ParseName(s string) (Name, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Name{}, fmt.Errorf("invalid dictionary name %q: want catalog.schema.table", s)
	}
	for _, p := range parts {
		if !identRE.MatchString(p) {
			return Name{}, fmt.Errorf("invalid identifier %q in dictionary name %q", p, s)
		}
	}
	return Name{Catalog: parts[0], Schema: parts[1], Table: parts[2]}, nil
}
