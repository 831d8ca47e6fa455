// Package pager keeps the current page of a row list consistent with the
// number of rows it pages over.
package pager

import "fmt"

// DefaultPageSize is the number of rows shown per page unless configured.
const DefaultPageSize = 20

// Event is what caused a page recomputation.
type Event int

const (
	// Replaced means the row set was swapped for a new one.
	Replaced Event = iota
	Next
	Prev
	// Refresh recomputes the label and clamps the page without moving it.
	Refresh
)

// TotalPages returns the number of pages needed for rowCount rows. It is
// never less than one, even for an empty row set.
func TotalPages(rowCount, pageSize int) int {
	if pageSize < 1 {
		pageSize = 1
	}
	if rowCount <= 0 {
		return 1
	}
	n := rowCount / pageSize
	if rowCount%pageSize != 0 {
		n++
	}
	return n
}

// Compute returns the page that follows from ev and its label.
func Compute(rowCount, pageSize, current int, ev Event) (int, string) {
	total := TotalPages(rowCount, pageSize)

	page := current
	switch ev {
	case Replaced:
		page = 0
	case Next:
		if current < total-1 {
			page = current + 1
		}
	case Prev:
		if current > 0 {
			page = current - 1
		}
	}
	page = min(max(page, 0), total-1)

	return page, Label(page, total)
}

// Label renders a zero-based page index for display.
func Label(page, total int) string {
	return fmt.Sprintf("Page %d of %d", page+1, total)
}

// Pager tracks the current page for a fixed page size.
type Pager struct {
	size int
	page int
}

// New returns a pager on the first page. Sizes below one fall back to
// DefaultPageSize.
func New(size int) *Pager {
	if size < 1 {
		size = DefaultPageSize
	}
	return &Pager{size: size}
}

// Apply moves the pager in response to ev and returns the new label.
func (p *Pager) Apply(rowCount int, ev Event) string {
	var label string
	p.page, label = Compute(rowCount, p.size, p.page, ev)
	return label
}

// Page returns the zero-based current page.
func (p *Pager) Page() int {
	return p.page
}

// Size returns the page size.
func (p *Pager) Size() int {
	return p.size
}

// Bounds returns the half-open range of row indexes on the current page.
func (p *Pager) Bounds(rowCount int) (lo, hi int) {
	if rowCount <= 0 {
		return 0, 0
	}
	lo = min(p.page*p.size, rowCount)
	hi = lo + min(p.size, rowCount-lo)
	return lo, hi
}
