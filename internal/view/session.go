package view

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"datadict/internal/dictionary"
	"datadict/internal/pager"
)

// Snapshot is a rendering of a session: the rows of the current page and
// everything shown around them.
type Snapshot struct {
	Mode          dictionary.Mode         `json:"mode"`
	Dataset       string                  `json:"dataset,omitempty"`
	SelectedTable string                  `json:"selected_table,omitempty"`
	Label         string                  `json:"label"`
	LoadStatus    string                  `json:"load_status,omitempty"`
	SaveStatus    string                  `json:"save_status,omitempty"`
	Columns       []dictionary.ColumnSpec `json:"columns"`
	Rows          []dictionary.Row        `json:"rows"`

	// FirstRow is the index of Rows[0] among all current rows. OpenRow and
	// Edit take such absolute indexes.
	FirstRow  int    `json:"first_row"`
	TotalRows int    `json:"total_rows"`
	Page      int    `json:"page"`
	PageLabel string `json:"page_label"`
}

// Session is one operator's editor. Actions are processed one at a time:
// Dispatch holds the session lock across the storage call of a load or save.
type Session struct {
	mu        sync.Mutex
	machine   Machine
	state     State
	pager     *pager.Pager
	pageLabel string
	logger    *slog.Logger

	// lastUsed is kept outside mu in unix nanoseconds, so it can be read
	// while an action holds the session.
	lastUsed atomic.Int64
}

// NewSession returns an unloaded session.
func NewSession(m Machine, pageSize int, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	p := pager.New(pageSize)
	s := &Session{
		machine:   m,
		pager:     p,
		pageLabel: p.Apply(0, pager.Replaced),
		logger:    logger,
	}
	s.touch()
	return s
}

// Dispatch processes a and returns the resulting snapshot.
func (s *Session) Dispatch(ctx context.Context, a Action) Snapshot {
	s.touch()
	s.mu.Lock()
	defer s.mu.Unlock()

	switch a.(type) {
	case PageNext:
		s.pageLabel = s.pager.Apply(len(s.state.Rows), pager.Next)
	case PagePrev:
		s.pageLabel = s.pager.Apply(len(s.state.Rows), pager.Prev)
	default:
		e := s.machine.Transition(ctx, s.state, a)
		if e.Empty() {
			s.logger.Debug("action ignored", "action", actionName(a), "mode", s.state.Mode)
			break
		}
		s.state.Apply(e)
		switch {
		case e.Replaced():
			s.pageLabel = s.pager.Apply(len(s.state.Rows), pager.Replaced)
		case e.Rows.Set:
			s.pageLabel = s.pager.Apply(len(s.state.Rows), pager.Refresh)
		}
		s.logOutcome(a, e)
	}
	return s.snapshot()
}

func (s *Session) logOutcome(a Action, e Emission) {
	if r := e.Merge; r != nil && !r.Clean() {
		s.logger.Warn("merge did not match every edited row exactly once",
			"dataset", s.state.DatasetName,
			"applied", r.Applied,
			"skipped", r.Skipped,
			"unmatched", r.Unmatched,
			"duplicates", r.Duplicates)
	}
	switch a.(type) {
	case Load:
		s.logger.Info("load", "dataset", s.state.DatasetName, "status", s.state.LoadStatus)
	case Save:
		s.logger.Info("save", "dataset", s.state.DatasetName, "status", s.state.SaveStatus)
	default:
		s.logger.Debug("action", "action", actionName(a), "mode", s.state.Mode, "rows", len(s.state.Rows))
	}
}

// Snapshot returns the current rendering without acting. Reading a
// session counts as using it.
func (s *Session) Snapshot() Snapshot {
	s.touch()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Session) snapshot() Snapshot {
	lo, hi := s.pager.Bounds(len(s.state.Rows))
	rows := make([]dictionary.Row, hi-lo)
	copy(rows, s.state.Rows[lo:hi])
	return Snapshot{
		Mode:          s.state.Mode,
		Dataset:       s.state.DatasetName,
		SelectedTable: s.state.SelectedTable,
		Label:         s.state.Label,
		LoadStatus:    s.state.LoadStatus,
		SaveStatus:    s.state.SaveStatus,
		Columns:       append([]dictionary.ColumnSpec{}, s.state.Schema...),
		Rows:          rows,
		FirstRow:      lo,
		TotalRows:     len(s.state.Rows),
		Page:          s.pager.Page(),
		PageLabel:     s.pageLabel,
	}
}

// LastUsed returns when the session was last dispatched to or read. It
// does not wait for an action in progress.
func (s *Session) LastUsed() time.Time {
	return time.Unix(0, s.lastUsed.Load())
}

func (s *Session) touch() {
	s.lastUsed.Store(s.machine.now().UnixNano())
}

func actionName(a Action) string {
	switch a.(type) {
	case Load:
		return "load"
	case OpenRow:
		return "open"
	case Back:
		return "back"
	case Save:
		return "save"
	case Edit:
		return "edit"
	case PageNext:
		return "next_page"
	case PagePrev:
		return "previous_page"
	}
	return fmt.Sprintf("%T", a)
}
