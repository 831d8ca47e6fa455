package view

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datadict/internal/dictionary"
	"datadict/internal/store"
)

const scenarioName = "catalog.schema.data_dict"

func clock() time.Time {
	return time.Date(2026, 10, 18, 14, 5, 9, 0, time.Local)
}

func scenarioDataset() dictionary.Dataset {
	return dictionary.NewDataset(
		dictionary.Entry{Name: "orders", Parent: "catalog.schema.orders", Type: "table", Description: dictionary.Text("")},
		dictionary.Entry{Name: "id", Parent: "catalog.schema.orders", Type: "bigint", Description: dictionary.Text("")},
	)
}

func newMachine(t *testing.T) (Machine, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	mem.Put(scenarioName, scenarioDataset())
	return Machine{Store: mem, Now: clock}, mem
}

// run applies each action in turn starting from s.
func run(m Machine, s State, actions ...Action) State {
	for _, a := range actions {
		s.Apply(m.Transition(context.Background(), s, a))
	}
	return s
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name       string
		action     Load
		wantLabel  string
		wantStatus string
		wantRows   int
		wantName   string
	}{
		{
			name:       "success",
			action:     Load{Catalog: "catalog", Schema: "schema"},
			wantLabel:  "Tables in dictionary: catalog.schema",
			wantStatus: "Loaded catalog.schema.data_dict (2 rows) at 14:05:09",
			wantRows:   1,
			wantName:   scenarioName,
		},
		{
			name:       "inputs are trimmed",
			action:     Load{Catalog: "  catalog ", Schema: "schema\t"},
			wantLabel:  "Tables in dictionary: catalog.schema",
			wantStatus: "Loaded catalog.schema.data_dict (2 rows) at 14:05:09",
			wantRows:   1,
			wantName:   scenarioName,
		},
		{
			name:       "missing schema",
			action:     Load{Catalog: "catalog"},
			wantLabel:  "Table: (none loaded)",
			wantStatus: "Please enter both catalog and schema.",
		},
		{
			name:       "blank catalog",
			action:     Load{Catalog: "   ", Schema: "schema"},
			wantLabel:  "Table: (none loaded)",
			wantStatus: "Please enter both catalog and schema.",
		},
		{
			name:       "read fails",
			action:     Load{Catalog: "other", Schema: "schema"},
			wantLabel:  "Table: other.schema.data_dict",
			wantStatus: "Error loading other.schema.data_dict: table or view not found: other.schema.data_dict",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newMachine(t)
			// start from a loaded columns view so clearing is observable
			s := run(m, State{}, Load{Catalog: "catalog", Schema: "schema"}, OpenRow{Row: 0, Column: dictionary.FieldOpen})
			s.SaveStatus = "kept"

			s = run(m, s, tt.action)

			assert.Equal(t, dictionary.ModeTables, s.Mode)
			assert.Equal(t, tt.wantLabel, s.Label)
			assert.Equal(t, tt.wantStatus, s.LoadStatus)
			assert.Len(t, s.Rows, tt.wantRows)
			assert.Equal(t, tt.wantName, s.DatasetName)
			assert.Empty(t, s.SelectedTable)
			assert.Equal(t, "kept", s.SaveStatus, "load never touches the save status")
			if tt.wantName == "" {
				assert.Nil(t, s.Full)
				assert.Empty(t, s.Schema)
			} else {
				require.NotNil(t, s.Full)
				assert.Equal(t, 2, s.Full.Len())
			}
		})
	}
}

func TestLoadStorageTimeout(t *testing.T) {
	m := Machine{Store: blockingStore{}, Now: clock, Timeout: 10 * time.Millisecond}

	s := run(m, State{}, Load{Catalog: "catalog", Schema: "schema"})
	assert.Equal(t, "Error loading catalog.schema.data_dict: context deadline exceeded", s.LoadStatus)
	assert.Nil(t, s.Full)
}

type blockingStore struct{}

func (blockingStore) Read(ctx context.Context, name string) (dictionary.Dataset, error) {
	<-ctx.Done()
	return dictionary.Dataset{}, ctx.Err()
}

func (blockingStore) Write(ctx context.Context, name string, ds dictionary.Dataset) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestOpenRow(t *testing.T) {
	m, _ := newMachine(t)
	loaded := run(m, State{}, Load{Catalog: "catalog", Schema: "schema"})

	tests := []struct {
		name   string
		state  State
		action OpenRow
		noop   bool
	}{
		{"open marker", loaded, OpenRow{Row: 0, Column: dictionary.FieldOpen}, false},
		{"other column", loaded, OpenRow{Row: 0, Column: dictionary.FieldDescription}, true},
		{"row out of range", loaded, OpenRow{Row: 1, Column: dictionary.FieldOpen}, true},
		{"negative row", loaded, OpenRow{Row: -1, Column: dictionary.FieldOpen}, true},
		{"not loaded", State{}, OpenRow{Row: 0, Column: dictionary.FieldOpen}, true},
		{"in columns view", run(m, loaded, OpenRow{Column: dictionary.FieldOpen}), OpenRow{Row: 0, Column: dictionary.FieldOpen}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := m.Transition(context.Background(), tt.state, tt.action)
			if tt.noop {
				assert.True(t, e.Empty())
				return
			}
			s := tt.state
			s.Apply(e)
			assert.Equal(t, dictionary.ModeColumns, s.Mode)
			assert.Equal(t, "orders", s.SelectedTable)
			assert.Equal(t, "Columns for table: orders", s.Label)
			require.Len(t, s.Rows, 1)
			assert.Equal(t, "id", s.Rows[0].Name)
			assert.Equal(t, scenarioName, s.DatasetName, "dataset name is unchanged")
			assert.Equal(t, loaded.LoadStatus, s.LoadStatus)
		})
	}
}

func TestOpenRowWithoutName(t *testing.T) {
	m, mem := newMachine(t)
	mem.Put(scenarioName, dictionary.NewDataset(dictionary.Entry{Parent: "catalog.schema.x", Type: "table"}))

	s := run(m, State{}, Load{Catalog: "catalog", Schema: "schema"})
	e := m.Transition(context.Background(), s, OpenRow{Row: 0, Column: dictionary.FieldOpen})
	assert.True(t, e.Empty())
}

func TestBack(t *testing.T) {
	m, _ := newMachine(t)
	loaded := run(m, State{}, Load{Catalog: "catalog", Schema: "schema"})
	columns := run(m, loaded, OpenRow{Row: 0, Column: dictionary.FieldOpen})

	s := run(m, columns, Back{})
	assert.Equal(t, dictionary.ModeTables, s.Mode)
	assert.Equal(t, "Tables in dictionary: catalog.schema", s.Label)
	assert.Empty(t, s.SelectedTable)
	assert.Equal(t, loaded.Rows, s.Rows)

	assert.True(t, m.Transition(context.Background(), loaded, Back{}).Empty(), "back from tables view")
	assert.True(t, m.Transition(context.Background(), State{Mode: dictionary.ModeColumns}, Back{}).Empty(), "back without dataset")
}

func TestEdit(t *testing.T) {
	m, _ := newMachine(t)
	loaded := run(m, State{}, Load{Catalog: "catalog", Schema: "schema"})

	e := m.Transition(context.Background(), loaded, Edit{Row: 0, Description: dictionary.Text("all orders")})
	require.True(t, e.Rows.Set)
	assert.True(t, e.InPlace)
	assert.False(t, e.Replaced())
	assert.Equal(t, "all orders", *e.Rows.Value[0].Description)
	assert.Equal(t, "", *loaded.Rows[0].Description, "edit must not alias the previous rows")
	assert.Equal(t, "", *loaded.Full.Entries[0].Description, "edit never touches the dataset")

	cleared := m.Transition(context.Background(), loaded, Edit{Row: 0})
	assert.Nil(t, cleared.Rows.Value[0].Description)

	assert.True(t, m.Transition(context.Background(), loaded, Edit{Row: 3}).Empty())
	assert.True(t, m.Transition(context.Background(), State{}, Edit{Row: 0}).Empty())
}

func TestSave(t *testing.T) {
	t.Run("nothing loaded", func(t *testing.T) {
		m, mem := newMachine(t)
		s := run(m, State{}, Save{})
		assert.Equal(t, "No table loaded. Please load a table before saving.", s.SaveStatus)
		assert.Equal(t, 1, s.Saves)
		assert.Equal(t, 0, mem.Writes())
	})

	t.Run("no dataset in memory", func(t *testing.T) {
		m, mem := newMachine(t)
		s := run(m, State{DatasetName: scenarioName, Saves: 4}, Save{})
		assert.Equal(t, "No in-memory copy of the data dictionary. Try reloading it.", s.SaveStatus)
		assert.Equal(t, 5, s.Saves)
		assert.Equal(t, 0, mem.Writes())
	})

	t.Run("tables view", func(t *testing.T) {
		m, mem := newMachine(t)
		s := run(m, State{},
			Load{Catalog: "catalog", Schema: "schema"},
			Edit{Row: 0, Description: dictionary.Text("one row per order")},
			Save{},
		)
		assert.Equal(t, "Saved changes to catalog.schema.data_dict (click #1).", s.SaveStatus)
		assert.Equal(t, "Tables in dictionary: catalog.schema", s.Label)
		assert.Equal(t, "one row per order", *s.Rows[0].Description)
		assert.Equal(t, dictionary.OpenMarker, s.Rows[0].Open)

		stored, _ := mem.Get(scenarioName)
		assert.Equal(t, "one row per order", *stored.Entries[0].Description)
		assert.Equal(t, "", *stored.Entries[1].Description)
	})

	t.Run("write fails", func(t *testing.T) {
		m, mem := newMachine(t)
		s := run(m, State{}, Load{Catalog: "catalog", Schema: "schema"}, Edit{Row: 0, Description: dictionary.Text("x")})
		full := s.Full
		mem.WriteErr = errors.New("PERMISSION_DENIED: no MODIFY on data_dict")

		e := m.Transition(context.Background(), s, Save{})
		assert.False(t, e.Full.Set)
		assert.False(t, e.Rows.Set)
		require.NotNil(t, e.Merge)
		s.Apply(e)

		assert.Equal(t, "Error saving changes: PERMISSION_DENIED: no MODIFY on data_dict", s.SaveStatus)
		assert.Same(t, full, s.Full)
		assert.Equal(t, "", *s.Full.Entries[0].Description)
		assert.Equal(t, "x", *s.Rows[0].Description, "unsaved edits survive a failed save")
	})

	t.Run("counter counts every click", func(t *testing.T) {
		m, _ := newMachine(t)
		s := run(m, State{}, Save{}, Load{Catalog: "catalog", Schema: "schema"}, Save{}, Save{})
		assert.Equal(t, "Saved changes to catalog.schema.data_dict (click #3).", s.SaveStatus)
	})
}

func TestTransitionIgnoresPaging(t *testing.T) {
	m, _ := newMachine(t)
	s := run(m, State{}, Load{Catalog: "catalog", Schema: "schema"})

	assert.True(t, m.Transition(context.Background(), s, PageNext{}).Empty())
	assert.True(t, m.Transition(context.Background(), s, PagePrev{}).Empty())
	assert.True(t, m.Transition(context.Background(), s, nil).Empty())
}

func TestScenario(t *testing.T) {
	m, mem := newMachine(t)

	s := run(m, State{}, Load{Catalog: "catalog", Schema: "schema"})
	require.Len(t, s.Rows, 1)
	assert.Equal(t, "orders", s.Rows[0].Name)
	assert.Equal(t, "Open", s.Rows[0].Open)

	s = run(m, s, OpenRow{Row: 0, Column: dictionary.FieldOpen})
	require.Len(t, s.Rows, 1)
	assert.Equal(t, "id", s.Rows[0].Name)
	assert.Equal(t, "Columns for table: orders", s.Label)

	s = run(m, s, Edit{Row: 0, Description: dictionary.Text("order id")}, Save{})

	stored, ok := mem.Get(scenarioName)
	require.True(t, ok)
	require.Len(t, stored.Entries, 2)
	assert.Equal(t, "", *stored.Entries[0].Description)
	assert.Equal(t, "order id", *stored.Entries[1].Description)
	assert.Equal(t, stored, *s.Full)

	require.Len(t, s.Rows, 1)
	assert.Equal(t, "order id", *s.Rows[0].Description)
	assert.Equal(t, dictionary.ModeColumns, s.Mode)
}

func TestDatasetName(t *testing.T) {
	assert.Equal(t, "main.sales.data_dict", DatasetName("main", "sales"))
	assert.Equal(t, "Tables in dictionary: main.sales", tablesLabel("main.sales.data_dict"))
}
