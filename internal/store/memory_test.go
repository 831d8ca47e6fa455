package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datadict/internal/dictionary"
)

func TestMemoryRoundTrip(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, err := m.Read(ctx, testName)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "table or view not found")

	ds := dictionary.NewDataset(dictionary.Entry{Name: "orders", Parent: "sales", Type: "table"})
	require.NoError(t, m.Write(ctx, testName, ds))
	assert.Equal(t, 1, m.Writes())

	got, err := m.Read(ctx, testName)
	require.NoError(t, err)
	assert.Equal(t, ds, got)

	got.Entries[0].Description = dictionary.Text("changed")
	stored, _ := m.Get(testName)
	assert.Nil(t, stored.Entries[0].Description, "reads must not alias stored data")
}

func TestMemoryInjectedErrors(t *testing.T) {
	m := NewMemory()
	m.Put(testName, dictionary.NewDataset())
	m.WriteErr = errors.New("disk full")

	err := m.Write(context.Background(), testName, dictionary.NewDataset())
	var se *StorageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "write", se.Op)
	assert.Equal(t, "disk full", err.Error())
	assert.Equal(t, 0, m.Writes())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = m.Read(ctx, testName)
	assert.ErrorIs(t, err, context.Canceled)
}
