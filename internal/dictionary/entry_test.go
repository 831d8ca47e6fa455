package dictionary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryStored(t *testing.T) {
	var e Entry
	for _, f := range StoredFields {
		assert.False(t, e.Stored(f), "zero entry holds no %s", f)
	}

	e.Set(FieldName, "orders")
	e.Set(FieldType, "")
	e.Set(FieldDescription, "")
	assert.True(t, e.Stored(FieldName))
	assert.True(t, e.Stored(FieldType), "empty text is a value")
	assert.True(t, e.Stored(FieldDescription))
	assert.False(t, e.Stored(FieldParent))

	e.Set(FieldType, "bigint")
	e.Type = ""
	assert.False(t, e.Stored(FieldType), "clearing a non-empty value leaves nothing stored")
}

func TestEmptyTextSurvivesMerge(t *testing.T) {
	var total Entry
	total.Set(FieldName, "total")
	total.Set(FieldParent, "orders")
	total.Set(FieldType, "")
	full := NewDataset(
		Entry{Name: "orders", Parent: "sales", Type: TableType},
		total,
	)

	p := BuildColumns(full, "orders")
	require.Len(t, p.Rows, 1)
	assert.True(t, p.Rows[0].Stored(FieldType), "projection rows carry empty text")
	p.Rows[0].Description = Text("order total")

	merged, report := Merge(full, p.Rows, ModeColumns, "orders")
	require.True(t, report.Clean())
	assert.Equal(t, "order total", merged.Entries[1].Get(FieldDescription))
	assert.True(t, merged.Entries[1].Stored(FieldType), "edited row keeps its empty type")
	assert.False(t, merged.Entries[0].Stored(FieldDescription))
}
