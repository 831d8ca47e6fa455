package mcptools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datadict/internal/dictionary"
	"datadict/internal/store"
	"datadict/internal/testutil"
	"datadict/internal/view"
)

func newSession(t *testing.T) (*view.Session, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	mem.Put("catalog.schema.data_dict", dictionary.NewDataset(
		dictionary.Entry{Name: "orders", Parent: "catalog.schema.orders", Type: "table"},
		dictionary.Entry{Name: "id", Parent: "catalog.schema.orders", Type: "bigint"},
	))
	return view.NewSession(view.Machine{Store: mem}, 20, testutil.NewTestLogger(t)), mem
}

// request builds a tool call the way it arrives over the wire.
func request(t *testing.T, name, args string) mcp.CallToolRequest {
	t.Helper()
	var req mcp.CallToolRequest
	raw := `{"params":{"name":"` + name + `","arguments":` + args + `}}`
	require.NoError(t, json.Unmarshal([]byte(raw), &req))
	return req
}

func call(t *testing.T, h handlerFunc, req mcp.CallToolRequest) (*mcp.CallToolResult, string) {
	t.Helper()
	res, err := h(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "want text content, got %T", res.Content[0])
	return res, text.Text
}

func snapshotOf(t *testing.T, text string) view.Snapshot {
	t.Helper()
	var snap view.Snapshot
	require.NoError(t, json.Unmarshal([]byte(text), &snap))
	return snap
}

func TestToolFlow(t *testing.T) {
	sess, mem := newSession(t)

	res, text := call(t, LoadHandler(sess), request(t, "load_dictionary", `{"catalog":"catalog","schema":"schema"}`))
	assert.False(t, res.IsError)
	snap := snapshotOf(t, text)
	assert.Equal(t, "Tables in dictionary: catalog.schema", snap.Label)

	_, text = call(t, OpenHandler(sess), request(t, "open_table", `{"row":0}`))
	assert.Equal(t, "Columns for table: orders", snapshotOf(t, text).Label)

	_, text = call(t, EditHandler(sess), request(t, "edit_description", `{"row":0,"description":"order id"}`))
	assert.Equal(t, "order id", *snapshotOf(t, text).Rows[0].Description)

	_, text = call(t, ActionHandler(sess, view.Save{}), request(t, "save_changes", `{}`))
	assert.Equal(t, "Saved changes to catalog.schema.data_dict (click #1).", snapshotOf(t, text).SaveStatus)

	stored, _ := mem.Get("catalog.schema.data_dict")
	assert.Equal(t, "order id", *stored.Entries[1].Description)

	_, text = call(t, ShowHandler(sess), request(t, "show_view", `{}`))
	assert.Equal(t, dictionary.ModeColumns, snapshotOf(t, text).Mode)
}

func TestEditClearsDescription(t *testing.T) {
	sess, _ := newSession(t)
	call(t, LoadHandler(sess), request(t, "load_dictionary", `{"catalog":"catalog","schema":"schema"}`))
	call(t, EditHandler(sess), request(t, "edit_description", `{"row":0,"description":"x"}`))

	_, text := call(t, EditHandler(sess), request(t, "edit_description", `{"row":0}`))
	assert.Nil(t, snapshotOf(t, text).Rows[0].Description)
}

func TestInvalidArguments(t *testing.T) {
	sess, _ := newSession(t)

	var tests = []struct {
		name string
		h    handlerFunc
		args string
	}{
		{"load without schema", LoadHandler(sess), `{"catalog":"catalog"}`},
		{"open without row", OpenHandler(sess), `{}`},
		{"open with text row", OpenHandler(sess), `{"row":"first"}`},
		{"open with fractional row", OpenHandler(sess), `{"row":1.5}`},
		{"edit with numeric description", EditHandler(sess), `{"row":0,"description":7}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, _ := call(t, tt.h, request(t, "tool", tt.args))
			assert.True(t, res.IsError)
		})
	}
}

func TestStorageProblemsAreNotToolErrors(t *testing.T) {
	sess, _ := newSession(t)

	res, text := call(t, LoadHandler(sess), request(t, "load_dictionary", `{"catalog":"missing","schema":"schema"}`))
	assert.False(t, res.IsError)
	assert.Contains(t, snapshotOf(t, text).LoadStatus, "Error loading missing.schema.data_dict")
}
