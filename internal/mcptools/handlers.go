package mcptools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"datadict/internal/dictionary"
	"datadict/internal/view"
)

type handlerFunc = func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

// LoadHandler creates a handler for the load_dictionary tool
func LoadHandler(sess *view.Session) handlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		catalog, err := request.RequireString("catalog")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Missing catalog parameter: %v", err)), nil
		}
		schema, err := request.RequireString("schema")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Missing schema parameter: %v", err)), nil
		}
		return snapshotResult(sess.Dispatch(ctx, view.Load{Catalog: catalog, Schema: schema}))
	}
}

// OpenHandler creates a handler for the open_table tool
func OpenHandler(sess *view.Session) handlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		row, err := intArg(request, "row")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid row parameter: %v", err)), nil
		}
		return snapshotResult(sess.Dispatch(ctx, view.OpenRow{Row: row, Column: dictionary.FieldOpen}))
	}
}

// EditHandler creates a handler for the edit_description tool
func EditHandler(sess *view.Session) handlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		row, err := intArg(request, "row")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid row parameter: %v", err)), nil
		}

		var desc *string
		if args, ok := request.Params.Arguments.(map[string]any); ok {
			switch v := args["description"].(type) {
			case nil:
			case string:
				desc = &v
			default:
				return mcp.NewToolResultError(fmt.Sprintf("Invalid description parameter: want a string, got %T", v)), nil
			}
		}
		return snapshotResult(sess.Dispatch(ctx, view.Edit{Row: row, Description: desc}))
	}
}

// ActionHandler creates a handler for a tool without parameters
func ActionHandler(sess *view.Session, a view.Action) handlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return snapshotResult(sess.Dispatch(ctx, a))
	}
}

// ShowHandler creates a handler for the show_view tool
func ShowHandler(sess *view.Session) handlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return snapshotResult(sess.Snapshot())
	}
}

func snapshotResult(snap view.Snapshot) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to marshal view: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

// intArg reads a whole number argument. JSON numbers arrive as float64.
func intArg(request mcp.CallToolRequest, key string) (int, error) {
	args, ok := request.Params.Arguments.(map[string]any)
	if !ok {
		return 0, fmt.Errorf("missing arguments")
	}
	v, exists := args[key]
	if !exists {
		return 0, fmt.Errorf("required argument %q not found", key)
	}
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("argument %q is not a number", key)
	}
	if f != float64(int(f)) {
		return 0, fmt.Errorf("argument %q is not a whole number", key)
	}
	return int(f), nil
}
