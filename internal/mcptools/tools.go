// Package mcptools exposes the dictionary editor as MCP tools, so an
// assistant can browse and document tables over stdio.
package mcptools

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"datadict/internal/view"
)

// RegisterTools adds one tool per editor action to s. All tools drive the
// same session.
func RegisterTools(s *server.MCPServer, sess *view.Session) {
	loadTool := mcp.NewTool("load_dictionary",
		mcp.WithDescription("Load the data dictionary catalog.schema.data_dict and list its tables"),
		mcp.WithString("catalog",
			mcp.Required(),
			mcp.Description("Catalog holding the dictionary"),
		),
		mcp.WithString("schema",
			mcp.Required(),
			mcp.Description("Schema holding the dictionary"),
		),
	)

	openTool := mcp.NewTool("open_table",
		mcp.WithDescription("Show the columns of the table on the given row of the tables view"),
		mcp.WithNumber("row",
			mcp.Required(),
			mcp.Description("Zero-based row index among all rows of the tables view"),
		),
	)

	backTool := mcp.NewTool("back_to_tables",
		mcp.WithDescription("Return from the columns view to the tables view"),
	)

	editTool := mcp.NewTool("edit_description",
		mcp.WithDescription("Set the description of a row in the current view. Changes are kept until the view changes; call save_changes to write them"),
		mcp.WithNumber("row",
			mcp.Required(),
			mcp.Description("Zero-based row index among all rows of the current view"),
		),
		mcp.WithString("description",
			mcp.Description("New description; omit to clear it"),
		),
	)

	saveTool := mcp.NewTool("save_changes",
		mcp.WithDescription("Merge the edited rows into the dictionary and overwrite it in the database"),
	)

	nextTool := mcp.NewTool("next_page",
		mcp.WithDescription("Show the next page of rows"),
	)

	prevTool := mcp.NewTool("previous_page",
		mcp.WithDescription("Show the previous page of rows"),
	)

	showTool := mcp.NewTool("show_view",
		mcp.WithDescription("Show the current view without changing it"),
	)

	s.AddTool(loadTool, LoadHandler(sess))
	s.AddTool(openTool, OpenHandler(sess))
	s.AddTool(backTool, ActionHandler(sess, view.Back{}))
	s.AddTool(editTool, EditHandler(sess))
	s.AddTool(saveTool, ActionHandler(sess, view.Save{}))
	s.AddTool(nextTool, ActionHandler(sess, view.PageNext{}))
	s.AddTool(prevTool, ActionHandler(sess, view.PagePrev{}))
	s.AddTool(showTool, ShowHandler(sess))
}
