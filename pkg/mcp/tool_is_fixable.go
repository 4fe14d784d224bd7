package mcp

import (
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// IsFixableParams defines parameters for the is_fixable tool.
type IsFixableParams struct {
	Code string `json:"code" jsonschema:"the lint rule code to check (e.g. E501)"`
}

// IsFixableResult reports whether a rule's violations may be fixed
// automatically.
type IsFixableResult struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Fixable bool   `json:"fixable"`
}

// createIsFixableResult creates the MCP tool result from IsFixableResult.
func createIsFixableResult(result IsFixableResult) *mcp.CallToolResultFor[IsFixableResult] {
	var msg string
	if result.Fixable {
		msg = fmt.Sprintf("Violations of rule %s may be fixed automatically.", result.Code)
	} else {
		msg = fmt.Sprintf("Rule %s is marked unfixable. Violations must be fixed manually.", result.Code)
	}

	result.Message = msg

	return &mcp.CallToolResultFor[IsFixableResult]{
		Content: []mcp.Content{
			&mcp.TextContent{Text: msg},
		},
		StructuredContent: result,
	}
}
