package mcp

import (
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/macropower/lintsel/pkg/policy"
)

// ExplainPathParams defines parameters for the explain_path tool.
type ExplainPathParams struct {
	Path string `json:"path" jsonschema:"the file path to explain, relative to the project root, using forward slashes"`
}

// ExplainPathResult contains the resolution trace for a file path.
type ExplainPathResult struct {
	Message   string          `json:"message"`
	Path      string          `json:"path"`
	Base      []string        `json:"base"`
	Effective []string        `json:"effective"`
	Overrides []OverrideTrace `json:"overrides"`
}

// OverrideTrace describes one override's effect on the resolved path.
type OverrideTrace struct {
	Source  string   `json:"source"`
	Ignore  []string `json:"ignore"`
	Removed []string `json:"removed"`
	Matched bool     `json:"matched"`
}

// newExplainPathResult flattens a [policy.Explanation] into the wire
// result.
func newExplainPathResult(e *policy.Explanation) ExplainPathResult {
	result := ExplainPathResult{
		Path:      e.Path,
		Base:      e.Base.Sorted(),
		Effective: e.Effective.Sorted(),
		Overrides: make([]OverrideTrace, 0, len(e.Overrides)),
	}

	for _, o := range e.Overrides {
		removed := o.Removed
		if removed == nil {
			removed = []string{}
		}

		result.Overrides = append(result.Overrides, OverrideTrace{
			Source:  o.Source,
			Ignore:  o.Ignore,
			Removed: removed,
			Matched: o.Matched,
		})
	}

	return result
}

// createExplainPathResult creates the MCP tool result from ExplainPathResult.
func createExplainPathResult(result ExplainPathResult) *mcp.CallToolResultFor[ExplainPathResult] {
	matched := 0

	for _, o := range result.Overrides {
		if o.Matched {
			matched++
		}
	}

	msg := fmt.Sprintf("%d of %d overrides matched %s; %d rules are enforced.",
		matched, len(result.Overrides), result.Path, len(result.Effective))
	result.Message = msg

	return &mcp.CallToolResultFor[ExplainPathResult]{
		Content: []mcp.Content{
			&mcp.TextContent{Text: msg},
		},
		StructuredContent: result,
	}
}
