package mcp

import (
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// EffectiveRulesParams defines parameters for the effective_rules tool.
type EffectiveRulesParams struct {
	Path string `json:"path" jsonschema:"the file path to resolve, relative to the project root, using forward slashes"`
}

// EffectiveRulesResult contains the rules enforced for a file path.
type EffectiveRulesResult struct {
	Message   string   `json:"message"`
	Path      string   `json:"path"`
	Rules     []string `json:"rules"`
	RuleCount int      `json:"ruleCount"`
}

// createEffectiveRulesResult creates the MCP tool result from EffectiveRulesResult.
func createEffectiveRulesResult(result EffectiveRulesResult) *mcp.CallToolResultFor[EffectiveRulesResult] {
	msg := fmt.Sprintf("%d rules are enforced for %s.", result.RuleCount, result.Path)
	result.Message = msg

	return &mcp.CallToolResultFor[EffectiveRulesResult]{
		Content: []mcp.Content{
			&mcp.TextContent{Text: msg},
		},
		StructuredContent: result,
	}
}
