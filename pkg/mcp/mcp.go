package mcp

const (
	name         = "lintsel"
	instructions = `MCP Server 'lintsel' resolves which lint rules apply to files in this project, based on the project's lint configuration (globally selected rules plus path-scoped overrides).

When to use these tools:
- Determining which lint rules are enforced for a specific file before editing it
- Checking whether violations of a rule may be fixed automatically
- Understanding why a rule is or is not enforced for a particular file

Workflow:
1. Use 'effective_rules' with a file path (relative to the project root, forward slashes) to get the rule codes enforced for that file
2. Use 'is_fixable' with a rule code to check whether its violations may be auto-fixed
3. Use 'explain_path' to trace how the configuration produced the effective rules for a file, including which overrides matched and what each one removed
`
)
