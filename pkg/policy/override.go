package policy

import (
	"errors"
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/invopop/jsonschema"

	"github.com/macropower/lintsel/pkg/expr"
	"github.com/macropower/lintsel/pkg/pattern"
	"github.com/macropower/lintsel/pkg/rule"
)

var (
	// ErrNoMatcher is returned when an override has neither a match pattern
	// nor a match expression.
	ErrNoMatcher = errors.New("override requires match or expr")

	// ErrAmbiguousMatcher is returned when an override has both a match
	// pattern and a match expression.
	ErrAmbiguousMatcher = errors.New("match and expr are mutually exclusive")
)

// Override disables rule codes for file paths matching a glob pattern or a
// CEL expression. Exactly one of Match and Expr must be set.
//
// Match uses glob syntax:
//   - `*` matches within a path segment, `**` matches across segments
//   - A pattern without `/` matches against the final path segment only
//   - A pattern containing `/` matches against the entire path
//   - Matching is case-sensitive and always covers the whole string
//
// Expr is a CEL expression with access to variables:
//   - `file` (string): The candidate file path, using forward slashes
//
// Expr CEL expressions must return a boolean value:
//   - file.endsWith("_test.py") - true for test files
//   - pathBase(file) == "conf.py" - true for files named conf.py
//   - pathDir(file).contains("migrations") - true under migrations directories
//
// CEL path functions available:
//   - pathBase(string): Returns the last element of the path (filename)
//   - pathDir(string): Returns all but the last element of the path (directory)
//   - pathExt(string): Returns the file extension including the dot
//
// CEL also provides standard functions like `endsWith`, `contains`,
// `startsWith`, `matches`, the `in` operator, and logical operators like
// `&&`, `||`, and `!`.
//
//nolint:recvcheck // Must satisfy the jsonschema interface.
type Override struct {
	matcher      *pattern.Pattern // Compiled glob for matching file paths.
	matchProgram cel.Program      // Compiled CEL program for matching file paths.
	ignored      rule.Set

	// Match is a glob pattern to match file paths.
	Match string `json:"match,omitempty" jsonschema:"title=Match Pattern"`
	// Expr is a CEL expression to match file paths.
	Expr string `json:"expr,omitempty" jsonschema:"title=Match Expression"`
	// Ignore lists rule codes to disable for matching paths.
	Ignore []string `json:"ignore" jsonschema:"title=Ignored Rules" yaml:"ignore,flow"`
}

// NewOverride creates a new [Override] matching the given glob pattern.
func NewOverride(match string, ignore ...string) (*Override, error) {
	o := &Override{
		Match:  match,
		Ignore: ignore,
	}
	if err := o.Compile(); err != nil {
		return nil, fmt.Errorf("override %q: %w", match, err)
	}

	return o, nil
}

// MustNewOverride creates a new [Override] and panics if there's an error.
func MustNewOverride(match string, ignore ...string) *Override {
	o, err := NewOverride(match, ignore...)
	if err != nil {
		panic(err)
	}

	return o
}

// NewExprOverride creates a new [Override] matching the given CEL expression.
func NewExprOverride(expression string, ignore ...string) (*Override, error) {
	o := &Override{
		Expr:   expression,
		Ignore: ignore,
	}
	if err := o.Compile(); err != nil {
		return nil, fmt.Errorf("override %q: %w", expression, err)
	}

	return o, nil
}

// MustNewExprOverride creates a new [Override] and panics if there's an error.
func MustNewExprOverride(expression string, ignore ...string) *Override {
	o, err := NewExprOverride(expression, ignore...)
	if err != nil {
		panic(err)
	}

	return o
}

// Compile compiles the override's matcher.
func (o *Override) Compile() error {
	switch {
	case o.Match != "" && o.Expr != "":
		return ErrAmbiguousMatcher

	case o.Match == "" && o.Expr == "":
		return ErrNoMatcher
	}

	if o.ignored == nil {
		o.ignored = rule.NewSet(o.Ignore...)
	}

	if o.Match != "" {
		if o.matcher == nil {
			m, err := pattern.Compile(o.Match)
			if err != nil {
				return fmt.Errorf("compile match pattern: %w", err)
			}

			o.matcher = m
		}

		return nil
	}

	if o.matchProgram == nil {
		env, err := expr.NewPathEnvironment()
		if err != nil {
			return fmt.Errorf("create CEL environment: %w", err)
		}

		program, err := env.Compile(o.Expr)
		if err != nil {
			return fmt.Errorf("compile match expression: %w", err)
		}

		o.matchProgram = program
	}

	return nil
}

// Matches reports whether the override applies to the file at the given path.
func (o *Override) Matches(filePath string) bool {
	if o.matcher != nil {
		return o.matcher.Match(filePath)
	}

	if o.matchProgram == nil {
		panic(errors.New("override missing a compiled matcher"))
	}

	result, _, err := o.matchProgram.Eval(map[string]any{"file": filePath})
	if err != nil {
		// If evaluation fails, consider it a non-match.
		return false
	}

	// CEL expression must return a boolean value.
	if boolVal, ok := result.Value().(bool); ok {
		return boolVal
	}

	// If the result is not a boolean, treat as non-match.
	return false
}

// Source returns the override's match pattern or expression.
func (o *Override) Source() string {
	if o.Match != "" {
		return o.Match
	}

	return o.Expr
}

func (o Override) JSONSchemaExtend(jss *jsonschema.Schema) {
	jss.OneOf = []*jsonschema.Schema{
		{Required: []string{"match"}},
		{Required: []string{"expr"}},
	}
}
