// Package expr provides CEL (Common Expression Language) functionality
// for evaluating predicates against file paths.
//
// It creates CEL environments with custom functions for file path
// operations (pathBase, pathDir, pathExt).
//
// Path predicates have access to variables:
//   - `file` (string): The candidate file path, using forward slashes
//
// Predicates must return a boolean value.
package expr
