// Package schema generates JSON schemas from Go types.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/invopop/jsonschema"
	"golang.org/x/mod/modfile"
)

// Generator produces JSON schemas for configuration types, with
// property descriptions sourced from Go doc comments.
type Generator struct {
	v        any
	pkgPaths []string
}

// NewGenerator creates a [Generator] for v. Each pkgPath names a
// package in this module whose doc comments should be reflected into
// schema descriptions.
func NewGenerator(v any, pkgPaths ...string) *Generator {
	return &Generator{
		v:        v,
		pkgPaths: pkgPaths,
	}
}

// Generate reflects over the configured type and returns the schema as
// indented JSON.
func (g *Generator) Generate() ([]byte, error) {
	rootDir, modPath, err := findModule()
	if err != nil {
		return nil, err
	}

	r := new(jsonschema.Reflector)

	for _, pkgPath := range g.pkgPaths {
		rel, ok := strings.CutPrefix(pkgPath, modPath)
		if !ok || (rel != "" && !strings.HasPrefix(rel, "/")) {
			return nil, fmt.Errorf("package %q is not in module %q", pkgPath, modPath)
		}

		pkgDir := filepath.Join(rootDir, filepath.FromSlash(strings.TrimPrefix(rel, "/")))

		err := r.AddGoComments(pkgPath, pkgDir)
		if err != nil {
			return nil, fmt.Errorf("add go comments for %q: %w", pkgPath, err)
		}
	}

	js := r.Reflect(g.v)

	jsData, err := json.MarshalIndent(js, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	return jsData, nil
}

// findModule locates the enclosing Go module by walking up from the
// working directory, returning its root directory and module path.
func findModule() (string, string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		data, readErr := os.ReadFile(filepath.Join(dir, "go.mod"))
		if readErr == nil {
			modPath := modfile.ModulePath(data)
			if modPath == "" {
				return "", "", fmt.Errorf("no module path in %s", filepath.Join(dir, "go.mod"))
			}

			return dir, modPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", "", errors.New("go.mod not found")
		}

		dir = parent
	}
}
