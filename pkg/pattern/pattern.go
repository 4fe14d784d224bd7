// Package pattern compiles glob-style path patterns.
//
// Matching is case-sensitive and total: a pattern must account for the
// entire candidate, never a substring. `*` matches within a single path
// segment, `**` matches across segments. A pattern without a separator
// matches only the final path segment, so `__init__.py` targets files
// named exactly that at any depth. A pattern containing a separator is
// anchored against the whole path; a leading `**/` additionally matches
// at depth zero, so `**/*.pyx` covers both `foo.pyx` and `a/b/foo.pyx`.
package pattern

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/gobwas/glob"
)

var ErrEmptyPattern = errors.New("empty pattern")

// Pattern is a compiled path glob. It is immutable and safe for
// concurrent use.
type Pattern struct {
	matcher  glob.Glob
	rootless glob.Glob // Remainder after a leading "**/", for depth-zero matches.
	raw      string
	baseOnly bool // No separator in the pattern; match the final segment.
}

// Compile parses a glob pattern. Malformed patterns are rejected here so
// that matching itself can never fail.
func Compile(p string) (*Pattern, error) {
	if p == "" {
		return nil, ErrEmptyPattern
	}

	g, err := glob.Compile(p, '/')
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", p, err)
	}

	pat := &Pattern{
		raw:      p,
		matcher:  g,
		baseOnly: !strings.Contains(p, "/"),
	}

	if rest, ok := strings.CutPrefix(p, "**/"); ok && rest != "" {
		rg, err := glob.Compile(rest, '/')
		if err != nil {
			return nil, fmt.Errorf("compile pattern %q: %w", p, err)
		}

		pat.rootless = rg
	}

	return pat, nil
}

// MustCompile is like [Compile] but panics on error.
func MustCompile(p string) *Pattern {
	pat, err := Compile(p)
	if err != nil {
		panic(err)
	}

	return pat
}

// Match reports whether filePath matches the pattern. Paths use forward
// slashes; a leading "./" is ignored.
func (p *Pattern) Match(filePath string) bool {
	fp := strings.TrimPrefix(filePath, "./")

	if p.baseOnly {
		return p.matcher.Match(path.Base(fp))
	}

	if p.matcher.Match(fp) {
		return true
	}

	return p.rootless != nil && p.rootless.Match(fp)
}

func (p *Pattern) String() string {
	return p.raw
}
