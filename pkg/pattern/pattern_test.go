package pattern_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/lintsel/pkg/pattern"
)

func TestCompile(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		pattern string
		wantErr bool
	}{
		"bare filename":    {pattern: "__init__.py"},
		"extension glob":   {pattern: "*.pyx"},
		"anchored path":    {pattern: "hummingbot/core/*.py"},
		"any depth":        {pattern: "**/*.pyx"},
		"empty":            {pattern: "", wantErr: true},
		"unclosed bracket": {pattern: "[", wantErr: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			p, err := pattern.Compile(tc.pattern)

			if tc.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.pattern, p.String())
		})
	}
}

func TestMustCompile(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		pattern.MustCompile("**/*.py")
	})
	assert.Panics(t, func() {
		pattern.MustCompile("")
	})
}

func TestPattern_Match(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		pattern string
		path    string
		want    bool
	}{
		// Bare filename patterns match only the final segment.
		"bare name at depth": {
			pattern: "__init__.py",
			path:    "a/b/__init__.py",
			want:    true,
		},
		"bare name at root": {
			pattern: "__init__.py",
			path:    "__init__.py",
			want:    true,
		},
		"bare name different extension": {
			pattern: "__init__.py",
			path:    "a/__init__.pyx",
			want:    false,
		},
		"bare name is not a substring match": {
			pattern: "init.py",
			path:    "a/__init__.py",
			want:    false,
		},
		"bare star stays within segment": {
			pattern: "*.pyx",
			path:    "hummingbot/core/foo.pyx",
			want:    true, // No separator, so only "foo.pyx" is tested.
		},

		// Any-depth patterns.
		"double star at depth": {
			pattern: "**/*.pyx",
			path:    "hummingbot/core/foo.pyx",
			want:    true,
		},
		"double star at depth zero": {
			pattern: "**/*.pyx",
			path:    "foo.pyx",
			want:    true,
		},
		"double star wrong extension": {
			pattern: "**/*.pyx",
			path:    "hummingbot/core/foo.py",
			want:    false,
		},

		// Anchored path patterns.
		"anchored match": {
			pattern: "hummingbot/core/*.py",
			path:    "hummingbot/core/foo.py",
			want:    true,
		},
		"anchored star does not cross segments": {
			pattern: "hummingbot/*.py",
			path:    "hummingbot/core/foo.py",
			want:    false,
		},
		"anchored pattern requires full path": {
			pattern: "core/*.py",
			path:    "hummingbot/core/foo.py",
			want:    false,
		},
		"anchored double star crosses segments": {
			pattern: "hummingbot/**/*.py",
			path:    "hummingbot/core/utils/async_utils.py",
			want:    true,
		},

		// Case sensitivity.
		"case sensitive": {
			pattern: "*.PY",
			path:    "foo.py",
			want:    false,
		},

		// Normalization.
		"leading dot slash": {
			pattern: "**/*.pyx",
			path:    "./hummingbot/core/foo.pyx",
			want:    true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			p := pattern.MustCompile(tc.pattern)

			assert.Equal(t, tc.want, p.Match(tc.path),
				"pattern %q against path %q", tc.pattern, tc.path)
		})
	}
}

func TestPattern_MatchIsPure(t *testing.T) {
	t.Parallel()

	p := pattern.MustCompile("**/*.pyx")

	for range 3 {
		assert.True(t, p.Match("a/b.pyx"))
		assert.False(t, p.Match("a/b.py"))
	}
}
