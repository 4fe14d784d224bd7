package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/lintsel/pkg/policy"
)

func TestNewOverride(t *testing.T) {
	t.Parallel()

	o, err := policy.NewOverride("**/*.pyx", "E225", "E226")
	require.NoError(t, err)
	assert.Equal(t, "**/*.pyx", o.Match)
	assert.Equal(t, []string{"E225", "E226"}, o.Ignore)

	_, err = policy.NewOverride("[")
	require.Error(t, err)

	require.Panics(t, func() {
		policy.MustNewOverride("[")
	})
	require.NotPanics(t, func() {
		policy.MustNewOverride("*.py", "E501")
	})
}

func TestNewExprOverride(t *testing.T) {
	t.Parallel()

	o, err := policy.NewExprOverride(`file.endsWith(".pyx")`, "E225")
	require.NoError(t, err)
	assert.Equal(t, `file.endsWith(".pyx")`, o.Expr)

	_, err = policy.NewExprOverride(`file ==`)
	require.Error(t, err)

	require.Panics(t, func() {
		policy.MustNewExprOverride(`file ==`)
	})
	require.NotPanics(t, func() {
		policy.MustNewExprOverride("true", "E501")
	})
}

func TestOverride_Compile(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input   *policy.Override
		wantErr error
	}{
		"match only": {
			input: &policy.Override{Match: "*.py"},
		},
		"expr only": {
			input: &policy.Override{Expr: "true"},
		},
		"match and expr": {
			input:   &policy.Override{Match: "*.py", Expr: "true"},
			wantErr: policy.ErrAmbiguousMatcher,
		},
		"neither match nor expr": {
			input:   &policy.Override{Ignore: []string{"E225"}},
			wantErr: policy.ErrNoMatcher,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := tc.input.Compile()
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)

				return
			}

			require.NoError(t, err)

			// Compiling again is a no-op.
			require.NoError(t, tc.input.Compile())
		})
	}
}

func TestOverride_Matches(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		override *policy.Override
		path     string
		want     bool
	}{
		"glob match": {
			override: policy.MustNewOverride("**/*.pyx"),
			path:     "hummingbot/core/clock.pyx",
			want:     true,
		},
		"glob non-match": {
			override: policy.MustNewOverride("**/*.pyx"),
			path:     "hummingbot/core/clock.py",
			want:     false,
		},
		"expression match": {
			override: policy.MustNewExprOverride(`pathExt(file) == ".pyx"`),
			path:     "hummingbot/core/clock.pyx",
			want:     true,
		},
		"expression non-match": {
			override: policy.MustNewExprOverride(`pathExt(file) == ".pyx"`),
			path:     "hummingbot/core/clock.py",
			want:     false,
		},
		"expression evaluation error is a non-match": {
			override: policy.MustNewExprOverride(`file.substring(0, 100) == "x"`),
			path:     "short.py",
			want:     false,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, tc.override.Matches(tc.path))
		})
	}
}

func TestOverride_MatchesPanicsWhenUncompiled(t *testing.T) {
	t.Parallel()

	o := &policy.Override{Expr: "true"}

	require.Panics(t, func() {
		o.Matches("main.py")
	})
}

func TestOverride_Source(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "**/*.pyx", policy.MustNewOverride("**/*.pyx", "E225").Source())
	assert.Equal(t, "true", policy.MustNewExprOverride("true", "E225").Source())
}
