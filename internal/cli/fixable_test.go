package cli_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixableCmd(t *testing.T) {
	t.Parallel()

	configPath := writeConfigFile(t, testConfigYAML)

	tcs := map[string]struct {
		wantOutput string
		wantErr    string
		args       []string
	}{
		"fixable rules exit zero": {
			args:       []string{"fixable", "--config", configPath, "E4", "F"},
			wantOutput: "E4: fixable\nF: fixable\n",
		},
		"unknown rules are fixable": {
			args:       []string{"fixable", "--config", configPath, "X999"},
			wantOutput: "X999: fixable\n",
		},
		"unfixable rule fails": {
			args:       []string{"fixable", "--config", configPath, "B"},
			wantOutput: "B: unfixable\n",
			wantErr:    "1 of 1 rules are unfixable",
		},
		"mixed rules report and fail": {
			args:       []string{"fixable", "--config", configPath, "E4", "B"},
			wantOutput: "E4: fixable\nB: unfixable\n",
			wantErr:    "1 of 2 rules are unfixable",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			out, err := executeCommand(t, "", tc.args...)
			assert.Equal(t, tc.wantOutput, out)

			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestFixableCmd_RequiresArgs(t *testing.T) {
	t.Parallel()

	_, err := executeCommand(t, "", "fixable")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg(s)")
}
