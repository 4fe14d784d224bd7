package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/aymanbagabas/go-udiff"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/macropower/lintsel/api/v1beta1/configs"
)

func NewConfigCmd(rootArgs *RootArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and manage the configuration",
	}

	cmd.AddCommand(
		NewConfigShowCmd(rootArgs),
		NewConfigInitCmd(rootArgs),
		NewConfigDiffCmd(rootArgs),
		NewConfigPathCmd(rootArgs),
	)

	return cmd
}

func NewConfigShowCmd(rootArgs *RootArgs) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the active configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd, rootArgs)
		},
	}
}

func runConfigShow(cmd *cobra.Command, ra *RootArgs) error {
	path, err := resolveConfigPath(ra)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(path)
	if err != nil {
		return err
	}

	slog.Info("active configuration", slog.String("path", path))

	yamlBytes, err := cfg.MarshalYAML()
	if err != nil {
		return fmt.Errorf("marshal config yaml: %w", err)
	}

	mustN(fmt.Fprint(cmd.OutOrStdout(), string(yamlBytes)))

	return nil
}

type ConfigInitArgs struct {
	*RootArgs

	Force bool
}

func NewConfigInitCmd(rootArgs *RootArgs) *cobra.Command {
	ra := &ConfigInitArgs{RootArgs: rootArgs}
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigInit(ra)
		},
	}

	cmd.Flags().BoolVar(&ra.Force, "force", false, "Back up and replace an existing configuration file")

	bindEnvVars(cmd)

	return cmd
}

// runConfigInit writes the default configuration to the --config path if
// set, otherwise to the global config path. Project config files found by
// discovery are never touched.
func runConfigInit(ra *ConfigInitArgs) error {
	path := ra.ConfigPath
	if path == "" {
		path = configs.GetPath()
	}

	err := configs.WriteDefault(path, ra.Force)
	if err != nil {
		return err
	}

	return nil
}

func NewConfigDiffCmd(rootArgs *RootArgs) *cobra.Command {
	return &cobra.Command{
		Use:   "diff",
		Short: "Show a unified diff between the default and active configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigDiff(cmd, rootArgs)
		},
	}
}

func runConfigDiff(cmd *cobra.Command, ra *RootArgs) error {
	path, err := resolveConfigPath(ra)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(path)
	if err != nil {
		return err
	}

	activeYAML, err := cfg.MarshalYAML()
	if err != nil {
		return fmt.Errorf("marshal config yaml: %w", err)
	}

	defaultYAML, err := configs.New().MarshalYAML()
	if err != nil {
		return fmt.Errorf("marshal default config yaml: %w", err)
	}

	diff := udiff.Unified("default", path, string(defaultYAML), string(activeYAML))
	if diff == "" {
		return nil
	}

	// If stdout is not a terminal, emit the diff unstyled.
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		mustN(fmt.Fprint(cmd.OutOrStdout(), diff))

		return nil
	}

	mustN(fmt.Fprint(cmd.OutOrStdout(), colorizeDiff(diff)))

	return nil
}

var (
	diffHeaderStyle = lipgloss.NewStyle().Bold(true)
	diffHunkStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	diffAddStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	diffDelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

func colorizeDiff(diff string) string {
	lines := strings.Split(diff, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			lines[i] = diffHeaderStyle.Render(line)
		case strings.HasPrefix(line, "@@"):
			lines[i] = diffHunkStyle.Render(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = diffAddStyle.Render(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = diffDelStyle.Render(line)
		}
	}

	return strings.Join(lines, "\n")
}

func NewConfigPathCmd(rootArgs *RootArgs) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the resolved configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := resolveConfigPath(rootArgs)
			if err != nil {
				return err
			}

			mustN(fmt.Fprintln(cmd.OutOrStdout(), path))

			return nil
		},
	}
}
