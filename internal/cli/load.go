package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/macropower/lintsel/api/v1beta1/configs"
	"github.com/macropower/lintsel/pkg/config"
	"github.com/macropower/lintsel/pkg/policy"
)

// resolveConfigPath returns the configuration file path to load: the
// --config flag if set, otherwise the nearest project config file found by
// walking up from the working directory, and finally the global config
// path.
func resolveConfigPath(ra *RootArgs) (string, error) {
	if ra.ConfigPath != "" {
		return ra.ConfigPath, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	projectPath, err := configs.Find(cwd)
	if err != nil {
		return "", err
	}
	if projectPath != "" {
		return projectPath, nil
	}

	return configs.GetPath(), nil
}

// loadConfig loads and validates the configuration at path, writing the
// default configuration first if nothing exists there. A file that cannot
// be read yields the default configuration.
func loadConfig(path string) (*configs.Config, error) {
	err := configs.WriteDefault(path, false)
	if err != nil {
		slog.Error("write default config", slog.Any("err", err))
	}

	cl, err := config.NewLoaderFromFile(path, configs.New, configs.DefaultValidator)
	if err != nil {
		slog.Warn("could not read config, using defaults", slog.Any("err", err))

		return configs.New(), nil
	}

	err = cl.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}

	cfg, err := cl.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}

	err = cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, cl.Wrap(err))
	}

	return cfg, nil
}

// loadPolicy loads the configuration and returns its rule policy together
// with the resolved config path.
func loadPolicy(ra *RootArgs) (*policy.Policy, string, error) {
	path, err := resolveConfigPath(ra)
	if err != nil {
		return nil, "", err
	}

	cfg, err := loadConfig(path)
	if err != nil {
		return nil, "", err
	}

	return cfg.Rules, path, nil
}

// Try to load config to get the known rule codes.
func tryGetRuleCodes(ra *RootArgs) []cobra.Completion {
	path, err := resolveConfigPath(ra)
	if err != nil {
		return nil
	}

	cl, err := config.NewLoaderFromFile(path, configs.New, configs.DefaultValidator)
	if err != nil {
		return nil
	}

	cfg, err := cl.Load()
	if err != nil {
		return nil
	}

	codes := cfg.Rules.KnownRules().Sorted()
	if len(codes) == 0 {
		return nil
	}

	completions := make([]cobra.Completion, 0, len(codes))
	for _, code := range codes {
		completions = append(completions, cobra.Completion(code))
	}

	return completions
}

func pathCompletion() func(*cobra.Command, []string, string) ([]cobra.Completion, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, _ []string, _ string) ([]cobra.Completion, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveDefault
	}
}

func ruleCodeCompletion(ra *RootArgs) func(*cobra.Command, []string, string) ([]cobra.Completion, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, _ []string, _ string) ([]cobra.Completion, cobra.ShellCompDirective) {
		return tryGetRuleCodes(ra), cobra.ShellCompDirectiveNoFileComp
	}
}
