package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/macropower/lintsel/pkg/mcp"
)

type MCPArgs struct {
	*RootArgs

	Address string
	Watch   bool
}

func NewMCPCmd(rootArgs *RootArgs) *cobra.Command {
	ra := &MCPArgs{RootArgs: rootArgs}
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve rule resolution tools over the Model Context Protocol",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMCP(cmd, ra)
		},
	}

	cmd.Flags().StringVar(&ra.Address, "address", "", "Serve over HTTP at the specified address instead of stdio")
	cmd.Flags().BoolVarP(&ra.Watch, "watch", "w", false, "Watch the configuration file and reload on changes")

	bindEnvVars(cmd)

	return cmd
}

func runMCP(cmd *cobra.Command, ra *MCPArgs) error {
	ctx := cmd.Context()

	shutdownTelemetry, err := setupTelemetry(ctx)
	if err != nil {
		return err
	}
	defer func() {
		err := shutdownTelemetry(context.Background())
		if err != nil {
			slog.Error("shutdown telemetry", slog.Any("err", err))
		}
	}()

	pol, configPath, err := loadPolicy(ra.RootArgs)
	if err != nil {
		return err
	}

	var opts []mcp.ServerOpt
	if ra.Watch {
		opts = append(opts, mcp.WithConfigFile(configPath))
	}

	srv, err := mcp.NewServer(ra.Address, pol, opts...)
	if err != nil {
		return fmt.Errorf("create MCP server: %w", err)
	}
	defer srv.Close()

	err = srv.Serve(ctx)
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}

	return nil
}
