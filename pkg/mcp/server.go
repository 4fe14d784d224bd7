package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/macropower/lintsel/api/v1beta1/configs"
	"github.com/macropower/lintsel/pkg/config"
	"github.com/macropower/lintsel/pkg/log"
	"github.com/macropower/lintsel/pkg/policy"
	"github.com/macropower/lintsel/pkg/version"
)

// Server implements the MCP server for lintsel.
type Server struct {
	server     *mcp.Server
	pol        *policy.Policy
	watcher    *config.Watcher
	tracer     trace.Tracer
	address    string
	configPath string
	mu         sync.RWMutex
}

// ServerOpt configures a [Server].
type ServerOpt func(s *Server)

// WithConfigFile enables hot reload of the policy from the
// configuration file at the given path.
func WithConfigFile(path string) ServerOpt {
	return func(s *Server) {
		s.configPath = path
	}
}

// NewServer creates a new MCP server instance resolving rules with the
// given policy. The policy must be validated.
func NewServer(address string, pol *policy.Policy, opts ...ServerOpt) (*Server, error) {
	impl := &mcp.Implementation{
		Name:    name,
		Version: version.GetVersion(),
	}

	mcpServer := mcp.NewServer(impl, &mcp.ServerOptions{
		Instructions: instructions,
	})

	s := &Server{
		address: address,
		server:  mcpServer,
		pol:     pol,
		tracer:  otel.Tracer("mcp-server"),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.configPath != "" {
		w, err := config.NewWatcher(s.configPath, s.reloadConfig)
		if err != nil {
			return nil, fmt.Errorf("watch config: %w", err)
		}

		s.watcher = w
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available tools with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "effective_rules",
		Description: "Get the lint rule codes enforced for a file path. You MUST provide a path relative to the project root, using forward slashes.",
	}, WithTracing(s.tracer, s.handleEffectiveRules))

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "is_fixable",
		Description: "Check whether violations of a lint rule may be fixed automatically.",
	}, WithTracing(s.tracer, s.handleIsFixable))

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "explain_path",
		Description: "Explain how the configuration resolves lint rules for a file path, listing every override with the rule codes it removed.",
	}, WithTracing(s.tracer, s.handleExplainPath))
}

// Policy returns the currently active policy.
func (s *Server) Policy() *policy.Policy {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.pol
}

// SetPolicy replaces the active policy.
func (s *Server) SetPolicy(pol *policy.Policy) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pol = pol
}

// reloadConfig loads the configuration file and swaps in its rule
// policy. The previous policy stays active when the file fails to load
// or validate.
func (s *Server) reloadConfig(ctx context.Context) {
	logger := log.WithContext(ctx)

	cl, err := config.NewLoaderFromFile(s.configPath, configs.New, configs.DefaultValidator)
	if err != nil {
		logger.ErrorContext(ctx, "reload config", slog.Any("error", err))

		return
	}

	err = cl.Validate()
	if err != nil {
		logger.ErrorContext(ctx, "reload config", slog.Any("error", err))

		return
	}

	cfg, err := cl.Load()
	if err != nil {
		logger.ErrorContext(ctx, "reload config", slog.Any("error", err))

		return
	}

	err = cfg.Validate()
	if err != nil {
		logger.ErrorContext(ctx, "reload config", slog.Any("error", cl.Wrap(err)))

		return
	}

	s.SetPolicy(cfg.Rules)

	logger.InfoContext(ctx, "reloaded configuration",
		slog.String("path", s.configPath),
	)
}

// handleEffectiveRules handles the effective_rules tool call.
func (s *Server) handleEffectiveRules(
	_ context.Context,
	_ *mcp.ServerSession,
	params *mcp.CallToolParamsFor[EffectiveRulesParams],
) (*mcp.CallToolResultFor[EffectiveRulesResult], error) {
	rules := s.Policy().EffectiveRules(params.Arguments.Path).Sorted()

	result := EffectiveRulesResult{
		Path:      params.Arguments.Path,
		Rules:     rules,
		RuleCount: len(rules),
	}

	return createEffectiveRulesResult(result), nil
}

// handleIsFixable handles the is_fixable tool call.
func (s *Server) handleIsFixable(
	_ context.Context,
	_ *mcp.ServerSession,
	params *mcp.CallToolParamsFor[IsFixableParams],
) (*mcp.CallToolResultFor[IsFixableResult], error) {
	result := IsFixableResult{
		Code:    params.Arguments.Code,
		Fixable: s.Policy().IsFixable(params.Arguments.Code),
	}

	return createIsFixableResult(result), nil
}

// handleExplainPath handles the explain_path tool call.
func (s *Server) handleExplainPath(
	_ context.Context,
	_ *mcp.ServerSession,
	params *mcp.CallToolParamsFor[ExplainPathParams],
) (*mcp.CallToolResultFor[ExplainPathResult], error) {
	explanation := s.Policy().Explain(params.Arguments.Path)

	return createExplainPathResult(newExplainPathResult(explanation)), nil
}

// WatchConfig starts dispatching config reloads until ctx is canceled.
// It returns immediately, and is a no-op when the server has no config
// file.
func (s *Server) WatchConfig(ctx context.Context) {
	if s.watcher == nil {
		return
	}

	go s.watcher.Watch(ctx)
}

func (s *Server) Server() *mcp.Server {
	return s.server
}

// Close stops the config watcher, if any.
func (s *Server) Close() {
	if s.watcher != nil {
		err := s.watcher.Close()
		if err != nil {
			slog.Error("close watcher", slog.Any("err", err))
		}
	}
}

// Serve starts the MCP server.
func (s *Server) Serve(ctx context.Context) error {
	slog.InfoContext(ctx, "starting MCP server", slog.String("address", s.address))

	s.WatchConfig(ctx)

	if s.address == "" {
		err := s.serveStdio(ctx)
		if err != nil {
			return fmt.Errorf("serve Stdio: %w", err)
		}

		return nil
	}

	err := s.serveHTTP()
	if err != nil {
		return fmt.Errorf("serve HTTP: %w", err)
	}

	return nil
}

func (s *Server) serveHTTP() error {
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, nil)

	server := &http.Server{
		Addr:    s.address,
		Handler: handler,

		ReadHeaderTimeout: 10 * time.Second,
	}

	err := server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("MCP server failed: %w", err)
	}

	return nil
}

func (s *Server) serveStdio(ctx context.Context) error {
	t := mcp.NewLoggingTransport(mcp.NewStdioTransport(), os.Stderr)
	err := s.server.Run(ctx, t)
	if err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}

	return nil
}
