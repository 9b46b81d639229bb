package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"calassist/internal/assistant"
	"calassist/internal/config"
	"calassist/internal/instrumentation"
	"calassist/internal/logging"
)

func newServeCmd() *cobra.Command {
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run as an MCP server over stdio",
		Long: `Exposes the calendar tool catalog over the Model Context Protocol
on stdio, so AI assistants can schedule meetings, draft invitations and
inspect the calendar. Logs go to stderr; stdout carries the protocol.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), metricsAddr)
		},
	}

	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "listen address for /metrics (overrides config)")
	return cmd
}

func runServe(ctx context.Context, metricsAddr string) error {
	logger := setupLogger()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Instrumentation is configured from OTEL_* environment variables;
	// the config file only decides whether the Prometheus endpoint is
	// served.
	instCfg := instrumentation.ConfigFromEnv()
	provider, err := instrumentation.NewProvider(ctx, instCfg)
	if err != nil {
		return fmt.Errorf("setting up instrumentation: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logger.Warn("instrumentation shutdown failed", logging.Err(err))
		}
	}()

	env, err := buildEnv(ctx, cfg, logger)
	if err != nil {
		return err
	}
	env.Metrics = provider.Metrics()
	env.Audit = instrumentation.NewAuditLogger(logger)

	stopRefresher := startRefresher(ctx, cfg, env, logger)
	defer stopRefresher()

	registry := assistant.NewDefaultRegistry()
	router := assistant.NewRouter(registry, env)

	var metricsServer *http.Server
	if addr := resolveMetricsAddr(cfg, metricsAddr); addr != "" && provider.Enabled() {
		if handler := provider.PrometheusHandler(); handler != nil {
			mux := http.NewServeMux()
			mux.Handle("/metrics", handler)
			metricsServer = &http.Server{Addr: addr, Handler: mux}
			go func() {
				logger.Info("metrics server listening", "addr", addr)
				if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("metrics server failed", logging.Err(err))
				}
			}()
		}
	}

	mcpSrv := mcpserver.NewMCPServer("calassist", version,
		mcpserver.WithToolCapabilities(true),
	)
	registerTools(mcpSrv, router)

	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			serverDone <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("server stopped with error: %w", err)
		}
	}

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("metrics server shutdown failed", logging.Err(err))
		}
	}
	return nil
}

func resolveMetricsAddr(cfg *config.Config, override string) string {
	if override != "" {
		return override
	}
	if cfg.Metrics.Enabled {
		return cfg.Metrics.Listen
	}
	return ""
}

// registerTools publishes every registry spec as an MCP tool delegating
// to the shared router, so normalization and duplicate suppression hold
// on this path too.
func registerTools(s *mcpserver.MCPServer, router *assistant.Router) {
	for _, spec := range router.Registry().Specs() {
		name := spec.Name
		s.AddTool(spec.MCPTool(), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			res, err := router.Execute(ctx, assistant.Call{
				Name:      name,
				Arguments: request.GetArguments(),
			}, "")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			if res.Err != nil {
				return mcp.NewToolResultError(res.Err.Message), nil
			}
			return mcp.NewToolResultText(res.Text), nil
		})
	}
}
