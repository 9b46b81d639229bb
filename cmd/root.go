package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"calassist/internal/assistant"
	"calassist/internal/calendar"
	"calassist/internal/config"
	"calassist/internal/email"
	"calassist/internal/google"
	"calassist/internal/logging"
)

// rootCmd represents the base command for the calassist application
var rootCmd = &cobra.Command{
	Use:   "calassist",
	Short: "Conversational calendar assistant",
	Long: `calassist is a calendar assistant built around a meeting-availability
engine and a natural-language tool router.

It can run as:
  - An interactive chat session driven by an external LLM (default)
  - An MCP (Model Context Protocol) server for AI assistants`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

var (
	configPath string
	verbose    bool
)

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "calassist version %s\n" .Version}}`)

	// If no subcommand is provided, start a chat session by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "chat")
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to the YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newChatCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("calassist version %s\n", version)
		},
	}
}

// setupLogger builds the process logger. Logs go to stderr so stdout
// stays clean for chat output and the stdio MCP transport.
func setupLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadConfig loads .env and the YAML config.
func loadConfig() (*config.Config, error) {
	// A missing .env is fine; explicit environment wins anyway.
	_ = godotenv.Load()

	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	return config.Load(path)
}

// buildEnv assembles the handler environment from the configuration:
// snapshot, calendar client when a token is stored, constraints and the
// recipient resolver.
func buildEnv(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*assistant.Env, error) {
	constraints, err := cfg.Constraints()
	if err != nil {
		return nil, err
	}
	window, err := cfg.Window()
	if err != nil {
		return nil, err
	}

	env := &assistant.Env{
		Snapshot:    calendar.NewSnapshot(),
		Account:     cfg.Account,
		Constraints: constraints,
		Window:      window,
		Resolver:    &email.Resolver{Fallback: cfg.Email.FallbackRecipients},
		Logger:      logger,
	}

	if google.HasTokenForAccount(cfg.Account) {
		client, err := calendar.NewClientForAccount(ctx, cfg.Account)
		if err != nil {
			return nil, fmt.Errorf("creating calendar client: %w", err)
		}
		env.Service = client
	} else {
		logger.Warn("no stored Google token; event creation will degrade to links",
			slog.String("hint", "run 'calassist auth url' to connect an account"))
	}

	return env, nil
}

// startRefresher begins periodic snapshot refreshes when a calendar
// service is available. The returned stop function is a no-op otherwise.
func startRefresher(ctx context.Context, cfg *config.Config, env *assistant.Env, logger *slog.Logger) func() {
	if env.Service == nil {
		return func() {}
	}

	horizon := time.Duration(cfg.HorizonDays) * 24 * time.Hour
	refresher := calendar.NewRefresher(env.Service, env.Snapshot, cfg.RefreshCron, horizon, logging.NewSlogAdapter(logger))
	if err := refresher.RefreshNow(ctx); err != nil {
		logger.Warn("initial snapshot refresh failed", logging.Err(err))
	}
	if err := refresher.Start(ctx); err != nil {
		logger.Warn("refresh scheduler failed to start", logging.Err(err))
		return func() {}
	}
	return refresher.Stop
}
