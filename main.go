package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	logger *zap.Logger

	portFlag      string
	patternsFlag  string
	thresholdFlag float64
)

var rootCmd = &cobra.Command{
	Use:           "assistant",
	Short:         "ProSyncX assistant intent matcher",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the assistant over HTTP",
	RunE:  runServe,
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the assistant in the terminal",
	RunE:  runChatCmd,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&patternsFlag, "patterns", "", "pattern file (JSON or YAML); overrides PATTERNS_FILE")
	rootCmd.PersistentFlags().Float64Var(&thresholdFlag, "threshold", DefaultThreshold, "match threshold; overrides MATCH_THRESHOLD")
	serveCmd.Flags().StringVar(&portFlag, "port", "", "listen port; overrides PORT")

	rootCmd.AddCommand(serveCmd, chatCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadSettings merges environment configuration with command-line flags
func loadSettings(cmd *cobra.Command) (Config, error) {
	cfg, err := LoadConfig(".env")
	if err != nil {
		return Config{}, err
	}

	if f := cmd.Flags().Lookup("patterns"); f != nil && f.Changed {
		cfg.PatternsFile = patternsFlag
	}
	if f := cmd.Flags().Lookup("threshold"); f != nil && f.Changed {
		cfg.Threshold = thresholdFlag
	}
	if f := cmd.Flags().Lookup("port"); f != nil && f.Changed {
		cfg.Port = portFlag
	}

	return cfg, cfg.Validate()
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// setup builds the logger, table cache and responder shared by both commands
func setup(cmd *cobra.Command) (Config, *TableCache, *Responder, error) {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return Config{}, nil, nil, err
	}

	if logger == nil {
		logger, err = newLogger(cfg.LogLevel)
		if err != nil {
			return Config{}, nil, nil, fmt.Errorf("failed to create logger: %w", err)
		}
	}

	cache, err := NewTableCache(cfg.PatternsFile, logger)
	if err != nil {
		return Config{}, nil, nil, fmt.Errorf("failed to initialize pattern table: %w", err)
	}

	responder := NewResponder(cache,
		WithThreshold(cfg.Threshold),
		WithLogger(logger),
	)
	return cfg, cache, responder, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, cache, responder, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer cache.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.WatchPatterns {
		if err := cache.StartWatching(); err != nil {
			return err
		}
		// Start file watcher in background
		go cache.Watch(ctx)
	}

	e := newServer(cache, responder, logger).routes()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("assistant started",
			zap.String("port", cfg.Port),
			zap.String("patterns", cache.Info().Source),
			zap.Float64("threshold", cfg.Threshold),
		)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func runChatCmd(cmd *cobra.Command, args []string) error {
	_, cache, responder, err := setup(cmd)
	if err != nil {
		return err
	}
	defer cache.Close()

	return runChat(cmd.InOrStdin(), cmd.OutOrStdout(), responder)
}
