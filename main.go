package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"ir-tributacao/config"
	httpLayer "ir-tributacao/http"
	"ir-tributacao/infrastructure"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ir-tributacao",
		Short: "Tabela progressiva mensal do IRPF",
		Long: `Reads the monthly IRPF progressive table published by Receita Federal
and serves it as structured brackets (faixa, aliquota, deducao).`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to configuration file (YAML)")

	rootCmd.AddCommand(newServeCmd(), newTabelaCmd())
	return rootCmd
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	return config.Load(path)
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return serve(cfg)
		},
	}
}

func serve(cfg *config.Config) error {
	logger := infrastructure.NewLogger(cfg.Logging, os.Stdout)
	slog.SetDefault(logger)
	metrics := infrastructure.NewMetrics()

	app, err := newApp(cfg, logger, metrics)
	if err != nil {
		return err
	}
	defer app.Close()

	var limiter *httpLayer.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = httpLayer.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		defer limiter.Stop()
	}

	clients, err := httpLayer.NewClientIP(cfg.RateLimit.TrustedProxies)
	if err != nil {
		return err
	}

	handler := httpLayer.NewTributacaoHandler(app.service, app.tableYear, logger)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      httpLayer.NewRouter(handler, limiter, clients, metrics),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("API listening", slog.String("addr", cfg.Server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("error starting server: %w", err)
	case <-quit:
		logger.Info("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Error during server shutdown", slog.String("error", err.Error()))
	}

	logger.Info("Server exited")
	return nil
}

func newTabelaCmd() *cobra.Command {
	var (
		file   string
		year   int
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "tabela",
		Short: "Print the tax table as JSON",
		Long: `Fetches (or reads with --file) the table page and prints the brackets.
By default a failure prints an empty array; --strict reports the error instead.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if file != "" {
				cfg.Source.File = file
			}
			if year != 0 {
				cfg.Source.Year = year
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid flags: %w", err)
			}

			logger := infrastructure.NewLogger(cfg.Logging, os.Stderr)
			app, err := newApp(cfg, logger, nil)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := cmd.Context()
			var table any
			if strict {
				t, err := app.service.Tabela(ctx)
				if err != nil {
					return err
				}
				table = t
			} else {
				table = app.service.Tributacao(ctx)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(table)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read a saved HTML page instead of fetching")
	cmd.Flags().IntVarP(&year, "year", "y", 0, "Table year (defaults to the current year)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail instead of printing an empty table")
	return cmd
}
