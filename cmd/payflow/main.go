package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/iho/payflow/internal/adapter/csvio"
	httpadapter "github.com/iho/payflow/internal/adapter/http"
	"github.com/iho/payflow/internal/adapter/http/handler"
	"github.com/iho/payflow/internal/adapter/repository/memory"
	"github.com/iho/payflow/internal/engine"
	"github.com/iho/payflow/internal/infrastructure/config"
	"github.com/iho/payflow/internal/infrastructure/logger"
	"github.com/iho/payflow/internal/infrastructure/metrics"
	"github.com/iho/payflow/internal/usecase"
)

var pipelineMetrics = metrics.New(prometheus.DefaultRegisterer)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "payflow",
		Short:         "Single-pass transaction ledger reducer",
		Long:          `payflow replays an ordered stream of transaction records and derives exact per-client balances, held funds and lock flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newProcessCmd(), newServeCmd())
	return root
}

func newProcessCmd() *cobra.Command {
	var (
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "process <input.csv>",
		Short: "Replay a transaction stream and print the client report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(cmd.Context(), args[0], output, format)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "-", "report destination ('-' for stdout)")
	cmd.Flags().StringVar(&format, "format", "csv", "report format (csv or table)")
	return cmd
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve <input.csv>",
		Short: "Replay a transaction stream and serve the client report over HTTP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), args[0])
		},
	}
	return cmd
}

func runProcess(ctx context.Context, input, output, format string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	eng, err := fold(ctx, log, input)
	if err != nil {
		return err
	}

	clients, err := eng.Clients(ctx)
	if err != nil {
		return fmt.Errorf("collect clients: %w", err)
	}

	dest := os.Stdout
	if output != "-" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		dest = f
	}

	switch format {
	case "csv":
		if err := csvio.WriteCSV(dest, clients); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	case "table":
		csvio.WriteTable(dest, clients)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}

	return nil
}

func runServe(ctx context.Context, input string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	clientStore := memory.NewClientStore()
	eng := engine.New(memory.NewTransactionStore(), clientStore)
	if err := foldInto(ctx, log, input, eng); err != nil {
		return err
	}

	router := httpadapter.NewRouter(httpadapter.RouterConfig{
		ClientHandler: handler.NewClientHandler(clientStore),
		HealthHandler: handler.NewHealthHandler(),
		Logger:        log,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting report server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down report server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info().Msg("server stopped")
	return nil
}

// fold runs the whole pipeline over one input file with fresh stores.
func fold(ctx context.Context, log zerolog.Logger, input string) (*engine.Engine, error) {
	eng := engine.New(memory.NewTransactionStore(), memory.NewClientStore())
	if err := foldInto(ctx, log, input, eng); err != nil {
		return nil, err
	}
	return eng, nil
}

func foldInto(ctx context.Context, log zerolog.Logger, input string, eng *engine.Engine) error {
	f, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	reader := csvio.NewReader(f)
	proc := usecase.NewProcessUseCase(eng, log, pipelineMetrics)

	summary, err := proc.Run(ctx, reader)
	if err != nil {
		return fmt.Errorf("process %s: %w", input, err)
	}
	pipelineMetrics.LinesSkipped.Add(float64(reader.Skipped()))

	log.Info().
		Str("input", input).
		Int("applied", summary.Applied).
		Int("rejected", summary.Rejected).
		Int("malformed", summary.Malformed).
		Int("skipped", reader.Skipped()).
		Msg("stream processed")

	return nil
}
