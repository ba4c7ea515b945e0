package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/clientorders/api-contract-tests/apitests"
	"github.com/clientorders/api-contract-tests/client"
	"github.com/clientorders/api-contract-tests/config"
	"github.com/clientorders/api-contract-tests/framework"
	"github.com/clientorders/api-contract-tests/telemetry"
	"github.com/clientorders/api-contract-tests/transcript"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const serviceName = "apitest"

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCommand(os.Stdout).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCommand(out io.Writer) *cobra.Command {
	var params commandParams
	cmd := &cobra.Command{
		Use:   serviceName,
		Short: "Run the clients/orders API scenario and write a transcript",
		Long: "Sends a fixed sequence of requests to a clients/orders REST API and appends each " +
			"response to a transcript file. Responses are recorded, not judged.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := params.resolve(cmd)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Invalid configuration: %s\n", err)
				return err
			}
			if err := runScenario(cmd.Context(), cfg, out); err != nil {
				fmt.Fprintf(os.Stderr, "Run failed: %s\n", err)
				return err
			}
			return nil
		},
	}
	params.addFlags(cmd)
	cmd.AddCommand(newMockCommand(out))
	return cmd
}

func runScenario(ctx context.Context, cfg *config.Config, out io.Writer) error {
	runID := uuid.NewString()

	if cfg.Trace {
		shutdown, err := telemetry.InitTracer(serviceName, os.Stderr)
		if err != nil {
			return fmt.Errorf("cannot initialize tracing: %w", err)
		}
		defer func() { _ = shutdown(context.Background()) }()
	}

	mainDebugLogger := framework.NullLogger()
	if cfg.Debug {
		mainDebugLogger = log.New(out, "", log.LstdFlags)
	}
	mainDebugLogger.Printf("Run %s against %s", runID, cfg.BaseURL)

	executor := client.NewExecutor(client.Options{
		Timeout:   cfg.Timeout,
		RateLimit: cfg.RateLimit,
		RunID:     runID,
		Logger:    mainDebugLogger,
	})

	if cfg.AwaitTimeout > 0 {
		if err := framework.AwaitService(executor.HTTPClient(), cfg.BaseURL, cfg.AwaitTimeout, out); err != nil {
			fmt.Fprintf(out, "API is not responding (%s); running the scenario anyway\n", err)
		}
	}

	fmt.Fprintln(out, "Running scenario")
	results := apitests.RunScenario(ctx, apitests.Params{
		BaseURL:    cfg.BaseURL,
		RunID:      runID,
		Executor:   executor,
		Transcript: transcript.New(cfg.Transcript),
		StepLogger: &ConsoleStepLogger{Out: out, DebugOutput: cfg.Debug},
	})

	fmt.Fprintln(out)
	framework.PrintResults(out, results)
	if results.Fatal != nil {
		return results.Fatal
	}
	fmt.Fprintf(out, "Tests finished. Results are in %s\n", cfg.Transcript)
	return nil
}
