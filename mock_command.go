package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/clientorders/api-contract-tests/mockapi"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const defaultMockPort = 8080

func newMockCommand(out io.Writer) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "mock",
		Short: "Serve an in-memory clients/orders API on /api",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serveMock(cmd.Context(), port, out)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", defaultMockPort, "port to listen on")
	return cmd
}

func mockHandler() http.Handler {
	h := chi.Chain(middleware.RequestID, middleware.Logger).Handler(mockapi.New())
	return otelhttp.NewHandler(h, "mockapi")
}

func serveMock(ctx context.Context, port int, out io.Writer) error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mockHandler(),
		ReadHeaderTimeout: time.Second * 10,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()
	fmt.Fprintf(out, "Mock API listening on http://localhost:%d/api\n", port)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
