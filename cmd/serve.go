package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/openmuseum/curator/internal/curation"
	"github.com/openmuseum/curator/internal/handlers"
	"github.com/openmuseum/curator/internal/narration"
	"github.com/openmuseum/curator/internal/registry"
	"github.com/openmuseum/curator/internal/synthesis"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the curation web API",
		Long: `Starts the Curator JSON API on the specified port.

The API exposes per-session search, treasure drill-down, back navigation,
and per-angle image regeneration, plus the preset image catalogue.`,
		Example: `  # Start server on default port 8888
  curator serve

  # Start server on custom port
  curator serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			presets, err := registry.Load()
			if err != nil {
				return err
			}

			resolver := curation.NewResolver(narration.NewGemini(), presets)
			handler := handlers.New(resolver, synthesis.NewGemini(), presets)

			// Set up routes
			mux := http.NewServeMux()
			mux.HandleFunc("/api/sessions", handler.HandleSessions)
			mux.HandleFunc("/api/sessions/", handler.HandleSessionDetail)
			mux.HandleFunc("/api/registry", handler.HandleRegistry)
			mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
				if _, err := w.Write([]byte("OK")); err != nil {
					slog.Error("Unable to write healthcheck", "err", err)
				}
			})

			if port == "" {
				port = os.Getenv("CURATOR_PORT")
				if port == "" {
					port = "8888"
				}
			}

			addr := ":" + port
			server := &http.Server{
				Addr:    addr,
				Handler: mux,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Curator API available", "addr", addr, "url", "http://localhost"+addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (default 8888, or CURATOR_PORT)")

	return cmd
}
