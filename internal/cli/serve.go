package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"cardsearch/internal/cards"
	"cardsearch/internal/handlers"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the search widget",
	Long:  `Starts the HTTP server with the search page, the widget stream and the share QR endpoint.`,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client, err := cards.NewClient(cfg.ClientOptions())
	if err != nil {
		return fmt.Errorf("creating card client: %w", err)
	}

	h := handlers.New(client, cfg)
	r := handlers.SetupRouter(h, cfg, nil)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout, // 0 for SSE support
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go h.RunJanitor(ctx)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "address", cfg.Addr(), "api", cfg.API.BaseURL, "display", string(cfg.Display()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return serr.Wrap(err, "server failed to start")
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return serr.Wrap(err, "server forced to shutdown")
	}

	logger.Info("Server gracefully stopped")
	return nil
}
