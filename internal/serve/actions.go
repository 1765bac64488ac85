package serve

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dtnitsch/legaldoc/internal/common"
	"github.com/dtnitsch/legaldoc/pkg/server"
	"github.com/urfave/cli/v2"
)

// shutdownTimeout bounds how long in-flight requests may take after a signal.
const shutdownTimeout = 10 * time.Second

// ServeAction serves the site directory until interrupted.
func ServeAction(c *cli.Context) error {
	cfg, logger, err := common.Setup(c)
	if err != nil {
		return err
	}
	if c.IsSet("dir") {
		cfg.Server.Dir = c.String("dir")
	}
	if c.IsSet("addr") {
		cfg.Server.Addr = c.String("addr")
	}
	if info, err := os.Stat(cfg.Server.Dir); err != nil || !info.IsDir() {
		return fmt.Errorf("site directory %q is not a directory", cfg.Server.Dir)
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, logger)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
