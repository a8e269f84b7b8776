package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rubiojr/gss/pkg/api"
	"github.com/rubiojr/gss/pkg/log"
	"github.com/urfave/cli/v3"
)

var logger = log.ForService("gss")

// ServeCommand creates the serve command
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the JSON API server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "port",
				Usage: "Port to listen on (defaults to web.port)",
			},
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to bind to (defaults to web.host)",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return runServer(ctx, c.String("config"), c.String("host"), c.String("port"))
		},
	}
}

// newHandler builds the routes and middleware.
func newHandler(apiServer *api.Server) http.Handler {
	mux := http.NewServeMux()
	apiServer.RegisterRoutes(mux)
	return api.Wrap(mux)
}

// runServer serves until ctx is done or SIGINT/SIGTERM arrives. SIGHUP or a
// change to the config file rebuilds the searcher; requests already
// running finish with the old one.
func runServer(ctx context.Context, configPath, host, port string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	searcher, err := newSearcher(cfg)
	if err != nil {
		return err
	}

	if host == "" {
		host = cfg.Web.Host
	}
	if port == "" {
		port = strconv.Itoa(cfg.Web.Port)
	}

	apiServer := api.NewServer(searcher)
	server := &http.Server{
		Addr:              net.JoinHostPort(host, port),
		Handler:           newHandler(apiServer),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Starting server on http://%s", server.Addr)
		logger.Infof("Available endpoints:")
		logger.Infof("  GET /api/search - Search (q, page, lang)")
		logger.Infof("  GET /api/settings - Active search settings")
		logger.Infof("  GET /health - Health check")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Signal handling includes SIGHUP for reload
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)

	var (
		events  <-chan fsnotify.Event
		watchCh <-chan error
	)
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Warnf("failed to create config file watcher: %v", err)
	} else {
		defer func() {
			if err := watcher.Close(); err != nil {
				logger.Warnf("failed to close config file watcher: %v", err)
			}
		}()

		if err := watcher.Add(configPath); err != nil {
			logger.Warnf("failed to watch config file %s: %v", configPath, err)
		} else {
			logger.Infof("Watching config file for changes: %s", configPath)
		}
		events, watchCh = watcher.Events, watcher.Errors
	}

	reload := func() {
		if err := reloadSearcher(configPath, apiServer); err != nil {
			logger.Errorf("Failed to reload configuration: %v", err)
		} else {
			logger.Infof("Configuration reloaded successfully")
		}
	}

	for {
		select {
		case <-ctx.Done():
			return shutdown(server)
		case err := <-errCh:
			return fmt.Errorf("server failed: %w", err)
		case sig := <-sigCh:
			switch sig {
			case syscall.SIGHUP:
				logger.Infof("Received SIGHUP, reloading configuration...")
				reload()
			case syscall.SIGINT, syscall.SIGTERM:
				return shutdown(server)
			}
		case event, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			// React to write, create, rename, and remove events (editors often use atomic writes)
			if !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove)) {
				continue
			}
			logger.Infof("Config file changed: %s (event: %s), reloading configuration...", event.Name, event.Op.String())

			if event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				// Small delay to ensure the new file is fully written
				time.Sleep(200 * time.Millisecond)

				if _, err := os.Stat(configPath); os.IsNotExist(err) {
					logger.Warnf("Config file was removed and not replaced, skipping reload")
					continue
				}

				// Re-add the config file to watcher in case it was replaced
				if err := watcher.Add(configPath); err != nil {
					logger.Warnf("failed to re-add config file to watcher after rename/remove: %v", err)
				}
			} else {
				// Add a small delay to ensure file write is complete
				time.Sleep(100 * time.Millisecond)
			}
			reload()
		case err, ok := <-watchCh:
			if !ok {
				watchCh = nil
				continue
			}
			logger.Warnf("Config file watcher error: %v", err)
		}
	}
}

// reloadSearcher builds a searcher from the current config file and swaps
// it in. The old searcher stays active when anything fails. Listen address
// changes need a restart.
func reloadSearcher(configPath string, apiServer *api.Server) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	searcher, err := newSearcher(cfg)
	if err != nil {
		return err
	}
	apiServer.SetSearcher(searcher)
	return nil
}

func shutdown(server *http.Server) error {
	logger.Infof("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
