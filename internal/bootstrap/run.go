package bootstrap

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/uniportal/uni-ui-api/config"
	"github.com/uniportal/uni-ui-api/internal/session"
)

// Run wires configuration, the session store, the service layer and the
// HTTP server together, then blocks until SIGINT/SIGTERM.
func Run() error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	logger := InitLogger(cfg.Log)

	sessions, closeStore, err := buildSessionStore(&cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	services, err := NewServices(&ServiceDeps{
		Config:   &cfg,
		Sessions: sessions,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	server := StartHTTPServer(&HTTPServerConfig{
		Config:   &cfg,
		Services: services,
		Logger:   logger,
	})

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop
	logger.Info("received shutdown signal", "signal", sig.String())

	return ShutdownHTTPServer(ShutdownConfig{
		Context: context.Background(),
		Server:  server,
		Logger:  logger,
	})
}

// buildSessionStore connects Redis when the redis backend is configured and
// returns the store plus a close func for the underlying client.
//
//nolint:ireturn // the backend is chosen at runtime from configuration.
func buildSessionStore(cfg *config.AppConfig, logger *slog.Logger) (session.Store, func(), error) {
	if cfg.Session.Backend == config.SessionBackendMemory {
		store, err := NewSessionStore(cfg, nil, logger)
		return store, func() {}, err
	}

	client, err := ConnectRedis(cfg.Redis, logger)
	if err != nil {
		return nil, nil, err
	}

	store, err := NewSessionStore(cfg, client, logger)
	if err != nil {
		client.Close() //nolint:errcheck // already failing
		return nil, nil, err
	}

	closeFn := func() {
		if closeErr := client.Close(); closeErr != nil {
			logger.Warn("closing redis client", "error", closeErr)
		}
	}
	return store, closeFn, nil
}
