package cmd

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/Veemo-wt/Lumina-Backend/api"
	"github.com/Veemo-wt/Lumina-Backend/identity"
	"github.com/Veemo-wt/Lumina-Backend/internal/config"
	"github.com/Veemo-wt/Lumina-Backend/session"
	"github.com/Veemo-wt/Lumina-Backend/store"
	boltstore "github.com/Veemo-wt/Lumina-Backend/store/bolt"
	fsstore "github.com/Veemo-wt/Lumina-Backend/store/fs"
	"github.com/Veemo-wt/Lumina-Backend/store/memory"
)

var (
	port     int
	dataRoot string
	tlsCert  string
	tlsKey   string
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the session store server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if dataRoot != "" {
			cfg.DataRoot = dataRoot
		}

		logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

		st, closeStore, err := openStore(cfg)
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		defer closeStore()

		resolver := buildResolver(cfg, logger)

		var a *api.API
		sessions := session.New(st,
			session.WithDefaultMaxSessions(cfg.MaxSessions),
			session.WithLogger(logger),
			session.WithEvictionFunc(func(user, app string, removed []session.Record) {
				a.OnEvicted(user, app, removed)
			}),
		)
		a = api.New(sessions, resolver,
			api.WithLogger(logger),
			api.WithAlertFunc(func(e api.AlertEvent) {
				logger.Warn("anomaly detected",
					"type", string(e.Type),
					"message", e.Message,
					"count", e.Count,
					"threshold", e.Threshold,
				)
			}),
		)

		r := chi.NewRouter()
		r.Use(middleware.Logger)
		r.Use(middleware.Recoverer)
		r.Use(api.SecurityHeaders)
		if origins := cfg.Origins(); len(origins) > 0 {
			r.Use(api.CORS(origins))
		}
		r.Mount("/", a.Router())

		server := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		if tlsCert != "" && tlsKey != "" {
			cert, err := tls.LoadX509KeyPair(tlsCert, tlsKey)
			if err != nil {
				return fmt.Errorf("failed to load TLS key pair: %w", err)
			}
			server.TLSConfig = &tls.Config{
				Certificates: []tls.Certificate{cert},
				MinVersion:   tls.VersionTLS12,
			}
		}

		// Graceful shutdown on SIGINT/SIGTERM.
		done := make(chan error, 1)
		go func() {
			var err error
			if server.TLSConfig != nil {
				err = server.ListenAndServeTLS("", "")
			} else {
				err = server.ListenAndServe()
			}
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				done <- fmt.Errorf("server failed: %w", err)
				return
			}
			done <- nil
		}()

		logger.Info("server started",
			"port", port,
			"data_root", cfg.DataRoot,
			"storage", cfg.Storage,
			"version", Version,
		)

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("shutting down", "signal", sig.String())
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("server shutdown failed: %w", err)
			}
			return nil
		case err := <-done:
			return err
		}
	},
}

// openStore builds the configured storage backend. The returned close func
// is a no-op for backends without resources to release.
func openStore(cfg config.Config) (store.Store, func(), error) {
	switch cfg.Storage {
	case config.StorageFS:
		st, err := fsstore.New(cfg.DataRoot)
		if err != nil {
			return nil, nil, err
		}
		return st, func() {}, nil
	case config.StorageBolt:
		if err := os.MkdirAll(cfg.DataRoot, 0o700); err != nil {
			return nil, nil, err
		}
		st, err := boltstore.NewFromFile(cfg.DataRoot+"/lumina.db", nil)
		if err != nil {
			return nil, nil, err
		}
		return st, func() { st.Close() }, nil
	case config.StorageMemory:
		return memory.New(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}
}

// buildResolver assembles the identity chain in precedence order. Strategies
// with no configuration resolve nothing and fall through.
func buildResolver(cfg config.Config, logger *slog.Logger) identity.Resolver {
	return identity.Chain{
		identity.UserHeader{Header: cfg.UserHeader},
		identity.APIKey{Key: cfg.APIKey},
		identity.AccessEmail{},
		&identity.DevFallback{Email: cfg.DevEmail, Logger: logger},
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.Flags().IntVarP(&port, "port", "p", 8000, "Port to listen on")
	serverCmd.Flags().StringVar(&dataRoot, "data-root", "", "Data root directory (overrides LUMINA_DATA_ROOT)")
	serverCmd.Flags().StringVar(&tlsCert, "tls-cert", "", "Path to TLS certificate file")
	serverCmd.Flags().StringVar(&tlsKey, "tls-key", "", "Path to TLS key file")
}
