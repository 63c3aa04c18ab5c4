package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"golang.org/x/net/netutil"

	"goals-tracker-backend/internal/ai"
	"goals-tracker-backend/internal/auth"
	"goals-tracker-backend/internal/config"
	"goals-tracker-backend/internal/db"
	"goals-tracker-backend/internal/entries"
	"goals-tracker-backend/internal/goals"
)

var serveMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", true, "apply the schema before serving")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}
	if cfg.GeminiKey == "" {
		log.Println("[WARN] GEMINI_API_KEY is not set, /analyze and /goals/phrases will fail")
	}

	database, err := db.Connect(cfg.ConnString())
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer database.Close()

	log.Println("✅ Connected to PostgreSQL!")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if serveMigrate {
		if err := db.Migrate(ctx, database); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	analyzer := ai.New(cfg.GeminiKey, cfg.GeminiModel,
		ai.WithRetry(cfg.AIMaxAttempts, time.Second),
		ai.WithTimeout(cfg.AITimeout),
	)

	mux := newRouter(deps{
		secret:   []byte(cfg.JWTSecret),
		users:    &auth.PGUserStore{DB: database},
		goals:    &goals.PGStore{DB: database},
		entries:  &entries.PGStore{DB: database},
		analyzer: analyzer,
		events:   database,
	})

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{
			"Content-Type", "Authorization",
			"X-Platform", "X-App-Version", "X-Device-Locale", "X-Session-Id",
			"Idempotency-Key", "X-Source-Event-Key",
		},
		AllowCredentials: true,
	})

	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return err
	}
	ln = netutil.LimitListener(ln, cfg.MaxConnections)

	srv := &http.Server{
		Handler:           c.Handler(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("🚀 API server is running on %s", cfg.Addr())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Println("[INFO] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
