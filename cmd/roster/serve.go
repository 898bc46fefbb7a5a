package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/acourt/roster/internal/api"
	"github.com/acourt/roster/internal/config"
	"github.com/acourt/roster/internal/metrics"
	"github.com/acourt/roster/internal/org"
	"github.com/acourt/roster/internal/postgres"
	"github.com/acourt/roster/internal/ratelimit"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Roster API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func newVerifier(auth config.AuthConfig) (org.CredentialVerifier, error) {
	switch auth.PasswordScheme {
	case "plaintext":
		return org.PlaintextVerifier{}, nil
	case "bcrypt":
		return org.BcryptVerifier{Cost: auth.BcryptCost}, nil
	default:
		return nil, fmt.Errorf("unknown password scheme %q", auth.PasswordScheme)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return err
	}
	slog.Info("connected to database")

	verifier, err := newVerifier(cfg.Auth)
	if err != nil {
		return err
	}

	stores := postgres.Stores(pool)
	identity := org.NewIdentity(stores.Users, verifier)
	links := org.NewLinks(stores.Users, stores.Companies, stores.Teams)

	m := metrics.New()
	m.RegisterDBPoolCollector(postgres.PoolStats(pool))

	router := api.NewRouter(api.RouterDeps{
		Users:         org.NewUserService(stores, identity, links, verifier),
		Companies:     org.NewCompanyService(stores),
		Teams:         org.NewTeamService(stores, links),
		Projects:      org.NewProjectService(stores),
		Announcements: org.NewAnnouncementService(stores, identity, links),
		Metrics:       m,
		LoginLimiter:  ratelimit.New(cfg.RateLimit.Login, cfg.RateLimit.Window),
		CORSOrigins:   cfg.CORS.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", cfg.Addr(), "password_scheme", cfg.Auth.PasswordScheme)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-sigCh
	slog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	return srv.Shutdown(shutdownCtx)
}
