// cmd/web/main.go
//
// Employee gateway – HTTP entry point.
//
// Start-up sequence
// -----------------
//
//  1. Load env vars (host-wide file → .env fallback).
//
//  2. Load and validate configuration (YAML + EMPGATE_ overrides).
//
//  3. Start daily rotating logger (tees to console when running in a TTY).
//
//  4. When VAULT_ADDR is set, resolve `vault:` secrets and keep the token
//     renewed.
//
//  5. Build the gateway.  No database connection is opened here; the pool
//     dials on the first insert or list.
//
//  6. Mount the router:
//
//     • /employees, /projects – api.Routes
//     • /metrics              – Prometheus
//     • /healthz              – liveness, reports pool state
//
//  7. Serve until SIGINT/SIGTERM, then drain and close the pool.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yanizio/empgate/internal/api"
	"github.com/yanizio/empgate/internal/config"
	"github.com/yanizio/empgate/internal/database"
	"github.com/yanizio/empgate/internal/gateway"
	"github.com/yanizio/empgate/internal/logger"
	"github.com/yanizio/empgate/internal/middleware"
	"github.com/yanizio/empgate/internal/server"
	"github.com/yanizio/empgate/internal/vault"
)

const serverEnvPath = "/usr/local/etc/empgate/global.env"

// loadEnv prefers the host-wide env file; on dev it falls back to .env.
func loadEnv() {
	if _, err := os.Stat(serverEnvPath); err == nil {
		_ = godotenv.Load(serverEnvPath)
		return
	}
	_ = godotenv.Load()
}

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func init() { loadEnv() }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logOut, err := logger.New(cfg.Paths.Root, runningInTTY(), cfg.Log.Debug)
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}
	defer logOut.Sync()

	//
	// ── 1.  Secrets ─────────────────────────────────────────────────────
	//
	if vault.Enabled() {
		vc, err := vault.New(logOut)
		if err != nil {
			logOut.Fatalw("vault client", "err", err)
		}
		go vc.RenewLoop(ctx)
		if cfg, err = config.ResolveSecrets(ctx, cfg, vc); err != nil {
			logOut.Fatalw("resolve secrets", "err", err)
		}
	} else if config.IsVaultRef(cfg.Database.Password) {
		logOut.Fatalw("database password is a vault reference but VAULT_ADDR is not set")
	}

	//
	// ── 2.  Gateway (lazy pool) ─────────────────────────────────────────
	//
	gw, err := gateway.New(gateway.Config{
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		Server:   cfg.Database.Server,
		Database: cfg.Database.Database,
	},
		gateway.WithLogger(logOut),
		gateway.WithProcedure(cfg.Database.Procedure),
		gateway.WithPoolOptions(database.Options{
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		}),
	)
	if err != nil {
		logOut.Fatalw("gateway config", "err", err)
	}
	defer func() {
		if err := gw.Close(); err != nil {
			logOut.Warnw("close pool", "err", err)
		}
	}()

	//
	// ── 3.  Router ──────────────────────────────────────────────────────
	//
	r := chi.NewRouter()
	r.Use(chimw.RequestID, chimw.RealIP, chimw.Recoverer)
	r.Use(middleware.AccessLog(logOut), middleware.Security)

	r.Mount("/", api.Routes(gw, logOut))
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		if gw.Connected() {
			_, _ = w.Write([]byte("ok connected\n"))
			return
		}
		_, _ = w.Write([]byte("ok idle\n"))
	})

	logOut.Infow("gateway ready",
		"server", cfg.Database.Server, "database", cfg.Database.Database)

	//
	// ── 4.  Serve ───────────────────────────────────────────────────────
	//
	if err := server.Serve(ctx, server.New(cfg.HTTP.ListenAddr, r), logOut); err != nil {
		logOut.Errorw("http server", "err", err)
	}
}
