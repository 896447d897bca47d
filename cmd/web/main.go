// cmd/web/main.go
//
// Adept admin host – HTTP entry point.
//
// Boot sequence
// -------------
//
//  1. Load host config (conf/global.yaml + ADEPT_ overrides).
//
//  2. Start daily rotating logger (tees to console when running in a TTY).
//
//  3. Freeze the environment, layer it over the env file (jail-wide file
//     → .env fallback), and assemble the admin settings.  Any resolution
//     error aborts startup after every failure is logged.
//
//  4. Expose Prometheus /metrics and a /healthz check behind the security
//     and session middleware.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/AdeptTravel/adept-admin/internal/admin"
	"github.com/AdeptTravel/adept-admin/internal/config"
	"github.com/AdeptTravel/adept-admin/internal/logger"
	"github.com/AdeptTravel/adept-admin/internal/metrics"
	"github.com/AdeptTravel/adept-admin/internal/middleware"
	"github.com/AdeptTravel/adept-admin/internal/server"
	"github.com/AdeptTravel/adept-admin/internal/session"
)

const serverEnvPath = "/usr/local/etc/adept-admin/global.env"

// envFiles prefers the jail-wide env file; on dev it falls back to .env.
// Neither is required.
func envFiles() []string {
	for _, p := range []string{serverEnvPath, ".env"} {
		if _, err := os.Stat(p); err == nil {
			return []string{p}
		}
	}
	return nil
}

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if runningInTTY() {
		cfg.Log.Tee = true
	}

	logOut, err := logger.New(cfg.Paths.Root, cfg.Log)
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}
	defer func() { _ = logOut.Sync() }()

	//
	// ── 1.  Admin settings ──────────────────────────────────────────────
	//
	snap, err := admin.NewSnapshot()
	if err != nil {
		logOut.Fatalw("environment snapshot failed", "err", err)
	}
	dot, err := admin.ReadDotenv(envFiles()...)
	if err != nil {
		logOut.Fatalw("env file unreadable", "err", err)
	}
	// Process environment wins over the file.
	rec, err := admin.Assemble(admin.Layered{snap, dot})
	metrics.ObserveAssembly(rec, err)
	if err != nil {
		for _, ce := range admin.Errors(err) {
			logOut.Errorw("admin setting unresolved",
				"field", ce.Field,
				"kind", ce.Kind.String(),
				"vars", ce.Vars,
			)
		}
		logOut.Fatal("admin settings incomplete, refusing to start")
	}
	logOut.Infow("admin settings ready", "settings", rec.Redacted())

	if ttl, err := rec.ExpiresIn(); err != nil {
		logOut.Warnw("admin token lifetime unreadable", "expires_in", rec.Auth.Options.ExpiresIn, "err", err)
	} else {
		logOut.Infow("admin token lifetime", "ttl", ttl.String())
	}

	//
	// ── 2.  Router ──────────────────────────────────────────────────────
	//
	policy := session.New(rec.Session, "")

	r := chi.NewRouter()
	r.Use(middleware.Security(rec.Session.Cookie))
	r.Use(policy.Middleware)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	//
	// ── 3.  Serve until SIGINT/SIGTERM ──────────────────────────────────
	//
	srv := server.New(cfg.HTTP, r)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logOut.Infow("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.S().Fatalw("http server", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logOut.Errorw("http shutdown", "err", err)
	}
	logOut.Info("stopped")
}
