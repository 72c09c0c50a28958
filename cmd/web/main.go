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

	"resume-web/internal/shared/config"
	"resume-web/internal/shared/server"
	"resume-web/internal/view"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.Load()
	view.SetDisplayZone(cfg.DisplayZone)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := server.NewDeps(ctx, cfg)
	if err != nil {
		log.Fatalf("server deps: %v", err)
	}
	srv := &http.Server{
		Addr:              server.Addr(cfg.Port),
		Handler:           server.NewRouter(cfg, deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting web server on %s (api %s)", srv.Addr, cfg.APIBaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
