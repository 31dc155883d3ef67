package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pavithrapri/collab-code-editor/internal/adapters/collab"
	router "github.com/pavithrapri/collab-code-editor/internal/adapters/http"
	"github.com/pavithrapri/collab-code-editor/internal/app"
	"github.com/pavithrapri/collab-code-editor/internal/app/suggest"
	"github.com/pavithrapri/collab-code-editor/internal/config"
	"github.com/pavithrapri/collab-code-editor/internal/core"
	"github.com/pavithrapri/collab-code-editor/internal/stores"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	// Human-friendly output for terminal; in production you may want JSON only.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.Mode == "debug" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	store, err := stores.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open document store")
	}

	hub := core.NewHub()
	collabApp := app.NewCollab(hub, store)
	suggester := suggest.New()
	wsController := collab.NewController(collabApp, cfg)

	r := router.SetupRouter(ctx, cfg, store, suggester, wsController)
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("CodeSync server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	collabApp.Shutdown()
	if err := store.Close(); err != nil {
		log.Error().Err(err).Msg("store close")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited gracefully")
}
