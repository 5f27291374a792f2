// README: Entry point; loads config, wires services, starts HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voyage/internal/config"
	httptransport "voyage/internal/http"
	"voyage/internal/infra"
	"voyage/internal/logger"
	"voyage/internal/modules/conversation"
	"voyage/internal/planner"
	"voyage/internal/speech"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logg, err := logger.New(cfg.Log.Mode)
	if err != nil {
		log.Fatal(err)
	}
	defer logg.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gateway := planner.New(cfg.Backend.BaseURL, cfg.Backend.Timeout, logg)

	var snapshots conversation.Snapshotter
	if cfg.Redis.Addr != "" {
		snapshots = conversation.NewSnapshotStore(infra.NewRedis(cfg.Redis.Addr))
		logg.Info("session snapshots enabled", "addr", cfg.Redis.Addr)
	}

	var archive *conversation.ArchiveStore
	if cfg.DB.DSN != "" {
		dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			log.Fatal(err)
		}
		defer dbPool.Close()
		archive = conversation.NewArchiveStore(dbPool)
		logg.Info("message archive enabled")
	}

	// No speech engine ships with the server; hosts with audio hardware
	// inject a Recognizer and Synthesizer here. The adapter and speaker stay
	// wired so the toggle endpoint, capability reporting, and the spoken-reply
	// path behave consistently; with nil engines both report unavailable or
	// no-op. A Recognizer host binds the sinks to a session: onText to
	// convSvc.SendMessage, onError to convSvc.NoteRecognitionError.
	adapter := speech.NewAdapter(nil, cfg.Speech.Continuous, nil, nil, logg)
	speaker := speech.NewSpeaker(nil)

	convSvc := conversation.NewService(conversation.NewStore(), gateway, snapshots, archive, speaker, logg)

	handler := httptransport.NewRouter(convSvc, adapter, cfg.HTTP.AllowOrigins, logg)
	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logg.Info("listening", "addr", cfg.HTTP.Addr, "backend", cfg.Backend.BaseURL)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
