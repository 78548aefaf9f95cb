package main

import (
	"log/slog"
	"net/http"
	"os"

	"shairbridge/config"
	"shairbridge/events"
	"shairbridge/feed"
	"shairbridge/notifications"
	"shairbridge/playback"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		slog.With(slog.Any("error", err)).Error("Failed to load configuration")
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.GetLogLevel(),
	}))
	slog.SetDefault(logger)

	events.Init()

	store := playback.NewStore()

	var notifier feed.Notifier
	if p := notifications.NewPushover(cfg); p != nil {
		notifier = p
	}

	listener := feed.NewListener(cfg, store, notifier)
	go func() {
		// A broker that never comes up is not fatal; the API keeps
		// serving whatever state we last knew about
		if err := listener.Start(); err != nil {
			slog.With(slog.Any("error", err)).Error("Gave up dialling the broker. Serving last known state only.")
		}
	}()

	router := RegisterRoutes(http.NewServeMux(), store)

	slog.With(slog.String("addr", cfg.Server.Addr)).Info("shairbridge is serving")

	if err := http.ListenAndServe(cfg.Server.Addr, router); err != nil {
		slog.With(slog.Any("error", err)).Error("Server stopped")
		listener.Stop()
		os.Exit(1)
	}
}
