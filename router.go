package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/cors"

	"shairbridge/events"
	"shairbridge/models"
	"shairbridge/playback"
)

// instanceID distinguishes restarts of the process in health responses.
var instanceID = uuid.NewString()

func renderJSONMessage(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	res := map[string]string{"message": message}
	json.NewEncoder(w).Encode(res)
}

func RegisterRoutes(mux *http.ServeMux, store *playback.Store) http.Handler {

	events.Server.CreateStream(events.StreamPlayback)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, "Welcome to shairbridge. It relays AirPlay metadata from shairport-sync as a friendly HTTP API.\n")
	})

	mux.HandleFunc("/api", func(w http.ResponseWriter, r *http.Request) {
		renderJSONMessage(w, "This is the base of the shairbridge API")
	})

	nowPlaying := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.NowPlayingFromSnapshot(store.Snapshot()))
	}
	mux.HandleFunc("/api/v1/now-playing", nowPlaying)
	// Kept for clients of the original metadata server
	mux.HandleFunc("/metadata", nowPlaying)

	mux.HandleFunc("/api/v1/artwork", func(w http.ResponseWriter, r *http.Request) {
		snapshot := store.Snapshot()
		if len(snapshot.Artwork) == 0 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", http.DetectContentType(snapshot.Artwork))
		w.Header().Set("Cache-Control", "no-cache")
		w.Write(snapshot.Artwork)
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		status := "ok"
		if !store.IsAlive() {
			status = "down"
		}
		json.NewEncoder(w).Encode(map[string]string{
			"status":   status,
			"instance": instanceID,
		})
	})

	mux.HandleFunc("/events", events.Server.ServeHTTP)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET"},
		AllowedHeaders: []string{"Origin, Content-Type, Accept"},
	})

	handler := c.Handler(mux)

	return handler
}
