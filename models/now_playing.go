package models

import (
	"encoding/base64"

	"shairbridge/playback"
)

// NowPlayingResponse is the external JSON shape of a playback snapshot.
// Artwork is carried as base64 here at the boundary; the store itself only
// ever holds raw bytes.
type NowPlayingResponse struct {
	Title         *string  `json:"title"`
	Artist        *string  `json:"artist"`
	Album         *string  `json:"album"`
	Genre         *string  `json:"genre"`
	ArtworkBase64 *string  `json:"artwork_base64"`
	IsPlaying     bool     `json:"is_playing"`
	PlayerState   string   `json:"player_state"`
	Volume        *float64 `json:"volume"`
	ClientName    *string  `json:"client_name"`
}

func NowPlayingFromSnapshot(snapshot playback.NowPlaying) NowPlayingResponse {
	var artwork *string
	if len(snapshot.Artwork) > 0 {
		encoded := base64.StdEncoding.EncodeToString(snapshot.Artwork)
		artwork = &encoded
	}
	return NowPlayingResponse{
		Title:         snapshot.Title,
		Artist:        snapshot.Artist,
		Album:         snapshot.Album,
		Genre:         snapshot.Genre,
		ArtworkBase64: artwork,
		IsPlaying:     snapshot.IsPlaying(),
		PlayerState:   string(snapshot.State),
		Volume:        snapshot.Volume,
		ClientName:    snapshot.ClientName,
	}
}
