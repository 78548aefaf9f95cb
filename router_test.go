package main

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shairbridge/events"
	"shairbridge/models"
	"shairbridge/playback"
)

func setupRouter() (*playback.Store, http.Handler) {
	events.Init()
	store := playback.NewStore()
	return store, RegisterRoutes(http.NewServeMux(), store)
}

func getJSON(t *testing.T, handler http.Handler, path string, out any) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	return rec
}

func TestNowPlayingEndpoint_FreshProcess(t *testing.T) {
	_, handler := setupRouter()

	var response models.NowPlayingResponse
	getJSON(t, handler, "/api/v1/now-playing", &response)

	assert.Nil(t, response.Title)
	assert.Nil(t, response.Artist)
	assert.Nil(t, response.Album)
	assert.Nil(t, response.Genre)
	assert.Nil(t, response.ClientName)
	assert.Nil(t, response.ArtworkBase64)
	assert.Nil(t, response.Volume)
	assert.Equal(t, "stopped", response.PlayerState)
	assert.False(t, response.IsPlaying)
}

func TestNowPlayingEndpoint_PopulatedState(t *testing.T) {
	store, handler := setupRouter()

	artwork := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}
	store.Apply(playback.Instruction{Kind: playback.KindText, Field: playback.FieldTitle, Text: "Song A"})
	store.Apply(playback.Instruction{Kind: playback.KindText, Field: playback.FieldArtist, Text: "Artist B"})
	store.Apply(playback.Instruction{Kind: playback.KindVolume, Volume: -15.5})
	store.Apply(playback.Instruction{Kind: playback.KindArtwork, Artwork: artwork})
	store.Apply(playback.Instruction{Kind: playback.KindTransition, State: playback.StatusPlaying})

	var response models.NowPlayingResponse
	getJSON(t, handler, "/api/v1/now-playing", &response)

	require.NotNil(t, response.Title)
	assert.Equal(t, "Song A", *response.Title)
	require.NotNil(t, response.Artist)
	assert.Equal(t, "Artist B", *response.Artist)
	require.NotNil(t, response.Volume)
	assert.Equal(t, -15.5, *response.Volume)
	require.NotNil(t, response.ArtworkBase64)
	assert.Equal(t, base64.StdEncoding.EncodeToString(artwork), *response.ArtworkBase64)
	assert.Equal(t, "playing", response.PlayerState)
	assert.True(t, response.IsPlaying)
}

func TestMetadataAliasMatchesNowPlaying(t *testing.T) {
	store, handler := setupRouter()

	store.Apply(playback.Instruction{Kind: playback.KindText, Field: playback.FieldTitle, Text: "Song A"})

	var fromAlias models.NowPlayingResponse
	getJSON(t, handler, "/metadata", &fromAlias)

	var fromCanonical models.NowPlayingResponse
	getJSON(t, handler, "/api/v1/now-playing", &fromCanonical)

	assert.Equal(t, fromCanonical, fromAlias)
}

func TestArtworkEndpoint(t *testing.T) {
	store, handler := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/artwork", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	artwork := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}
	store.Apply(playback.Instruction{Kind: playback.KindArtwork, Artwork: artwork})

	req = httptest.NewRequest(http.MethodGet, "/api/v1/artwork", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, artwork, rec.Body.Bytes())
}

func TestHealthEndpoint(t *testing.T) {
	_, handler := setupRouter()

	var response map[string]string
	getJSON(t, handler, "/health", &response)

	assert.Equal(t, "ok", response["status"])
	assert.NotEmpty(t, response["instance"])
}
