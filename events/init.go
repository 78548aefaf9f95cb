package events

import "github.com/r3labs/sse/v2"

// StreamPlayback carries a full snapshot after every applied update.
const StreamPlayback = "playback"

var Server *sse.Server

func Init() {
	server := sse.New()
	server.AutoReplay = false
	Server = server
}
