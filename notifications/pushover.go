package notifications

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gregdel/pushover"

	"shairbridge/config"
	"shairbridge/playback"
)

// Pushover pings a phone when a new track starts playing.
type Pushover struct {
	app       *pushover.Pushover
	recipient *pushover.Recipient
}

// NewPushover returns nil when no token or recipient is configured, in
// which case notifications are silently disabled.
func NewPushover(cfg config.Config) *Pushover {
	if cfg.Pushover.Token == "" || cfg.Pushover.Recipient == "" {
		return nil
	}
	return &Pushover{
		app:       pushover.New(cfg.Pushover.Token),
		recipient: pushover.NewRecipient(cfg.Pushover.Recipient),
	}
}

func (p *Pushover) TrackChanged(snapshot playback.NowPlaying) {
	if snapshot.Title == nil || *snapshot.Title == "" {
		return
	}
	body := *snapshot.Title
	if snapshot.Artist != nil && *snapshot.Artist != "" {
		body = fmt.Sprintf("%s by %s", body, *snapshot.Artist)
	}
	message := &pushover.Message{
		Message:    body,
		Title:      "Now playing",
		Timestamp:  time.Now().Unix(),
		DeviceName: "shairbridge",
	}
	if _, err := p.app.SendMessage(message, p.recipient); err != nil {
		slog.With(slog.Any("error", err)).Error("Failed to send track notification")
	}
}
