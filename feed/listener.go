package feed

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/r3labs/sse/v2"

	"shairbridge/config"
	"shairbridge/events"
	"shairbridge/models"
	"shairbridge/playback"
)

// Notifier is told when playback moves onto a new track. Each call runs
// on its own goroutine with a value copy of the record, so implementations
// are free to block without holding up ingestion.
type Notifier interface {
	TrackChanged(snapshot playback.NowPlaying)
}

// Listener subscribes to the metadata topic hierarchy on the broker and
// folds every delivery into the playback store. It owns all connection
// lifecycle concerns so the store never has to know whether the feed is up.
type Listener struct {
	store     *playback.Store
	notifier  Notifier
	broker    config.BrokerConfig
	client    mqtt.Client
	lastTitle string
}

func NewListener(cfg config.Config, store *playback.Store, notifier Notifier) *Listener {
	return &Listener{
		store:    store,
		notifier: notifier,
		broker:   cfg.Broker,
	}
}

// Start dials the broker, retrying the initial connection with exponential
// backoff. Once connected, paho handles reconnects itself and every
// (re)connect resubscribes, so a broker restart only ever costs us the
// messages published while we were away.
func (l *Listener) Start() error {
	opts := mqtt.NewClientOptions().
		AddBroker(fmt.Sprintf("tcp://%s:%d", l.broker.Host, l.broker.Port)).
		SetClientID(l.broker.ClientID).
		SetAutoReconnect(true).
		SetOnConnectHandler(l.subscribe).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			slog.With(slog.Any("error", err)).Warn("Lost connection to broker. Snapshots will be stale until it returns.")
		})

	if l.broker.Username != "" {
		opts.SetUsername(l.broker.Username)
		opts.SetPassword(l.broker.Password)
	}

	l.client = mqtt.NewClient(opts)

	connect := func() error {
		token := l.client.Connect()
		token.Wait()
		return token.Error()
	}

	retry := backoff.NewExponentialBackOff()
	retry.MaxElapsedTime = 5 * time.Minute

	if err := backoff.Retry(connect, retry); err != nil {
		return fmt.Errorf("connecting to broker at %s:%d: %w", l.broker.Host, l.broker.Port, err)
	}

	slog.With(
		slog.String("host", l.broker.Host),
		slog.Int("port", l.broker.Port),
	).Info("Connected to broker")

	return nil
}

func (l *Listener) Stop() {
	if l.client != nil {
		l.client.Disconnect(250)
	}
}

func (l *Listener) subscribe(client mqtt.Client) {
	topic := l.broker.TopicPrefix + "/#"
	token := client.Subscribe(topic, 0, l.handleMessage)
	token.Wait()
	if err := token.Error(); err != nil {
		slog.With(slog.Any("error", err), slog.String("topic", topic)).Error("Failed to subscribe")
		return
	}
	slog.With(slog.String("topic", topic)).Info("Subscribed to metadata topics")
}

func (l *Listener) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	suffix, ok := strings.CutPrefix(msg.Topic(), l.broker.TopicPrefix+"/")
	if !ok {
		slog.With(slog.String("topic", msg.Topic())).Debug("Skipping topic outside the configured prefix")
		return
	}
	l.handle(suffix, msg.Payload())
}

func (l *Listener) handle(suffix string, payload []byte) {
	instruction, known, err := playback.Decode(suffix, payload)
	if err != nil {
		// Malformed payloads leave the field untouched and never stop ingestion
		slog.With(slog.Any("error", err), slog.String("suffix", suffix)).Warn("Dropping malformed payload")
		return
	}
	if !known {
		slog.With(slog.String("suffix", suffix)).Debug("Skipping unrecognised topic")
		return
	}

	l.store.Apply(instruction)

	snapshot := l.store.Snapshot()
	l.broadcast(snapshot)
	l.maybeNotify(snapshot)
}

func (l *Listener) broadcast(snapshot playback.NowPlaying) {
	data, err := json.Marshal(models.NowPlayingFromSnapshot(snapshot))
	if err != nil {
		slog.With(slog.Any("error", err)).Error("Failed to marshal snapshot for broadcast")
		return
	}
	events.Server.Publish(events.StreamPlayback, &sse.Event{Data: data})
}

func (l *Listener) maybeNotify(snapshot playback.NowPlaying) {
	if l.notifier == nil || !snapshot.IsPlaying() {
		return
	}
	if snapshot.Title == nil || *snapshot.Title == "" || *snapshot.Title == l.lastTitle {
		return
	}
	l.lastTitle = *snapshot.Title
	// The snapshot is a value copy so it is safe to hand off; paho runs
	// handlers one at a time and a slow notifier must never stall the
	// deliveries queued behind this one
	go l.notifier.TrackChanged(snapshot)
}
