package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/golobby/config/v3"
	"github.com/golobby/config/v3/pkg/feeder"
)

type Config struct {
	Broker   BrokerConfig
	Server   ServerConfig
	Pushover PushoverConfig
}

type BrokerConfig struct {
	Host        string `env:"MQTT_HOST"`
	Port        int    `env:"MQTT_PORT"`
	Username    string `env:"MQTT_USERNAME"`
	Password    string `env:"MQTT_PASSWORD"`
	ClientID    string `env:"MQTT_CLIENT_ID"`
	TopicPrefix string `env:"TOPIC_PREFIX"`
}

type ServerConfig struct {
	Addr     string `env:"HTTP_ADDR"`
	LogLevel string `env:"LOG_LEVEL"`
}

type PushoverConfig struct {
	Recipient string `env:"PUSHOVER_RECIPIENT"`
	Token     string `env:"PUSHOVER_TOKEN"`
}

// Load populates a Config from the environment, with a .env file layered
// underneath when one exists in the working directory.
func Load() (Config, error) {
	cfg := Config{
		Broker: BrokerConfig{
			Host:        "localhost",
			Port:        1883,
			ClientID:    "shairbridge",
			TopicPrefix: "shairport-sync",
		},
		Server: ServerConfig{
			Addr:     ":5000",
			LogLevel: "info",
		},
	}

	c := config.New()
	if _, err := os.Stat(".env"); err == nil {
		c.AddFeeder(feeder.DotEnv{Path: ".env"})
	}
	c.AddFeeder(feeder.Env{})
	c.AddStruct(&cfg)

	if err := c.Feed(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) GetLogLevel() slog.Leveler {
	logLevel := strings.ToLower(c.Server.LogLevel)
	if logLevel == "error" {
		return slog.LevelError
	}
	if logLevel == "warning" {
		return slog.LevelWarn
	}
	if logLevel == "info" {
		return slog.LevelInfo
	}
	if logLevel == "debug" {
		return slog.LevelDebug
	}
	// default to info if unknown
	slog.With(slog.String("log_level", logLevel)).Info("Received invalid log level. Defaulting to INFO.")
	return slog.LevelInfo
}
