package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/relaycoach/relaycoach/go/internal/events"
	"github.com/relaycoach/relaycoach/go/internal/gateway"
)

const (
	BackendJSON     = "json"
	BackendPostgres = "postgres"
)

// Config is read from a YAML file and then overridden by environment variables.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Events  EventsConfig  `yaml:"events"`
	Gateway GatewayConfig `yaml:"gateway"`
	Log     LogConfig     `yaml:"log"`
}

type ServerConfig struct {
	Port            string        `yaml:"port" env:"PORT"`
	AllowedOrigins  []string      `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
}

type StorageConfig struct {
	Backend string `yaml:"backend" env:"RELAYCOACH_STORAGE"`
	Path    string `yaml:"path" env:"RELAYCOACH_DATA_FILE"`
	Migrate bool   `yaml:"migrate" env:"RELAYCOACH_MIGRATE"`
}

type EventsConfig struct {
	NATS      bool                   `yaml:"nats" env:"RELAYCOACH_NATS"`
	JetStream events.JetStreamConfig `yaml:"jetstream"`
}

type GatewayConfig struct {
	PingInterval time.Duration `yaml:"ping_interval"`
	SendBuffer   int           `yaml:"send_buffer"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Pretty bool   `yaml:"pretty" env:"LOG_PRETTY"`
}

func defaultConfig() Config {
	ws := gateway.DefaultConnectionConfig()
	return Config{
		Server: ServerConfig{
			Port:            "8080",
			AllowedOrigins:  []string{"*"},
			ShutdownTimeout: 10 * time.Second,
		},
		Storage: StorageConfig{
			Backend: BackendJSON,
			Path:    "data/relaycoach.json",
		},
		Events: EventsConfig{
			JetStream: events.DefaultJetStreamConfig(),
		},
		Gateway: GatewayConfig{
			PingInterval: ws.PingInterval,
			SendBuffer:   ws.SendBuffer,
		},
		Log: LogConfig{
			Level:  zerolog.LevelInfoValue,
			Pretty: true,
		},
	}
}

// loadConfig layers defaults, the YAML file at path (optional) and the environment.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error
	if c.Server.Port == "" {
		errs = append(errs, errors.New("server.port is required"))
	}
	switch c.Storage.Backend {
	case BackendJSON:
		if c.Storage.Path == "" {
			errs = append(errs, errors.New("storage.path is required for the json backend"))
		}
	case BackendPostgres:
	default:
		errs = append(errs, fmt.Errorf("unknown storage backend %q", c.Storage.Backend))
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if c.Events.NATS && c.Events.JetStream.URL == "" {
		errs = append(errs, errors.New("events.jetstream.url is required when nats is enabled"))
	}
	return errors.Join(errs...)
}

func (c GatewayConfig) connectionConfig() gateway.ConnectionConfig {
	cfg := gateway.DefaultConnectionConfig()
	if c.PingInterval > 0 {
		cfg.PingInterval = c.PingInterval
	}
	if c.SendBuffer > 0 {
		cfg.SendBuffer = c.SendBuffer
	}
	return cfg
}
