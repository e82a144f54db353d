package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Server holds all configuration for the verification server.
type Server struct {
	// Network
	BindAddress string `yaml:"bind_address"`
	Port        int    `yaml:"port"`

	// Server list appearance
	MOTD        string `yaml:"motd"`
	FaviconPath string `yaml:"favicon_path"`

	// Base URL of the verification web frontend; bind links are built
	// as <endpoint>/verify/<code>/<uuid>.
	Endpoint string `yaml:"endpoint"`

	// Mojang session checks. Disabling online mode skips encryption and
	// derives offline UUIDs from usernames.
	OnlineMode       bool   `yaml:"online_mode"`
	SessionServerURL string `yaml:"session_server_url"`

	// Packets at or above this size are zlib-compressed. Negative
	// disables compression negotiation entirely.
	CompressionThreshold int `yaml:"compression_threshold"`

	// Verification flow timing
	VerifyTimeout     int `yaml:"verify_timeout"`      // seconds
	DisplayInterval   int `yaml:"display_interval"`    // seconds
	PollInterval      int `yaml:"poll_interval"`       // seconds
	KeepAliveInterval int `yaml:"keep_alive_interval"` // seconds

	// Backing stores
	RedisURL string         `yaml:"redis_url"`
	Database DatabaseConfig `yaml:"database"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Addr returns the listen address in host:port form.
func (s Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.BindAddress, s.Port)
}

// VerifyTimeoutDuration returns the verification window as a Duration.
func (s Server) VerifyTimeoutDuration() time.Duration {
	return time.Duration(s.VerifyTimeout) * time.Second
}

// DisplayIntervalDuration returns the countdown refresh interval.
func (s Server) DisplayIntervalDuration() time.Duration {
	return time.Duration(s.DisplayInterval) * time.Second
}

// PollIntervalDuration returns the oracle polling interval.
func (s Server) PollIntervalDuration() time.Duration {
	return time.Duration(s.PollInterval) * time.Second
}

// KeepAliveIntervalDuration returns the play-state keep-alive interval.
func (s Server) KeepAliveIntervalDuration() time.Duration {
	return time.Duration(s.KeepAliveInterval) * time.Second
}

// Default returns Server config with sensible defaults.
func Default() Server {
	return Server{
		BindAddress:          "0.0.0.0",
		Port:                 25565,
		MOTD:                 "§6§lMC §2§lVerify",
		Endpoint:             "http://127.0.0.1:8080",
		OnlineMode:           true,
		SessionServerURL:     "https://sessionserver.mojang.com",
		CompressionThreshold: 256,
		VerifyTimeout:        300,
		DisplayInterval:      1,
		PollInterval:         3,
		KeepAliveInterval:    10,
		RedisURL:             "redis://127.0.0.1:6379/0",
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "mcverify",
			Password: "mcverify",
			DBName:   "mcverify",
			SSLMode:  "disable",
		},
	}
}

// Load loads server config from a YAML file.
// If the file doesn't exist, returns defaults.
func Load(path string) (Server, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}
