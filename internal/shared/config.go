package shared

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Environment variables consulted for the Gemini API key, in order.
var apiKeyEnv = []string{"GEMINI_API_KEY", "API_KEY"}

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Gemini  GeminiConfig  `toml:"gemini"`
	Session SessionConfig `toml:"session"`
	Server  ServerConfig  `toml:"server"`
	Export  ExportConfig  `toml:"export"`
}

// GeminiConfig contains generative model settings.
type GeminiConfig struct {
	APIKey          string        `toml:"api_key"`
	Model           string        `toml:"model"`
	SearchGrounding bool          `toml:"search_grounding"`
	Timeout         time.Duration `toml:"timeout"`
	Year            int           `toml:"year"`
}

// SessionConfig contains settings for the interactive session.
type SessionConfig struct {
	ProfileDomain   string        `toml:"profile_domain"`
	TickInterval    time.Duration `toml:"tick_interval"`
	LoadingMessages []string      `toml:"loading_messages"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host      string  `toml:"host"`
	Port      int     `toml:"port"`
	RateLimit float64 `toml:"rate_limit"`
	Burst     int     `toml:"burst"`
}

// ExportConfig contains share card export settings.
type ExportConfig struct {
	Dir    string `toml:"dir"`
	Format string `toml:"format"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the embedded defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks that the values the session and server depend on are usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Session.ProfileDomain) == "" {
		return fmt.Errorf("%w: session.profile_domain is empty", ErrInvalidConfig)
	}
	if c.Session.TickInterval <= 0 {
		return fmt.Errorf("%w: session.tick_interval must be positive", ErrInvalidConfig)
	}
	if len(c.Session.LoadingMessages) == 0 {
		return fmt.Errorf("%w: session.loading_messages is empty", ErrInvalidConfig)
	}
	if c.Gemini.Year < 2000 {
		return fmt.Errorf("%w: gemini.year %d is not a plausible year", ErrInvalidConfig, c.Gemini.Year)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port %d out of range", ErrInvalidConfig, c.Server.Port)
	}
	return nil
}

// LoadEnv loads a .env file from the working directory (if present) and applies the
// Gemini API key from the environment when set.
func (c *Config) LoadEnv() {
	_ = godotenv.Load()
	for _, name := range apiKeyEnv {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			c.Gemini.APIKey = v
			return
		}
	}
}
