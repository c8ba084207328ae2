package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Database  DatabaseConfig  `toml:"database"`
	Assistant AssistantConfig `toml:"assistant"`
	Auth      AuthConfig      `toml:"auth"`
	Donation  DonationConfig  `toml:"donation"`
	Log       LogConfig       `toml:"log"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// AssistantConfig contains the generative-AI service settings.
type AssistantConfig struct {
	BaseURL           string   `toml:"base_url"`
	APIKey            string   `toml:"api_key"`
	AccessToken       string   `toml:"access_token"`
	ChatModel         string   `toml:"chat_model"`
	TextModel         string   `toml:"text_model"`
	SpeechModel       string   `toml:"speech_model"`
	Voice             string   `toml:"voice"`
	RequestsPerSecond float64  `toml:"requests_per_second"`
	Timeout           Duration `toml:"timeout"`
}

// AuthConfig selects the credential verifier and its simulated delay.
type AuthConfig struct {
	Verifier string   `toml:"verifier"`
	Delay    Duration `toml:"delay"`
}

// DonationConfig contains payment settings.
type DonationConfig struct {
	WavePhone     string   `toml:"wave_phone"`
	WaveDelay     Duration `toml:"wave_delay"`
	DefaultDelay  Duration `toml:"default_delay"`
	OpenWaveApp   bool     `toml:"open_wave_app"`
	DefaultAmount int      `toml:"default_amount"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Duration wraps [time.Duration] so it can be written as "1500ms" in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("%w: duration %q", ErrInvalidConfig, string(text))
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements [encoding.TextMarshaler].
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	config.applyEnv()
	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	config.applyEnv()
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s: %w", path, err)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyEnv lets the API key come from the environment when the file leaves it empty.
func (c *Config) applyEnv() {
	if c.Assistant.APIKey != "" {
		return
	}
	for _, name := range []string{"GEMINI_API_KEY", "API_KEY"} {
		if v := os.Getenv(name); v != "" {
			c.Assistant.APIKey = v
			return
		}
	}
}
