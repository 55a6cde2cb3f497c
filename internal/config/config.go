package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/lennoxmeldrum/mongol-atlas/internal/geo"
)

// Config holds all configuration for the atlas server
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	GenAI     GenAIConfig     `mapstructure:"genai"`
	Basemap   BasemapConfig   `mapstructure:"basemap"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
	BaseURL string `mapstructure:"base_url"`
	// APIKey optionally protects the generative endpoints; empty
	// disables the check. APIKeyHeader names the request header the
	// key is read from.
	APIKey       string `mapstructure:"api_key"`
	APIKeyHeader string `mapstructure:"api_key_header"`
}

// GenAIConfig holds the hosted chat/image service configuration
type GenAIConfig struct {
	BaseURL     string  `mapstructure:"base_url"`
	APIKey      string  `mapstructure:"api_key"`
	ChatModel   string  `mapstructure:"chat_model"`
	ImageModel  string  `mapstructure:"image_model"`
	Temperature float32 `mapstructure:"temperature"`
}

// BasemapConfig holds the world geometry source configuration
type BasemapConfig struct {
	URL string `mapstructure:"url"`
}

// RateLimitConfig holds rate limiting for the generative endpoints
type RateLimitConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	RPS     float64 `mapstructure:"rps"`
	Burst   int     `mapstructure:"burst"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Development bool `mapstructure:"development"`
}

// Load loads configuration from file and environment
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read config file if specified
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables
	v.SetEnvPrefix("MONGOLATLAS")
	v.AutomaticEnv()

	// Read config
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.api_key", "")
	v.SetDefault("server.api_key_header", "X-API-Key")

	v.SetDefault("genai.base_url", "")
	v.SetDefault("genai.api_key", "")
	v.SetDefault("genai.chat_model", "gemini-3-pro-preview")
	v.SetDefault("genai.image_model", "gemini-3-pro-image-preview")
	v.SetDefault("genai.temperature", 0.7)

	v.SetDefault("basemap.url", geo.DefaultBasemapURL)

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.rps", 1.0)
	v.SetDefault("rate_limit.burst", 5)

	v.SetDefault("log.development", false)
}

// Address returns the server address
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
