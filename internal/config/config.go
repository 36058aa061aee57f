package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Discord DiscordConfig
	YouTube YouTubeConfig
	Store   StoreConfig
	Redis   RedisConfig
	Logging LoggingConfig
}

type DiscordConfig struct {
	Token    string
	OwnerIDs []string
}

type YouTubeConfig struct {
	APIKey string
}

type StoreConfig struct {
	FilePath string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type LoggingConfig struct {
	Level string
	File  string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Discord: DiscordConfig{
			Token:    getEnv("DISCORD_BOT_TOKEN", ""),
			OwnerIDs: parseCommaSeparated(getEnv("DISCORD_OWNER_IDS", "")),
		},
		YouTube: YouTubeConfig{
			APIKey: getEnv("YOUTUBE_API_KEY", ""),
		},
		Store: StoreConfig{
			FilePath: getEnv("DATA_FILE", "character_bot_data.json"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Discord.Token == "" {
		return fmt.Errorf("DISCORD_BOT_TOKEN is required")
	}
	if c.YouTube.APIKey == "" {
		return fmt.Errorf("YOUTUBE_API_KEY is required")
	}
	if c.Store.FilePath == "" {
		return fmt.Errorf("DATA_FILE must not be empty")
	}
	for _, id := range c.Discord.OwnerIDs {
		if _, err := strconv.ParseUint(id, 10, 64); err != nil {
			return fmt.Errorf("invalid DISCORD_OWNER_IDS entry %q: %w", id, err)
		}
	}
	return nil
}

// IsOwner reports whether the given user ID is on the admin allow-list.
func (c *Config) IsOwner(userID string) bool {
	for _, id := range c.Discord.OwnerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// RedisEnabled reports whether the optional playlist cache should be wired.
func (c *Config) RedisEnabled() bool {
	return c.Redis.Host != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func parseCommaSeparated(value string) []string {
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
