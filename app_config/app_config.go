package app_config

import (
	"os"

	"github.com/pkg/errors"
)

const defaultBotAPIBase = "https://tapi.bale.ai"

/*

AppConfig is the immutable startup configuration of the api server. It is
constructed once in main after the .env files are loaded and passed to
every component by reference. Missing required values abort startup, they
are never handled as a runtime error.

*/

type AppConfig struct {
	DBHost string
	DBPort string
	DBUser string
	DBPass string
	DBName string

	// Token of the bot account on the external file host, used by the
	// media proxy to resolve and download files.
	BotToken   string
	BotAPIBase string

	// Redis is optional. When RedisHost is empty the explore cache is
	// disabled and every listing hits the database.
	RedisHost     string
	RedisPort     string
	RedisPassword string
}

// Load reads the configuration from the process environment. DB_NAME and
// BOT_TOKEN are required, everything else has a usable default.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		DBHost:        os.Getenv("DB_HOST"),
		DBPort:        os.Getenv("DB_PORT"),
		DBUser:        os.Getenv("DB_USER"),
		DBPass:        os.Getenv("DB_PASS"),
		DBName:        os.Getenv("DB_NAME"),
		BotToken:      os.Getenv("BOT_TOKEN"),
		BotAPIBase:    os.Getenv("BOT_API_BASE"),
		RedisHost:     os.Getenv("REDIS_HOST"),
		RedisPort:     os.Getenv("REDIS_PORT"),
		RedisPassword: os.Getenv("REDIS_PASSWD"),
	}

	if cfg.DBName == "" {
		return nil, errors.New("DB_NAME is not set")
	}
	if cfg.BotToken == "" {
		return nil, errors.New("BOT_TOKEN is not set")
	}
	if cfg.BotAPIBase == "" {
		cfg.BotAPIBase = defaultBotAPIBase
	}

	return cfg, nil
}
