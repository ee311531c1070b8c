package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Redis keys used by the recorder
const (
	WatchlistKey   = "config:watchlist"  // tickers the recorder subscribes to
	PriceEventsKey = "list:price:events" // streamed price updates
)

// PrixeConfig holds Prixe REST and WebSocket endpoint configuration.
type PrixeConfig struct {
	APIKey    string
	BaseURL   string
	WSURL     string
	UseProxy  bool
	ProxyAddr string
}

// OpenAIConfig holds chat-completion endpoint configuration.
type OpenAIConfig struct {
	APIKey string
	Model  string
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr            string
	Password        string
	WatchlistKey    string // Redis key for the recorder watchlist
	PollIntervalSec int    // Polling interval for watchlist changes in seconds
}

// MongoConfig holds MongoDB connection configuration.
type MongoConfig struct {
	Addr     string
	Database string
}

// AppConfig aggregates all runtime configuration needed by the examples.
type AppConfig struct {
	Prixe  PrixeConfig
	OpenAI OpenAIConfig
	Redis  RedisConfig
	Mongo  MongoConfig
}

// LoadFromEnv loads configuration from environment variables.
// A .env file in the working directory is loaded first if present;
// values already set in the environment win.
func LoadFromEnv() AppConfig {
	_ = godotenv.Load()

	return AppConfig{
		Prixe: PrixeConfig{
			APIKey:    os.Getenv("PRIXE_API_KEY"),
			BaseURL:   getenvWithDefault("PRIXE_BASE_URL", "https://api.prixe.io"),
			WSURL:     getenvWithDefault("PRIXE_WS_URL", "wss://ws.prixe.io/ws"),
			UseProxy:  getenvBoolWithDefault("USE_PROXY", false),
			ProxyAddr: os.Getenv("PROXY_ADDR"),
		},
		OpenAI: OpenAIConfig{
			APIKey: os.Getenv("OPENAI_API_KEY"),
			Model:  getenvWithDefault("OPENAI_MODEL", "gpt-5"),
		},
		Redis: RedisConfig{
			Addr:            getenvWithDefault("REDIS_ADDR", "localhost:6379"),
			Password:        os.Getenv("REDIS_PASSWORD"),
			WatchlistKey:    getenvWithDefault("REDIS_WATCHLIST_KEY", WatchlistKey),
			PollIntervalSec: getenvIntWithDefault("WATCHLIST_POLL_INTERVAL", 20),
		},
		Mongo: MongoConfig{
			Addr:     os.Getenv("MONGO_ADDR"),
			Database: getenvWithDefault("MONGO_DATABASE", "prixe"),
		},
	}
}

func getenvWithDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvIntWithDefault(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getenvBoolWithDefault(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
