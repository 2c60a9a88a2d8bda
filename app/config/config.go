package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	Store          string // "badger" or "mongo"
	DBPath         string
	MongoURI       string
	MongoDB        string
	BlogAPIURL     string
	StaticDir      string
	ViewsDir       string
	FetchTimeout   time.Duration
	AdminTokenHash string
}

// Load reads .env files (if any) into the environment, then builds the
// config from it.
func Load(files ...string) Config {
	if err := godotenv.Load(files...); err != nil {
		log.Println(".env not found")
	}
	return FromEnv()
}

// FromEnv builds the config from the current environment only.
func FromEnv() Config {
	return Config{
		Port:           getEnv("PORT", "8080"),
		Store:          strings.ToLower(getEnv("STORE", "badger")),
		DBPath:         getEnv("DB_PATH", "data/badger"),
		MongoURI:       getEnv("MONGO_URI", ""),
		MongoDB:        getEnv("MONGO_DB", "main"),
		BlogAPIURL:     getEnv("BLOG_API_URL", "http://localhost:8080/api/blogposts"),
		StaticDir:      getEnv("STATIC_DIR", "static"),
		ViewsDir:       getEnv("VIEWS_DIR", "app/views"),
		FetchTimeout:   getDuration("FETCH_TIMEOUT", 5*time.Second),
		AdminTokenHash: getEnv("ADMIN_TOKEN_HASH", ""),
	}
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid %s %q, using %s", key, v, fallback)
		return fallback
	}
	return d
}
