package config

import (
	"fmt"
	"os"
	"strings"
)

type Config struct {
	Port           string
	Env            string
	MongoURI       string
	MongoDB        string
	APIKey         string
	AllowedOrigins []string
	SupabaseURL    string
	SupabaseKey    string
}

// Production reports whether internal error detail must be suppressed in responses.
func (c Config) Production() bool { return c.Env == "production" }

func Load() (Config, error) {
	cfg := Config{
		Port:           getenv("APP_PORT", "8080"),
		Env:            getenv("APP_ENV", "development"),
		MongoURI:       os.Getenv("MONGO_URI"),
		MongoDB:        getenv("MONGO_DB", "mechanic_bano"),
		APIKey:         os.Getenv("API_KEY"),
		AllowedOrigins: splitList(os.Getenv("ALLOWED_ORIGINS")),
		SupabaseURL:    os.Getenv("SUPABASE_PROJECT_URL"),
		SupabaseKey:    os.Getenv("SUPABASE_SERVICE_KEY"),
	}
	if cfg.MongoURI == "" {
		return cfg, fmt.Errorf("MONGO_URI is not set")
	}
	if !strings.HasPrefix(cfg.MongoURI, "mongodb") {
		return cfg, fmt.Errorf("invalid MONGO_URI format, must start with mongodb")
	}
	return cfg, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
