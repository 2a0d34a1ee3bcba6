package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr string
	Env  string // "dev" or "production"

	// OriginPatterns accepted for websocket upgrades. Empty means
	// same-origin only.
	OriginPatterns []string
}

func Load() Config {
	// A .env file is optional; real env vars win either way.
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	env := os.Getenv("ENV")
	if env == "" {
		env = "production"
	}

	var origins []string
	if raw := os.Getenv("ALLOWED_ORIGINS"); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	return Config{
		Addr:           ":" + port,
		Env:            env,
		OriginPatterns: origins,
	}
}
