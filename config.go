package main

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// config is read once at startup from the environment (and .env outside
// production).
type config struct {
	DBURL        string
	Port         string
	CORSOrigins  []string
	LogLevel     zerolog.Level
	MenuCacheTTL time.Duration
	Env          string
	Location     *time.Location
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// loadConfig applies defaults for everything except DB_URL. Unparseable
// values fall back to the default with a warning rather than aborting.
func loadConfig() config {
	env := envOr("APP_ENV", "development")
	if env != "production" {
		// A missing .env is fine when the variables come from the shell.
		if err := godotenv.Load(); err != nil {
			log.Debug().Err(err).Msg("no .env file loaded")
		}
	}

	cfg := config{
		DBURL:        os.Getenv("DB_URL"),
		Port:         envOr("PORT", "3000"),
		Env:          env,
		LogLevel:     zerolog.InfoLevel,
		MenuCacheTTL: 5 * time.Minute,
		Location:     time.Local,
	}

	for _, o := range strings.Split(envOr("CORS_ORIGINS", "http://localhost:5173"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	if lvl, err := zerolog.ParseLevel(envOr("LOG_LEVEL", "info")); err == nil {
		cfg.LogLevel = lvl
	} else {
		log.Warn().Err(err).Msg("invalid LOG_LEVEL, using info")
	}

	if ttl, err := time.ParseDuration(envOr("MENU_CACHE_TTL", "5m")); err == nil && ttl > 0 {
		cfg.MenuCacheTTL = ttl
	} else {
		log.Warn().Str("value", os.Getenv("MENU_CACHE_TTL")).Msg("invalid MENU_CACHE_TTL, using 5m")
	}

	if tz := os.Getenv("APP_TIMEZONE"); tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			cfg.Location = loc
		} else {
			log.Warn().Err(err).Str("tz", tz).Msg("invalid APP_TIMEZONE, using local time")
		}
	}

	return cfg
}
