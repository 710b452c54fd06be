package main

import (
	"os"
	"time"
	_ "time/tzdata"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// setupLogger configures the global zerolog logger: JSON in production,
// human-readable console output otherwise.
func setupLogger(cfg config) {
	zerolog.SetGlobalLevel(cfg.LogLevel)
	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.Env != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// requestLogger logs one line per request with status and latency.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		evt := log.Info()
		if c.Writer.Status() >= 500 {
			evt = log.Error()
		}
		evt.Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Int("user_id", c.GetInt("user_id")).
			Msg("request")
	}
}

func main() {
	cfg := loadConfig()
	setupLogger(cfg)

	if cfg.DBURL == "" {
		log.Fatal().Msg("DB_URL is required")
	}

	pool := getDBPool(cfg.DBURL)
	defer pool.Close()

	h := &Handler{db: pool, loc: cfg.Location}
	h.menus = newMenuCache(cfg.MenuCacheTTL, h.loadMenus)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())
	router.SetTrustedProxies(nil)
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	h.registerRoutes(router)

	log.Info().Str("port", cfg.Port).Strs("cors_origins", cfg.CORSOrigins).Msg("starting canteen api")
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
