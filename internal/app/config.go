package app

import (
	"strings"

	"github.com/gaaferHajji2/go-blog-api/internal/logger"
	"github.com/gaaferHajji2/go-blog-api/internal/utils"
)

type Config struct {
	HTTPAddr    string
	LogMode     string
	RedisAddr   string
	CORSOrigins []string
}

func LoadConfig(log *logger.Logger) Config {
	origins := utils.GetEnv("CORS_ORIGINS", "http://localhost:3000", log)
	return Config{
		HTTPAddr:    utils.GetEnv("HTTP_ADDR", ":8080", log),
		LogMode:     utils.GetEnv("LOG_MODE", "development", log),
		RedisAddr:   utils.GetEnv("REDIS_ADDR", "", log),
		CORSOrigins: splitOrigins(origins),
	}
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
