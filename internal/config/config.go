package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/chaman2003/epsilora-api/internal/llm"
)

type Config struct {
	HTTPAddr string

	DBDriver string
	DBDSN    string

	AuthSecret string

	CORSOrigins []string

	// DemoSeed creates demo users and a sample course on startup when the
	// users table is empty.
	DemoSeed bool

	LLM llm.Config
}

// FromEnv loads configuration from the environment. A .env file in the
// working directory is applied first, best-effort, so local development
// needs no exported variables.
func FromEnv() Config {
	_ = godotenv.Load()

	addr := envOr("HTTP_ADDR", ":8080")
	return Config{
		HTTPAddr:    addr,
		DBDriver:    envOr("DB_DRIVER", "sqlite"),
		DBDSN:       envOr("DB_DSN", ""),
		AuthSecret:  envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		CORSOrigins: csvOr("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173"),
		DemoSeed:    envBool("DEMO_SEED", true),
		LLM:         llm.ConfigFromEnv(),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
