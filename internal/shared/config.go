package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv         string
	LogLevel       string
	HTTPAddr       string
	MetricsAddr    string
	RequestTimeout time.Duration
	RedisAddr      string
	RedisDB        int
	RedisPass      string
	LLMBase        string
	LLMKey         string
	LLMModel       string
	LLMRPS         int
	LLMTimeout     time.Duration
	CacheTTL       time.Duration
	ParseWorkers   int
}

// Load reads configuration from the environment. A .env file in the working
// directory (or the path in DOTENV) is loaded first; real env vars win.
func Load() Config {
	loadDotenv(env("DOTENV", ".env"))

	c := Config{
		AppEnv:         env("APP_ENV", "prod"),
		LogLevel:       env("LOG_LEVEL", "info"),
		HTTPAddr:       env("HTTP_ADDR", ":8080"),
		MetricsAddr:    env("METRICS_ADDR", ""),
		RequestTimeout: time.Duration(atoi("REQUEST_TIMEOUT_SECONDS", 90)) * time.Second,
		RedisAddr:      envAllowEmpty("REDIS_ADDR", "localhost:6379"),
		RedisDB:        atoi("REDIS_DB", 0),
		RedisPass:      env("REDIS_PASSWORD", ""),
		LLMBase:        env("LLM_BASE_URL", "https://openrouter.ai/api/v1"),
		LLMKey:         env("LLM_API_KEY", env("OPENROUTER_API_KEY", "")),
		LLMModel:       env("LLM_MODEL", "openai/gpt-4"),
		LLMRPS:         atoi("LLM_RPS", 2),
		LLMTimeout:     time.Duration(atoi("LLM_TIMEOUT_SECONDS", 60)) * time.Second,
		CacheTTL:       time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		ParseWorkers:   atoi("PARSE_WORKERS", 8),
	}
	if c.LLMKey == "" {
		log.Warn().Msg("LLM_API_KEY is empty")
	}
	return c
}

func loadDotenv(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := godotenv.Load(path); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("failed to load dotenv file")
	}
}

func atoi(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
	}
	return def
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// envAllowEmpty is env, except an explicitly empty value is kept.
func envAllowEmpty(k, def string) string {
	if v, ok := os.LookupEnv(k); ok {
		return v
	}
	return def
}
