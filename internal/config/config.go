package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	CatalogURL     string
	SiteRoot       string
	FirstPage      int
	MaxPages       int
	RequestTimeout time.Duration
	RequestDelay   time.Duration
	WorkerCount    int
	LayoutSegments int
	LayoutExtra    bool
	DatabaseURL    string
	RedisURL       string
	CacheTTL       time.Duration
	MetricsPort    string
	LogLevel       string
}

func Load() *Config {
	// .env at the project root, then the working directory
	_ = godotenv.Load("../../.env")
	_ = godotenv.Load()
	return &Config{
		CatalogURL:     os.Getenv("CATALOG_URL"),
		SiteRoot:       getEnv("SITE_ROOT", "https://atrezzovazquez.es/"),
		FirstPage:      getInt("FIRST_PAGE", 1),
		MaxPages:       getInt("MAX_PAGES", 100),
		RequestTimeout: getDuration("REQUEST_TIMEOUT", 10*time.Second),
		RequestDelay:   getDuration("REQUEST_DELAY", 0),
		WorkerCount:    getInt("WORKER_COUNT", 1),
		LayoutSegments: getInt("LAYOUT_SEGMENTS", 17),
		LayoutExtra:    getBool("LAYOUT_ALLOW_EXTRA", false),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisURL:       os.Getenv("REDIS_URL"),
		CacheTTL:       getDuration("CACHE_TTL", 24*time.Hour),
		MetricsPort:    getEnv("METRICS_PORT", "9090"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}
}

// LastPage is the last page index of the configured range, inclusive.
func (c *Config) LastPage() int {
	return c.FirstPage + c.MaxPages - 1
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getInt(k string, d int) int {
	v, err := strconv.Atoi(os.Getenv(k))
	if err != nil {
		return d
	}
	return v
}

func getBool(k string, d bool) bool {
	v, err := strconv.ParseBool(os.Getenv(k))
	if err != nil {
		return d
	}
	return v
}

func getDuration(k string, d time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(k))
	if err != nil {
		return d
	}
	return v
}
