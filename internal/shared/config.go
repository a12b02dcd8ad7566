package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	CatalogHTTP  = "http"
	CatalogMySQL = "mysql"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string

	CatalogSource  string // http|mysql
	CatalogBaseURL string
	CatalogKey     string
	CatalogRPS     int
	CatalogVersion string
	CacheTTL       time.Duration

	SiteName    string
	SiteURL     string
	SitePhone   string
	SiteEmail   string
	Operator    string // WhatsApp number receiving enquiries
	PhoneRegion string

	MetaDescriptionMax int
	CityPickerLimit    int
	WarmWorkers        int
}

// Load reads the environment once at process start. A .env file in the
// working directory is applied first; real env vars win over it.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg(".env present but unreadable")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ""),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/pytech?parseTime=true&charset=utf8mb4&loc=UTC"),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),

		CatalogSource:  strings.ToLower(env("CATALOG_SOURCE", CatalogHTTP)),
		CatalogBaseURL: env("CATALOG_BASE_URL", "http://localhost:8001/api"),
		CatalogKey:     env("CATALOG_API_KEY", ""),
		CatalogRPS:     atoi("CATALOG_RPS", 20),
		CatalogVersion: env("CATALOG_VERSION", "v1"),
		CacheTTL:       time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,

		SiteName:    env("SITE_NAME", "PyTech Digital"),
		SiteURL:     strings.TrimRight(env("SITE_BASE_URL", "https://pytech.digital"), "/"),
		SitePhone:   env("SITE_PHONE", "+919205222170"),
		SiteEmail:   env("SITE_EMAIL", "info@pytechdigital.com"),
		Operator:    env("OPERATOR_WHATSAPP", "+91 9205 222 170"),
		PhoneRegion: env("PHONE_REGION", "IN"),

		MetaDescriptionMax: atoi("META_DESCRIPTION_MAX", 160),
		CityPickerLimit:    atoi("CITY_PICKER_LIMIT", 18),
		WarmWorkers:        atoi("WARM_WORKERS", 8),
	}
	if c.CatalogSource != CatalogHTTP && c.CatalogSource != CatalogMySQL {
		log.Warn().Str("source", c.CatalogSource).Msg("unknown CATALOG_SOURCE, using http")
		c.CatalogSource = CatalogHTTP
	}
	if c.Operator == "" {
		log.Warn().Msg("OPERATOR_WHATSAPP is empty; enquiries will fail at hand-off")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
