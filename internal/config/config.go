package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
)

type SMTP struct {
	Host     string
	Port     string
	User     string
	Password string
}

// Missing lists the SMTP variables that are not set, in a stable order.
func (s SMTP) Missing() []string {
	var out []string
	if s.Host == "" {
		out = append(out, "SMTP_HOST")
	}
	if s.Port == "" {
		out = append(out, "SMTP_PORT")
	}
	if s.User == "" {
		out = append(out, "SMTP_USER")
	}
	if s.Password == "" {
		out = append(out, "SMTP_PASSWORD")
	}
	return out
}

type Storage struct {
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
	Bucket          string
	Region          string
	CDNBaseURL      string
}

type Elastic struct {
	URL      string
	User     string
	Password string
	Index    string
}

type Config struct {
	ServiceName string
	ServerPort  int
	LogLevel    string

	DatabaseURL string
	DBSchema    string

	SMTP    SMTP
	Storage Storage
	Elastic Elastic

	TelegramAPIURL  string
	TelegramTimeout time.Duration

	KafkaBrokers []string

	AdminJWTSecret []byte

	SiteURL string
}

var schemaName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func Load() (Config, error) {
	cfg := Config{
		ServiceName: EnvDefault("SERVICE_NAME", "storefront"),
		ServerPort:  EnvIntDefault("SERVER_PORT", 8080),
		LogLevel:    EnvDefault("LOG_LEVEL", "info"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBSchema:    EnvDefault("MAIN_DB_SCHEMA", "public"),

		SMTP: SMTP{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     os.Getenv("SMTP_PORT"),
			User:     os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASSWORD"),
		},
		Storage: Storage{
			AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
			Endpoint:        EnvDefault("S3_ENDPOINT", "https://bucket.poehali.dev"),
			Bucket:          EnvDefault("S3_BUCKET", "files"),
			Region:          EnvDefault("S3_REGION", "us-east-1"),
			CDNBaseURL:      EnvDefault("CDN_BASE_URL", "https://cdn.poehali.dev"),
		},
		Elastic: Elastic{
			URL:      os.Getenv("ES_URL"),
			User:     os.Getenv("ES_USER"),
			Password: os.Getenv("ES_PASSWORD"),
			Index:    EnvDefault("ES_INDEX", "products"),
		},

		TelegramAPIURL:  EnvDefault("TELEGRAM_API_URL", "https://api.telegram.org"),
		TelegramTimeout: time.Duration(EnvIntDefault("TELEGRAM_TIMEOUT_SEC", 10)) * time.Second,

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),

		AdminJWTSecret: []byte(os.Getenv("ADMIN_JWT_SECRET")),

		SiteURL: EnvDefault("SITE_URL", "https://whiteshishka.com"),
	}

	allow := CSV(EnvDefault("DB_SCHEMA_ALLOWLIST", "public"))
	if err := ValidateSchema(cfg.DBSchema, allow); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ValidateSchema rejects schema names that are not plain identifiers or are
// absent from the allow-list. The schema is interpolated into SQL text.
func ValidateSchema(schema string, allow []string) error {
	if !schemaName.MatchString(schema) {
		return fmt.Errorf("MAIN_DB_SCHEMA %q is not a valid identifier", schema)
	}
	for _, a := range allow {
		if a == schema {
			return nil
		}
	}
	return fmt.Errorf("MAIN_DB_SCHEMA %q is not in DB_SCHEMA_ALLOWLIST", schema)
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
