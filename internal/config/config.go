package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultHTTPAddr     = ":8080"
	defaultJWTTTL       = "24h"
	defaultResetCodeTTL = "15m"
	defaultJWTSecret    = "change-me-jwt-secret"
	defaultCookieName   = "auth_token"
	defaultMaxFileSize  = 10 * 1024 * 1024 // 10 MB per image
	defaultMaxFiles     = 50
	defaultMaxVideoSize = 200 * 1024 * 1024
)

type Config struct {
	AppEnv   string
	HTTPAddr string
	LogLevel string

	DatabaseURL string

	JWTSecret    string
	JWTTTL       time.Duration
	ResetCodeTTL time.Duration

	CookieName     string
	CookieDomain   string
	CookieSecure   bool
	CookieSameSite string

	S3Endpoint      string
	S3Region        string
	S3Bucket        string
	S3AccessKey     string
	S3SecretKey     string
	S3PublicBaseURL string

	MaxFileSize  int64
	MaxFiles     int
	MaxVideoSize int64

	CORSAllowedOrigins []string
	MailerEnabled      bool
}

func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:   strings.ToLower(getEnv("APP_ENV", "development")),
		HTTPAddr: getEnv("HTTP_ADDR", defaultHTTPAddr),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DatabaseURL: getEnv("DATABASE_URL", "studioportal.db"),

		JWTSecret: strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret)),

		CookieName:     getEnv("AUTH_COOKIE_NAME", defaultCookieName),
		CookieDomain:   getEnv("AUTH_COOKIE_DOMAIN", ""),
		CookieSecure:   getEnvBool("AUTH_COOKIE_SECURE", false),
		CookieSameSite: getEnv("AUTH_COOKIE_SAMESITE", "Lax"),

		S3Endpoint:      getEnv("S3_ENDPOINT", ""),
		S3Region:        getEnv("S3_REGION", "auto"),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3AccessKey:     getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretKey:     getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3PublicBaseURL: getEnv("S3_PUBLIC_BASE_URL", ""),

		MaxFileSize:  getEnvInt64("UPLOAD_MAX_FILE_SIZE", defaultMaxFileSize),
		MaxFiles:     getEnvInt("UPLOAD_MAX_FILES", defaultMaxFiles),
		MaxVideoSize: getEnvInt64("UPLOAD_MAX_VIDEO_SIZE", defaultMaxVideoSize),

		MailerEnabled: getEnvBool("MAILER_DEV_LOG", true),
	}

	var err error
	cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL)
	if err != nil {
		return nil, err
	}
	cfg.ResetCodeTTL, err = parseDurationEnv("RESET_CODE_TTL", defaultResetCodeTTL)
	if err != nil {
		return nil, err
	}

	if origins := getEnv("CORS_ALLOWED_ORIGINS", ""); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
			}
		}
	}

	if cfg.AppEnv == "production" && cfg.JWTSecret == defaultJWTSecret {
		return nil, fmt.Errorf("JWT_SECRET must be set in production")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func parseDurationEnv(key, fallback string) (time.Duration, error) {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %q", key, raw)
	}
	return d, nil
}
