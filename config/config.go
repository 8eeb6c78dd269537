package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the web client
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Backend API configuration
	APIBaseURL  string
	HTTPTimeout time.Duration

	// Tenant served when the URL carries no organization slug
	DefaultTenant string

	// Session configuration
	SessionBackend string
	SessionSecret  string
	SessionTTL     time.Duration

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Login attempts allowed per client IP per minute
	LoginRateLimit int

	CORSOrigins []string

	// Proxies whose X-Forwarded-For is believed; empty trusts none
	TrustedProxies []string

	// Organization logo storage
	S3BucketName    string
	AWSRegion       string
	S3PublicBaseURL string

	// Logging
	LogLevel     string
	LogFormat    string
	LogstashURL  string
	ElasticURL   string
	ElasticIndex string
}

const (
	SessionBackendRedis  = "redis"
	SessionBackendMemory = "memory"

	defaultAPIBaseURL = "http://localhost:3000/api"
)

// LoadConfig reads .env, an optional config.yml and the environment, in that
// order of increasing precedence, and validates the result.
func LoadConfig() (*Config, error) {
	// A missing .env is the normal case outside development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	env := GetEnvironment()
	setDefaults(v, env)

	cfg := fromViper(v)
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = readSecret("session_secret")
	}
	if cfg.RedisPassword == "" {
		cfg.RedisPassword = readSecret("redis_password")
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, env Environment) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("api.base.url", defaultAPIBaseURL)
	v.SetDefault("http.timeout", "15s")
	v.SetDefault("default.tenant", "vitality")
	v.SetDefault("session.ttl", "24h")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("login.rate.limit", 10)
	v.SetDefault("cors.origins", "http://localhost:5173")
	v.SetDefault("aws.region", "us-east-1")
	v.SetDefault("s3.bucket.name", "vitality-organization-logos")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("elastic.index", "vitality-web")

	switch env {
	case Development, Test:
		v.SetDefault("session.backend", SessionBackendMemory)
		v.SetDefault("session.secret", "development-session-secret-change-me")
	default:
		v.SetDefault("session.backend", SessionBackendRedis)
		v.SetDefault("log.format", "json")
	}
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		ServerPort:      v.GetString("server.port"),
		ServerHost:      v.GetString("server.host"),
		APIBaseURL:      NormalizeAPIBaseURL(v.GetString("api.base.url")),
		HTTPTimeout:     v.GetDuration("http.timeout"),
		DefaultTenant:   v.GetString("default.tenant"),
		SessionBackend:  strings.ToLower(v.GetString("session.backend")),
		SessionSecret:   v.GetString("session.secret"),
		SessionTTL:      v.GetDuration("session.ttl"),
		RedisHost:       v.GetString("redis.host"),
		RedisPort:       v.GetString("redis.port"),
		RedisPassword:   v.GetString("redis.password"),
		RedisDB:         v.GetInt("redis.db"),
		RedisURL:        v.GetString("redis.url"),
		LoginRateLimit:  v.GetInt("login.rate.limit"),
		CORSOrigins:     splitList(v.GetString("cors.origins")),
		TrustedProxies:  splitList(v.GetString("trusted.proxies")),
		S3BucketName:    v.GetString("s3.bucket.name"),
		AWSRegion:       v.GetString("aws.region"),
		S3PublicBaseURL: v.GetString("s3.public.base.url"),
		LogLevel:        v.GetString("log.level"),
		LogFormat:       v.GetString("log.format"),
		LogstashURL:     v.GetString("logstash.url"),
		ElasticURL:      v.GetString("elastic.url"),
		ElasticIndex:    v.GetString("elastic.index"),
	}
}

// NormalizeAPIBaseURL makes sure the backend base URL ends with "/api".
func NormalizeAPIBaseURL(raw string) string {
	url := strings.TrimSpace(raw)
	if url == "" || strings.HasSuffix(url, "/api") {
		return url
	}
	if strings.HasSuffix(url, "/") {
		return url + "api"
	}
	return url + "/api"
}

// Addr returns the listen address of the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.ServerHost, c.ServerPort)
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
