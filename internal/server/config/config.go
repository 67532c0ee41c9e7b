// Package config загружает конфигурацию сервера из .env файла, переменных окружения
// NOTEKEEPER_* и необязательного файла конфигурации.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/iudanet/notekeeper/internal/server/auth"
)

const envPrefix = "NOTEKEEPER"

// Значения по умолчанию
const (
	defaultHTTPAddress     = "0.0.0.0:8080"
	defaultShutdownTimeout = 10 * time.Second
	defaultDatabasePath    = "notekeeper.db"
	defaultLogLevel        = "info"
	defaultTokenIssuer     = "notekeeper"
	defaultTokenAudience   = "notekeeper-clients"
	defaultTokenTTL        = 30 * time.Minute
	defaultRateRequests    = 20
	defaultRateWindow      = time.Minute
	defaultHeartbeat       = 25 * time.Second
)

// defaultAllowedOrigins браузерные клиенты с любого origin
var defaultAllowedOrigins = []string{"*"}

// Config конфигурация сервера
type Config struct {
	HTTP      HTTPConfig      `mapstructure:"http"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Google    GoogleConfig    `mapstructure:"google"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Log       LogConfig       `mapstructure:"log"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Stream    StreamConfig    `mapstructure:"stream"`
}

type HTTPConfig struct {
	Address         string        `mapstructure:"address" validate:"required,hostname_port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

type GoogleConfig struct {
	ClientID string `mapstructure:"client_id" validate:"required"`
	JWKSURL  string `mapstructure:"jwks_url" validate:"required,url"`
}

// AuthConfig параметры backend токенов
type AuthConfig struct {
	SigningSecret string        `mapstructure:"signing_secret" validate:"required"`
	Issuer        string        `mapstructure:"issuer" validate:"required"`
	Audience      string        `mapstructure:"audience" validate:"required"`
	TokenTTL      time.Duration `mapstructure:"token_ttl" validate:"gt=0"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
}

// RateLimitConfig лимит запросов к /auth/google с одного IP
type RateLimitConfig struct {
	Requests int           `mapstructure:"requests" validate:"gt=0"`
	Window   time.Duration `mapstructure:"window" validate:"gt=0"`
}

// CORSConfig origins браузерных клиентов. В окружении список через запятую,
// пустой список отключает CORS заголовки.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// StreamConfig параметры GET /notes/stream
type StreamConfig struct {
	Heartbeat time.Duration `mapstructure:"heartbeat" validate:"gt=0"`
}

// LoadOptions пути к необязательным файлам конфигурации
type LoadOptions struct {
	EnvFile    string // EnvFile .env файл; пустой путь - ./.env, если он есть
	ConfigFile string // ConfigFile yaml/toml/json файл для viper
}

// NewViper возвращает viper со значениями по умолчанию и привязкой к окружению
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("http.address", defaultHTTPAddress)
	v.SetDefault("http.shutdown_timeout", defaultShutdownTimeout)
	v.SetDefault("database.path", defaultDatabasePath)
	v.SetDefault("google.client_id", "")
	v.SetDefault("google.jwks_url", auth.DefaultGoogleJWKSURL)
	v.SetDefault("auth.signing_secret", "")
	v.SetDefault("auth.issuer", defaultTokenIssuer)
	v.SetDefault("auth.audience", defaultTokenAudience)
	v.SetDefault("auth.token_ttl", defaultTokenTTL)
	v.SetDefault("log.level", defaultLogLevel)
	v.SetDefault("rate_limit.requests", defaultRateRequests)
	v.SetDefault("rate_limit.window", defaultRateWindow)
	v.SetDefault("cors.allowed_origins", defaultAllowedOrigins)
	v.SetDefault("stream.heartbeat", defaultHeartbeat)
	return v
}

// Load читает .env, файл конфигурации и окружение, затем проверяет результат.
// Переменные окружения имеют приоритет над файлами.
func Load(opts LoadOptions) (*Config, error) {
	if err := loadEnvFile(opts.EnvFile); err != nil {
		return nil, err
	}

	v := NewViper()
	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return FromViper(v)
}

// FromViper собирает и проверяет конфигурацию из настроенного viper
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.Google.ClientID = strings.TrimSpace(cfg.Google.ClientID)
	cfg.Auth.SigningSecret = strings.TrimSpace(cfg.Auth.SigningSecret)
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.CORS.AllowedOrigins = trimList(cfg.CORS.AllowedOrigins)

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", describe(err))
	}
	return &cfg, nil
}

// trimList убирает пробелы вокруг элементов и пустые элементы
func trimList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// loadEnvFile загружает .env. Явно указанный файл обязан существовать.
func loadEnvFile(path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", path, err)
		}
		return nil
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// describe переводит ошибки валидатора в имена ключей конфигурации
func describe(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", configKey(fieldErr.StructNamespace()), fieldErr.Tag()))
	}
	return errors.New(strings.Join(msgs, "; "))
}

var configKeys = map[string]string{
	"Config.HTTP.Address":         "http.address",
	"Config.HTTP.ShutdownTimeout": "http.shutdown_timeout",
	"Config.Database.Path":        "database.path",
	"Config.Google.ClientID":      "google.client_id",
	"Config.Google.JWKSURL":       "google.jwks_url",
	"Config.Auth.SigningSecret":   "auth.signing_secret",
	"Config.Auth.Issuer":          "auth.issuer",
	"Config.Auth.Audience":        "auth.audience",
	"Config.Auth.TokenTTL":        "auth.token_ttl",
	"Config.Log.Level":            "log.level",
	"Config.RateLimit.Requests":   "rate_limit.requests",
	"Config.RateLimit.Window":     "rate_limit.window",
	"Config.Stream.Heartbeat":     "stream.heartbeat",
}

func configKey(namespace string) string {
	if key, ok := configKeys[namespace]; ok {
		return key
	}
	return namespace
}

// SlogLevel возвращает уровень логирования для slog
func (c LogConfig) SlogLevel() slog.Level {
	switch c.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// TokenConfig параметры издателя backend токенов
func (c AuthConfig) TokenConfig() auth.TokenConfig {
	return auth.TokenConfig{
		Secret:   []byte(c.SigningSecret),
		Issuer:   c.Issuer,
		Audience: c.Audience,
		TTL:      c.TokenTTL,
	}
}
