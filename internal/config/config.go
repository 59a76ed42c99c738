package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"kofi-relay/internal/i18n"
)

// Version is the build version, set with -ldflags "-X kofi-relay/internal/config.Version=...".
var Version = "dev"

// Config contains runtime configuration values.
type Config struct {
	Port              string         `env:"PORT" validate:"required,numeric"`
	DiscordWebhookURL string         `env:"DISCORD_WEBHOOK_URL" validate:"required,url"`
	VerificationToken string         `env:"KOFI_VERIFICATION_TOKEN"`
	Language          string         `env:"LANGUAGE" validate:"required"`
	KofiName          string         `env:"KOFI_NAME" validate:"required"`
	KofiLogo          string         `env:"KOFI_LOGO" validate:"omitempty,url"`
	WebhookUsername   string         `env:"WEBHOOK_USERNAME"`
	TimeZone          string         `env:"TIMEZONE" validate:"required"`
	Location          *time.Location `validate:"-"`
	RequestTimeout    time.Duration  `env:"REQUEST_TIMEOUT"`
	ShutdownTimeout   time.Duration  `env:"SHUTDOWN_TIMEOUT"`
	MaxConnections    int            `env:"MAX_CONNECTIONS" validate:"gte=0"`
	TestSchedule      string         `env:"TEST_SCHEDULE"`
	LogLevel          string         `env:"LOG_LEVEL" validate:"oneof=debug info warn warning error"`

	// ConfigPath is the settings file that was read, empty when none was found.
	ConfigPath string
	Version    string
}

const (
	defaultPort            = "3033"
	defaultLanguage        = "en"
	defaultKofiName        = "Ko-fi"
	defaultKofiLogo        = "https://storage.ko-fi.com/cdn/brandasset/kofi_s_logo_nolabel.png"
	defaultTimeZone        = "UTC"
	defaultTimeout         = 10 * time.Second
	defaultShutdownTimeout = 15 * time.Second
	defaultMaxConnections  = 256
	defaultLogLevel        = "info"
)

// SearchPaths are the settings file candidates, relative to the working
// directory. The first one that exists is used.
var SearchPaths = []string{
	"config/.env",
	"app/config/.env",
	".env",
}

// Load builds a Config from environment variables, overlaid on the first
// settings file found in SearchPaths. Environment variables win over the file.
func Load() (*Config, error) {
	return load(SearchPaths)
}

func load(paths []string) (*Config, error) {
	file, path, err := readSettingsFile(paths)
	if err != nil {
		return nil, err
	}
	src := source{file: file}

	cfg := &Config{
		Port:              src.getenvDefault("PORT", defaultPort),
		DiscordWebhookURL: src.getenvDefault("DISCORD_WEBHOOK_URL", ""),
		VerificationToken: src.getenvDefault("KOFI_VERIFICATION_TOKEN", ""),
		Language:          i18n.ResolveLocale(src.getenvDefault("LANGUAGE", defaultLanguage)),
		KofiName:          src.getenvDefault("KOFI_NAME", defaultKofiName),
		KofiLogo:          src.getenvDefault("KOFI_LOGO", defaultKofiLogo),
		TimeZone:          src.getenvDefault("TIMEZONE", defaultTimeZone),
		RequestTimeout:    src.parseDurationDefault("REQUEST_TIMEOUT", defaultTimeout),
		ShutdownTimeout:   src.parseDurationDefault("SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		MaxConnections:    src.parseIntDefault("MAX_CONNECTIONS", defaultMaxConnections),
		TestSchedule:      src.getenvDefault("TEST_SCHEDULE", ""),
		LogLevel:          strings.ToLower(src.getenvDefault("LOG_LEVEL", defaultLogLevel)),
		ConfigPath:        path,
		Version:           Version,
	}
	cfg.WebhookUsername = src.getenvDefault("WEBHOOK_USERNAME", cfg.KofiName+" Supporter Alert")

	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultTimeout
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("TIMEZONE: %w", err)
	}
	cfg.Location = loc

	return cfg, nil
}

// LogValue implements slog.LogValuer. Secrets are reported as set or not set.
func (c *Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("version", c.Version),
		slog.String("port", c.Port),
		slog.String("language", c.Language),
		slog.String("kofi_name", c.KofiName),
		slog.String("timezone", c.TimeZone),
		slog.String("webhook_url", presence(c.DiscordWebhookURL)),
		slog.String("verification_token", presence(c.VerificationToken)),
		slog.String("config_path", c.ConfigPath),
		slog.Int("max_connections", c.MaxConnections),
		slog.String("test_schedule", c.TestSchedule),
	)
}

func presence(value string) string {
	if value == "" {
		return "not set"
	}
	return "set"
}

func readSettingsFile(paths []string) (map[string]string, string, error) {
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		values, err := godotenv.Read(path)
		if err != nil {
			return nil, "", fmt.Errorf("read settings file %s: %w", path, err)
		}
		return values, path, nil
	}
	return nil, "", nil
}

var validate = newValidator()

func newValidator() func(*Config) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		if name := field.Tag.Get("env"); name != "" {
			return name
		}
		return field.Name
	})

	return func(cfg *Config) error {
		err := v.Struct(cfg)
		if err == nil {
			return nil
		}

		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}

		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, describe(fe))
		}
		return errors.New(strings.Join(msgs, "; "))
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", fe.Field())
	case "numeric":
		return fmt.Sprintf("%s must be a number", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

// source resolves keys from the process environment first, then the settings file.
type source struct {
	file map[string]string
}

func (s source) lookup(key string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return s.file[key]
}

func (s source) getenvDefault(key, fallback string) string {
	if val := s.lookup(key); val != "" {
		return val
	}
	return fallback
}

func (s source) parseIntDefault(key string, fallback int) int {
	if val := s.lookup(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}

func (s source) parseDurationDefault(key string, fallback time.Duration) time.Duration {
	if val := s.lookup(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
