package config

import (
	stderrors "errors"
	"fmt"
	"log"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/vytor/artikelfinder/internal/calendar"
)

type Config struct {
	Addr      string `env:"ADDR" validate:"required"`
	DBPath    string `env:"DB_PATH" validate:"required"`
	WordsPath string `env:"WORDS_PATH"`
	LogLevel  string `env:"LOG_LEVEL" validate:"required,oneof=DEBUG INFO WARN WARNING ERROR"`
	LogColors bool   `env:"LOG_COLORS"`
	// Timezone decides where calendar days start for streaks and the word of the day.
	Timezone string `env:"TIMEZONE" validate:"timezone"`
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:      envOr("ADDR", ":8080"),
		DBPath:    envOr("DB_PATH", "artikelfinder.db"),
		WordsPath: envOr("WORDS_PATH", ""),
		LogLevel:  strings.ToUpper(envOr("LOG_LEVEL", "INFO")),
		LogColors: envBoolOr("LOG_COLORS", true),
		Timezone:  envOr("TIMEZONE", "Local"),
	}
}

// LoadArgs is Load followed by command-line flags, which take precedence.
func LoadArgs(args []string) (Config, error) {
	cfg := Load()

	fs := pflag.NewFlagSet("artikelfinder", pflag.ContinueOnError)
	fs.StringVarP(&cfg.Addr, "addr", "a", cfg.Addr, "HTTP listen address")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the SQLite database file")
	fs.StringVarP(&cfg.WordsPath, "words", "w", cfg.WordsPath, "path to a words.json catalog (empty uses the bundled one)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: DEBUG, INFO, WARN, ERROR")
	fs.BoolVar(&cfg.LogColors, "log-colors", cfg.LogColors, "colorize log output")
	fs.StringVar(&cfg.Timezone, "timezone", cfg.Timezone, "IANA time zone that defines calendar days")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.LogLevel = strings.ToUpper(cfg.LogLevel)
	return cfg, nil
}

// Location resolves Timezone. Callers should Validate first.
func (c Config) Location() *time.Location {
	return calendar.ParseTimezone(c.Timezone)
}

// Validate checks every setting and reports all problems at once, naming each
// by its environment variable. LOG_LEVEL is compared case-insensitively.
func (c Config) Validate() error {
	c.LogLevel = strings.ToUpper(c.LogLevel)

	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("env"); name != "" {
			return name
		}
		return f.Name
	})
	_ = v.RegisterValidation("timezone", func(fl validator.FieldLevel) bool {
		_, err := time.LoadLocation(fl.Field().String())
		return err == nil
	})

	err := v.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return err
	}

	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			problems = append(problems, fmt.Sprintf("%s cannot be empty", fe.Field()))
		case "oneof":
			problems = append(problems, fmt.Sprintf("%s must be one of %s, got %q", fe.Field(), fe.Param(), fe.Value()))
		case "timezone":
			problems = append(problems, fmt.Sprintf("%s is not a known time zone: %q", fe.Field(), fe.Value()))
		default:
			problems = append(problems, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBoolOr(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("invalid value for %s=%q, using default %t", key, v, def)
	}
	return def
}
