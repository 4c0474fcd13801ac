package configs

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/manjitt2/Movie-bot/configs/loader"
)

const (
	EnvDev  = "dev"
	EnvProd = "prod"
)

type TMDBConfig struct {
	Token string `validate:"required"`
	Path  string `validate:"required,url"`
}

type OpenLibraryConfig struct {
	Path string `validate:"required,url"`
}

type DiscordConfig struct {
	Token  string
	Prefix string `validate:"required"`
}

type TelegramConfig struct {
	Token             string
	ConnectionTimeout time.Duration `validate:"gt=0"`
	Workers           int           `validate:"gte=1"`
}

type LogConfig struct {
	Level string `validate:"omitempty,oneof=debug info warn error"`
	File  string
}

type Config struct {
	TMDB        TMDBConfig
	OL          OpenLibraryConfig
	DS          DiscordConfig
	TG          TelegramConfig
	Log         LogConfig
	APITimeout  time.Duration `validate:"gt=0"`
	MetricsAddr string        `validate:"required"`
	Env         string        `validate:"oneof=dev prod"`
}

func MustLoad(loader loader.ConfigLoader) *Config {
	env := flag.String("env", EnvDev, "Environment type")
	flag.Parse()

	const op = "configs.MustLoad"
	cfg, err := Load(loader, *env)
	if err != nil {
		log.Fatalf("%s: %+v", op, err)
	}
	return cfg
}

func Load(loader loader.ConfigLoader, env string) (*Config, error) {
	const op = "configs.Load"
	envs, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("%s: config load failed: %w", op, err)
	}
	cfg := &Config{
		TMDB: TMDBConfig{
			Token: envs["TMDB_API_KEY"],
			Path:  getEnvAsString(envs["TMDB_BASE_URL"], "https://api.themoviedb.org/3/"),
		},
		OL: OpenLibraryConfig{
			Path: getEnvAsString(envs["OPENLIBRARY_BASE_URL"], "https://openlibrary.org/"),
		},
		DS: DiscordConfig{
			Token:  envs["DISCORD_TOKEN"],
			Prefix: getEnvAsString(envs["COMMAND_PREFIX"], "!"),
		},
		TG: TelegramConfig{
			Token:             envs["TELEGRAM_TOKEN"],
			ConnectionTimeout: getEnvAsDuration(envs["TELEGRAM_CONNECTION_TIMEOUT"], 5*time.Second),
			Workers:           getEnvAsInt(envs["TELEGRAM_WORKERS"], 4),
		},
		Log: LogConfig{
			Level: envs["LOG_LEVEL"],
			File:  envs["LOG_FILE"],
		},
		APITimeout:  time.Duration(getEnvAsInt(envs["API_TIMEOUT_MS"], 5000)) * time.Millisecond,
		MetricsAddr: getEnvAsString(envs["METRICS_ADDR"], ":8080"),
		Env:         env,
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("%s: config validation failed: %w", op, err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return err
	}
	if cfg.DS.Token == "" && cfg.TG.Token == "" {
		return errors.New("missing chat token: set DISCORD_TOKEN or TELEGRAM_TOKEN")
	}
	return nil
}

func getEnvAsString(strValue string, defaultValue string) string {
	if strValue == "" {
		return defaultValue
	}
	return strValue
}

func getEnvAsDuration(strValue string, defaultValue time.Duration) time.Duration {
	const op = "configs.getEnvAsDuration"
	if strValue == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(strValue)
	if err != nil {
		log.Printf("%s:Invalid value for %s, using default: %v", op, strValue, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsInt(strValue string, defaultValue int) int {
	const op = "configs.getEnvAsInt"
	if strValue == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(strValue)
	if err != nil {
		log.Printf("%s:Invalid value for %s, using default: %v", op, strValue, defaultValue)
		return defaultValue
	}
	return value
}
