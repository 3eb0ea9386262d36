package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "TIMETABLE"

// Config captures environment driven configuration values for the timetable service.
type Config struct {
	HTTPPort        int
	SQLitePath      string
	MaxWeeklyHours  int
	HolidaysFile    string
	LogLevel        string
	LogFormat       string
	AutoPromote     bool
	ShutdownTimeout time.Duration
	ViewCacheTTL    time.Duration
}

// Load reads an optional .env file from the working directory and then the
// process environment.
func Load() (Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit dotenv path. A missing file is ignored;
// variables already present in the environment take precedence over it.
//
// Every missing or malformed variable is reported in a single error.
func LoadFile(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to read %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()
	setDefaults(v)

	var missing, invalid []string
	key := func(name string) string { return EnvPrefix + "_" + name }

	cfg := Config{
		HolidaysFile: strings.TrimSpace(v.GetString("HOLIDAYS_FILE")),
	}

	if port, err := strconv.Atoi(strings.TrimSpace(v.GetString("HTTP_PORT"))); err != nil || port <= 0 || port > 65535 {
		invalid = append(invalid, key("HTTP_PORT"))
	} else {
		cfg.HTTPPort = port
	}

	if path := strings.TrimSpace(v.GetString("SQLITE_PATH")); path == "" {
		missing = append(missing, key("SQLITE_PATH"))
	} else {
		cfg.SQLitePath = path
	}

	if hours, err := strconv.Atoi(strings.TrimSpace(v.GetString("MAX_WEEKLY_HOURS"))); err != nil || hours <= 0 {
		invalid = append(invalid, key("MAX_WEEKLY_HOURS"))
	} else {
		cfg.MaxWeeklyHours = hours
	}

	switch level := strings.ToLower(strings.TrimSpace(v.GetString("LOG_LEVEL"))); level {
	case "debug", "info", "warn", "error":
		cfg.LogLevel = level
	default:
		invalid = append(invalid, key("LOG_LEVEL"))
	}

	switch format := strings.ToLower(strings.TrimSpace(v.GetString("LOG_FORMAT"))); format {
	case "json", "text":
		cfg.LogFormat = format
	default:
		invalid = append(invalid, key("LOG_FORMAT"))
	}

	if promote, err := strconv.ParseBool(strings.TrimSpace(v.GetString("AUTO_PROMOTE"))); err != nil {
		invalid = append(invalid, key("AUTO_PROMOTE"))
	} else {
		cfg.AutoPromote = promote
	}

	if timeout, err := time.ParseDuration(strings.TrimSpace(v.GetString("SHUTDOWN_TIMEOUT"))); err != nil || timeout <= 0 {
		invalid = append(invalid, key("SHUTDOWN_TIMEOUT"))
	} else {
		cfg.ShutdownTimeout = timeout
	}

	if ttl, err := time.ParseDuration(strings.TrimSpace(v.GetString("VIEW_CACHE_TTL"))); err != nil || ttl < 0 {
		invalid = append(invalid, key("VIEW_CACHE_TTL"))
	} else {
		cfg.ViewCacheTTL = ttl
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variable values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("SQLITE_PATH", "timetable.db")
	v.SetDefault("MAX_WEEKLY_HOURS", "20")
	v.SetDefault("HOLIDAYS_FILE", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("AUTO_PROMOTE", "true")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("VIEW_CACHE_TTL", "30s")
}
