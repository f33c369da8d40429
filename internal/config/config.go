// Package config loads server configuration from defaults, an optional TOML
// file, CIVICVOTE_* environment variables and command line flags, in that order.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/iudanet/civicvote/internal/validation"
)

// Поддерживаемые драйверы ledger хранилища
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const envPrefix = "CIVICVOTE_"

// minSecretLen минимальная длина секрета для подписи cookie посетителя
const minSecretLen = 16

// Config represents the server configuration.
type Config struct {
	Addr            string         `toml:"addr"`
	LogLevel        string         `toml:"log_level"`
	Database        DatabaseConfig `toml:"database"`
	Visitor         VisitorConfig  `toml:"visitor"`
	MaxBatchIDs     int            `toml:"max_batch_ids"`
	ShutdownTimeout time.Duration  `toml:"shutdown_timeout"`

	// ShowVersion задается только флагом -version
	ShowVersion bool `toml:"-"`
}

// DatabaseConfig selects the ledger backend.
type DatabaseConfig struct {
	Driver string `toml:"driver"` // "sqlite" or "postgres"
	DSN    string `toml:"dsn"`    // file path for sqlite, URL for postgres
}

// VisitorConfig holds the anonymous identity settings.
type VisitorConfig struct {
	Secret       string        `toml:"secret"`
	CookieName   string        `toml:"cookie_name"`
	CookieMaxAge time.Duration `toml:"cookie_max_age"`
	CookieSecure bool          `toml:"cookie_secure"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Addr:     ":8080",
		LogLevel: "info",
		Database: DatabaseConfig{
			Driver: DriverSQLite,
			DSN:    "civicvote.db",
		},
		Visitor: VisitorConfig{
			CookieName:   "d101_uid",
			CookieMaxAge: 365 * 24 * time.Hour,
		},
		MaxBatchIDs:     validation.DefaultMaxBatchIDs,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Load builds the configuration. getenv is usually os.Getenv.
func Load(args []string, getenv func(string) string) (*Config, error) {
	cfg := Default()

	fs := flag.NewFlagSet("civicvote-server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	configPath := fs.String("config", "", "Path to TOML config file")
	showVersion := fs.Bool("version", false, "Show version information")

	flagCfg := Default()
	fs.StringVar(&flagCfg.Addr, "addr", flagCfg.Addr, "Listen address")
	fs.StringVar(&flagCfg.Database.Driver, "db-driver", flagCfg.Database.Driver, "Ledger driver (sqlite or postgres)")
	fs.StringVar(&flagCfg.Database.DSN, "db-dsn", flagCfg.Database.DSN, "Ledger DSN (sqlite path or postgres URL)")
	fs.StringVar(&flagCfg.Visitor.Secret, "visitor-secret", "", "Secret for visitor cookies (prefer env)")
	fs.StringVar(&flagCfg.Visitor.CookieName, "cookie-name", flagCfg.Visitor.CookieName, "Visitor cookie name")
	fs.IntVar(&flagCfg.MaxBatchIDs, "max-batch-ids", flagCfg.MaxBatchIDs, "Maximum ids per batch read")
	fs.StringVar(&flagCfg.LogLevel, "log-level", flagCfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.DurationVar(&flagCfg.ShutdownTimeout, "shutdown-timeout", flagCfg.ShutdownTimeout, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}
	cfg.ShowVersion = *showVersion

	if *configPath == "" {
		*configPath = getenv(envPrefix + "CONFIG")
	}
	if *configPath != "" {
		if err := cfg.readFile(*configPath); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(getenv); err != nil {
		return nil, err
	}

	// Флаги применяются последними и только если заданы явно
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			cfg.Addr = flagCfg.Addr
		case "db-driver":
			cfg.Database.Driver = flagCfg.Database.Driver
		case "db-dsn":
			cfg.Database.DSN = flagCfg.Database.DSN
		case "visitor-secret":
			cfg.Visitor.Secret = flagCfg.Visitor.Secret
		case "cookie-name":
			cfg.Visitor.CookieName = flagCfg.Visitor.CookieName
		case "max-batch-ids":
			cfg.MaxBatchIDs = flagCfg.MaxBatchIDs
		case "log-level":
			cfg.LogLevel = flagCfg.LogLevel
		case "shutdown-timeout":
			cfg.ShutdownTimeout = flagCfg.ShutdownTimeout
		}
	})

	return cfg, nil
}

// readFile накладывает значения из TOML файла поверх текущих
func (c *Config) readFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	if _, err := toml.NewDecoder(f).Decode(c); err != nil {
		return fmt.Errorf("reading config from %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	str := func(name string, dst *string) {
		if v := getenv(envPrefix + name); v != "" {
			*dst = v
		}
	}

	str("ADDR", &c.Addr)
	str("DB_DRIVER", &c.Database.Driver)
	str("DB_DSN", &c.Database.DSN)
	str("VISITOR_SECRET", &c.Visitor.Secret)
	str("COOKIE_NAME", &c.Visitor.CookieName)
	str("LOG_LEVEL", &c.LogLevel)

	if v := getenv(envPrefix + "MAX_BATCH_IDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sMAX_BATCH_IDS: %w", envPrefix, err)
		}
		c.MaxBatchIDs = n
	}
	if v := getenv(envPrefix + "COOKIE_MAX_AGE"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %sCOOKIE_MAX_AGE: %w", envPrefix, err)
		}
		c.Visitor.CookieMaxAge = d
	}
	if v := getenv(envPrefix + "COOKIE_SECURE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sCOOKIE_SECURE: %w", envPrefix, err)
		}
		c.Visitor.CookieSecure = b
	}
	if v := getenv(envPrefix + "SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %sSHUTDOWN_TIMEOUT: %w", envPrefix, err)
		}
		c.ShutdownTimeout = d
	}

	return nil
}

// Validate checks the final configuration.
func (c *Config) Validate() error {
	var errs []error

	if c.Addr == "" {
		errs = append(errs, errors.New("addr is required"))
	}
	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		errs = append(errs, fmt.Errorf("unknown database driver %q (want sqlite or postgres)", c.Database.Driver))
	}
	if c.Database.DSN == "" {
		errs = append(errs, errors.New("database dsn is required"))
	}
	if len(c.Visitor.Secret) < minSecretLen {
		errs = append(errs, fmt.Errorf("visitor secret must be at least %d characters (set %sVISITOR_SECRET)", minSecretLen, envPrefix))
	}
	if c.Visitor.CookieName == "" {
		errs = append(errs, errors.New("cookie name is required"))
	}
	if c.Visitor.CookieMaxAge <= 0 {
		errs = append(errs, errors.New("cookie max age must be positive"))
	}
	if c.MaxBatchIDs <= 0 {
		errs = append(errs, errors.New("max batch ids must be positive"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("shutdown timeout must be positive"))
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// SlogLevel converts LogLevel to a slog.Level
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return level, nil
}
