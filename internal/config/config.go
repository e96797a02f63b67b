package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage drivers accepted by database.driver.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Import   ImportConfig   `mapstructure:"import"`
	Reports  ReportsConfig  `mapstructure:"reports"`
	Log      LogConfig      `mapstructure:"log"`
	UI       UIConfig       `mapstructure:"ui"`
}

// DatabaseConfig selects the backing store.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
}

// AuthConfig holds the phone verification settings.
type AuthConfig struct {
	ResendSeconds  int           `mapstructure:"resend_seconds"`
	LoadingDelay   time.Duration `mapstructure:"loading_delay"`
	NetworkLatency time.Duration `mapstructure:"network_latency"`
	AcceptAnyCode  bool          `mapstructure:"accept_any_code"`
	CodeTTL        time.Duration `mapstructure:"code_ttl"`
	SendRetries    int           `mapstructure:"send_retries"`
}

// ImportConfig holds bulk upload settings.
type ImportConfig struct {
	ParseDelay   time.Duration `mapstructure:"parse_delay"`
	TemplatePath string        `mapstructure:"template_path"`
}

// ReportsConfig holds report export settings.
type ReportsConfig struct {
	ExportDir string `mapstructure:"export_dir"`
}

// LogConfig controls the file logger. An empty File disables logging.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	CurrencySymbol string `mapstructure:"currency_symbol"`
	DateFormat     string `mapstructure:"date_format"`
}

// Load reads configuration from file and env. Env var overrides use prefix INVENTORLY_.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("INVENTORLY_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "inventorly"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("INVENTORLY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		// a missing default file is fine, an explicit one is not
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgPath != "" {
			return Config{}, fmt.Errorf("read config %s: %w", cfgPath, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Default returns the configuration used when no file or env overrides exist.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var c Config
	_ = v.Unmarshal(&c)
	return c
}

// Validate rejects settings the application cannot run with.
func (c Config) Validate() error {
	switch c.Database.Driver {
	case DriverMemory:
	case DriverSQLite:
		if strings.TrimSpace(c.Database.Path) == "" {
			return fmt.Errorf("config: database.path required for sqlite driver")
		}
	default:
		return fmt.Errorf("config: unknown database.driver %q", c.Database.Driver)
	}
	if c.Auth.ResendSeconds <= 0 {
		return fmt.Errorf("config: auth.resend_seconds must be positive")
	}
	if c.Auth.SendRetries < 0 {
		return fmt.Errorf("config: auth.send_retries must not be negative")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	home := os.Getenv("HOME")
	dataDir := filepath.Join(home, ".local", "share", "inventorly")

	v.SetDefault("database.driver", DriverMemory)
	v.SetDefault("database.path", filepath.Join(dataDir, "inventorly.db"))
	v.SetDefault("auth.resend_seconds", 60)
	v.SetDefault("auth.loading_delay", 2500*time.Millisecond)
	v.SetDefault("auth.network_latency", 800*time.Millisecond)
	v.SetDefault("auth.accept_any_code", true)
	v.SetDefault("auth.code_ttl", 10*time.Minute)
	v.SetDefault("auth.send_retries", 3)
	v.SetDefault("import.parse_delay", 2*time.Second)
	v.SetDefault("import.template_path", "inventorly-template.csv")
	v.SetDefault("reports.export_dir", filepath.Join(dataDir, "reports"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("ui.currency_symbol", "$")
	v.SetDefault("ui.date_format", "Jan 2, 2006")
}
