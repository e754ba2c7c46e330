// Package config loads the application configuration from flags, environment,
// and an optional config file, in that precedence order.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Database   DatabaseConfig   `yaml:"database" mapstructure:"database"`
	Processing ProcessingConfig `yaml:"processing" mapstructure:"processing"`
	XML        XMLConfig        `yaml:"xml" mapstructure:"xml"`
	Storage    StorageConfig    `yaml:"storage" mapstructure:"storage"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// DatabaseConfig configures the persistence gateway.
type DatabaseConfig struct {
	Driver string `yaml:"driver" mapstructure:"driver"`
	URL    string `yaml:"url" mapstructure:"url"`
}

// ProcessingConfig configures the streaming pipeline.
type ProcessingConfig struct {
	BatchSize               int     `yaml:"batch_size" mapstructure:"batch_size"`
	MaxFileSizeGB           float64 `yaml:"max_file_size_gb" mapstructure:"max_file_size_gb"`
	MemoryCeilingMB         int     `yaml:"memory_ceiling_mb" mapstructure:"memory_ceiling_mb"`
	MemoryCheckIntervalSecs int     `yaml:"memory_check_interval_secs" mapstructure:"memory_check_interval_secs"`
	GCIntervalRecords       int     `yaml:"gc_interval_records" mapstructure:"gc_interval_records"`
	ProgressIntervalRecords int     `yaml:"progress_interval_records" mapstructure:"progress_interval_records"`
	ChildIsolation          bool    `yaml:"child_isolation" mapstructure:"child_isolation"`
	Validate                bool    `yaml:"validate" mapstructure:"validate"`
}

// XMLConfig configures feed retrieval and parsing.
type XMLConfig struct {
	RetryAttempts   int    `yaml:"retry_attempts" mapstructure:"retry_attempts"`
	RetryDelaySecs  int    `yaml:"retry_delay_secs" mapstructure:"retry_delay_secs"`
	UserAgent       string `yaml:"user_agent" mapstructure:"user_agent"`
	MaxElementDepth int    `yaml:"max_element_depth" mapstructure:"max_element_depth"`
}

// StorageConfig configures local working directories.
type StorageConfig struct {
	DownloadDir string `yaml:"download_dir" mapstructure:"download_dir"`
	ExtractDir  string `yaml:"extract_dir" mapstructure:"extract_dir"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// New returns a viper instance carrying the built-in defaults, environment
// binding, and optional config file. Callers bind command flags on top.
func New() *viper.Viper {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("WATCHLIST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.url", "")
	v.SetDefault("processing.batch_size", 500)
	v.SetDefault("processing.max_file_size_gb", 10)
	v.SetDefault("processing.memory_ceiling_mb", 2048)
	v.SetDefault("processing.memory_check_interval_secs", 30)
	v.SetDefault("processing.gc_interval_records", 10000)
	v.SetDefault("processing.progress_interval_records", 5000)
	v.SetDefault("processing.child_isolation", false)
	v.SetDefault("processing.validate", true)
	v.SetDefault("xml.retry_attempts", 3)
	v.SetDefault("xml.retry_delay_secs", 5)
	v.SetDefault("xml.user_agent", "watchlist-cli/1.0")
	v.SetDefault("xml.max_element_depth", 32)
	v.SetDefault("storage.download_dir", "/tmp/watchlist/download")
	v.SetDefault("storage.extract_dir", "/tmp/watchlist/extract")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	return v
}

// Load reads configuration from the given viper instance into a Config.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
