package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	NATS      NATSConfig      `mapstructure:"nats"`
	Valkey    ValkeyConfig    `mapstructure:"valkey"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Overpass  OverpassConfig  `mapstructure:"overpass"`
	Nominatim NominatimConfig `mapstructure:"nominatim"`
	GeoNames  GeoNamesConfig  `mapstructure:"geonames"`
	Analysis  AnalysisConfig  `mapstructure:"analysis"`
	Temporal  TemporalConfig  `mapstructure:"temporal"`
}

type ServerConfig struct {
	Port         int `mapstructure:"port"`
	ReadTimeout  int `mapstructure:"read_timeout"`
	WriteTimeout int `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type NATSConfig struct {
	URL string `mapstructure:"url"`
}

type ValkeyConfig struct {
	Addr string `mapstructure:"addr"`
}

type TelemetryConfig struct {
	ServiceName string `mapstructure:"service_name"`
	OTLPAddr    string `mapstructure:"otlp_addr"`
	Enabled     bool   `mapstructure:"enabled"`
}

type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

type OverpassConfig struct {
	URL         string `mapstructure:"url"`
	UserAgent   string `mapstructure:"user_agent"`
	MaxAttempts int    `mapstructure:"max_attempts"`
}

type NominatimConfig struct {
	URL string `mapstructure:"url"`
}

type GeoNamesConfig struct {
	URL      string `mapstructure:"url"`
	Username string `mapstructure:"username"`
}

// AnalysisConfig tunes shoreline analysis around a query point.
type AnalysisConfig struct {
	RadiusM         float64 `mapstructure:"radius_m"`
	ExpandedRadiusM float64 `mapstructure:"expanded_radius_m"`
	FeatureRadiusM  float64 `mapstructure:"feature_radius_m"`
	CacheTTLSeconds int     `mapstructure:"cache_ttl_seconds"`
}

type TemporalConfig struct {
	HostPort     string `mapstructure:"host_port"`
	Namespace    string `mapstructure:"namespace"`
	TaskQueue    string `mapstructure:"task_queue"`
	ForecastDays int    `mapstructure:"forecast_days"`
}

// Load reads configuration from file and environment variables.
func Load(service string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "sundowner")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "sundowner")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("valkey.addr", "localhost:6379")
	v.SetDefault("telemetry.service_name", service)
	v.SetDefault("telemetry.otlp_addr", "tempo:4317")
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.file", "")
	v.SetDefault("overpass.url", "https://overpass-api.de/api/interpreter")
	v.SetDefault("overpass.user_agent", "SunsetVisibilityCalculator/1.0")
	v.SetDefault("overpass.max_attempts", 5)
	v.SetDefault("nominatim.url", "https://nominatim.openstreetmap.org/search")
	v.SetDefault("geonames.url", "http://api.geonames.org/timezoneJSON")
	v.SetDefault("geonames.username", "demo")
	v.SetDefault("analysis.radius_m", 2000)
	v.SetDefault("analysis.expanded_radius_m", 5000)
	v.SetDefault("analysis.feature_radius_m", 5000)
	v.SetDefault("analysis.cache_ttl_seconds", 86400)
	v.SetDefault("temporal.host_port", "localhost:7233")
	v.SetDefault("temporal.namespace", "default")
	v.SetDefault("temporal.task_queue", "sunset-forecast")
	v.SetDefault("temporal.forecast_days", 7)

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing

	// Environment variables: SUNDOWNER_GEONAMES_USERNAME → geonames.username
	v.SetEnvPrefix("SUNDOWNER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}
	if c.Database.Host == "" {
		errs = append(errs, "database.host is required")
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", c.Database.Port))
	}
	if c.Database.User == "" {
		errs = append(errs, "database.user is required")
	}
	if c.Database.DBName == "" {
		errs = append(errs, "database.dbname is required")
	}
	if c.NATS.URL == "" {
		errs = append(errs, "nats.url is required")
	}
	if c.Valkey.Addr == "" {
		errs = append(errs, "valkey.addr is required")
	}
	if c.Overpass.URL == "" {
		errs = append(errs, "overpass.url is required")
	}
	if c.Overpass.MaxAttempts < 1 {
		errs = append(errs, "overpass.max_attempts must be at least 1")
	}
	if c.Nominatim.URL == "" {
		errs = append(errs, "nominatim.url is required")
	}
	if c.GeoNames.URL == "" {
		errs = append(errs, "geonames.url is required")
	}
	if c.Analysis.RadiusM <= 0 {
		errs = append(errs, "analysis.radius_m must be positive")
	}
	if c.Analysis.ExpandedRadiusM < c.Analysis.RadiusM {
		errs = append(errs, "analysis.expanded_radius_m must not be smaller than analysis.radius_m")
	}
	if c.Analysis.FeatureRadiusM <= 0 {
		errs = append(errs, "analysis.feature_radius_m must be positive")
	}
	if c.Temporal.ForecastDays < 1 || c.Temporal.ForecastDays > 31 {
		errs = append(errs, fmt.Sprintf("temporal.forecast_days must be 1-31, got %d", c.Temporal.ForecastDays))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
