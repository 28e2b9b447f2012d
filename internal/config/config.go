package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Config is the full node configuration.
type Config struct {
	Chain    ChainConfig    `mapstructure:"chain" yaml:"chain"`
	API      APIConfig      `mapstructure:"api" yaml:"api"`
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Redis    RedisConfig    `mapstructure:"redis" yaml:"redis"`
	Tracing  TracingConfig  `mapstructure:"tracing" yaml:"tracing"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
}

// ChainConfig identifies the chain and its genesis.
type ChainConfig struct {
	ChainID     string `mapstructure:"chain_id" yaml:"chain_id"`
	GenesisFile string `mapstructure:"genesis_file" yaml:"genesis_file"`
}

// APIConfig holds the HTTP server configuration.
type APIConfig struct {
	Host            string        `mapstructure:"host" yaml:"host"`
	Port            int           `mapstructure:"port" yaml:"port"`
	JWTSecret       string        `mapstructure:"jwt_secret" yaml:"jwt_secret"`
	CORSOrigins     []string      `mapstructure:"cors_origins" yaml:"cors_origins"`
	RateLimitRPS    int           `mapstructure:"rate_limit_rps" yaml:"rate_limit_rps"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// ListenAddr returns the host:port the API binds to.
func (c APIConfig) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DatabaseConfig holds the PostgreSQL event sink configuration. The sink
// is optional; an empty URL disables it.
type DatabaseConfig struct {
	URL             string        `mapstructure:"url" yaml:"url"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" yaml:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" yaml:"conn_max_lifetime"`
}

// Enabled reports whether the event sink should run.
func (c DatabaseConfig) Enabled() bool { return c.URL != "" }

// RedisConfig holds the price cache configuration. The cache is optional;
// an empty address disables it.
type RedisConfig struct {
	Address  string        `mapstructure:"address" yaml:"address"`
	Password string        `mapstructure:"password" yaml:"password"`
	DB       int           `mapstructure:"db" yaml:"db"`
	TTL      time.Duration `mapstructure:"ttl" yaml:"ttl"`
}

// Enabled reports whether the price cache should run.
func (c RedisConfig) Enabled() bool { return c.Address != "" }

// TracingConfig holds OpenTelemetry tracing configuration. Tracing is
// optional; an empty endpoint disables it.
type TracingConfig struct {
	OTLPEndpoint string  `mapstructure:"otlp_endpoint" yaml:"otlp_endpoint"`
	SampleRate   float64 `mapstructure:"sample_rate" yaml:"sample_rate"`
	Environment  string  `mapstructure:"environment" yaml:"environment"`
}

// Enabled reports whether spans should be exported.
func (c TracingConfig) Enabled() bool { return c.OTLPEndpoint != "" }

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Chain: ChainConfig{
			ChainID:     "thryx-1",
			GenesisFile: "genesis.json",
		},
		API: APIConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			CORSOrigins:     []string{"http://localhost:3000"},
			RateLimitRPS:    100,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Redis: RedisConfig{
			TTL: 30 * time.Second,
		},
		Tracing: TracingConfig{
			SampleRate:  0.1,
			Environment: "development",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads the configuration file at path, layering it over the defaults
// and THRYX_* environment variables. An empty path loads defaults only.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix("THRYX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	// Durations set through environment variables arrive as strings.
	cfg.API.ReadTimeout = cast.ToDuration(v.Get("api.read_timeout"))
	cfg.API.WriteTimeout = cast.ToDuration(v.Get("api.write_timeout"))
	cfg.API.ShutdownTimeout = cast.ToDuration(v.Get("api.shutdown_timeout"))
	cfg.Database.ConnMaxLifetime = cast.ToDuration(v.Get("database.conn_max_lifetime"))
	cfg.Redis.TTL = cast.ToDuration(v.Get("redis.ttl"))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("chain.chain_id", cfg.Chain.ChainID)
	v.SetDefault("chain.genesis_file", cfg.Chain.GenesisFile)
	v.SetDefault("api.host", cfg.API.Host)
	v.SetDefault("api.port", cfg.API.Port)
	v.SetDefault("api.jwt_secret", cfg.API.JWTSecret)
	v.SetDefault("api.cors_origins", cfg.API.CORSOrigins)
	v.SetDefault("api.rate_limit_rps", cfg.API.RateLimitRPS)
	v.SetDefault("api.read_timeout", cfg.API.ReadTimeout)
	v.SetDefault("api.write_timeout", cfg.API.WriteTimeout)
	v.SetDefault("api.shutdown_timeout", cfg.API.ShutdownTimeout)
	v.SetDefault("database.url", cfg.Database.URL)
	v.SetDefault("database.max_open_conns", cfg.Database.MaxOpenConns)
	v.SetDefault("database.max_idle_conns", cfg.Database.MaxIdleConns)
	v.SetDefault("database.conn_max_lifetime", cfg.Database.ConnMaxLifetime)
	v.SetDefault("redis.address", cfg.Redis.Address)
	v.SetDefault("redis.password", cfg.Redis.Password)
	v.SetDefault("redis.db", cfg.Redis.DB)
	v.SetDefault("redis.ttl", cfg.Redis.TTL)
	v.SetDefault("tracing.otlp_endpoint", cfg.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", cfg.Tracing.SampleRate)
	v.SetDefault("tracing.environment", cfg.Tracing.Environment)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
}

// Validate checks configuration sanity.
func (c Config) Validate() error {
	if c.Chain.ChainID == "" {
		return fmt.Errorf("chain id cannot be empty")
	}
	if c.API.Port <= 0 || c.API.Port > 65535 {
		return fmt.Errorf("api port out of range: %d", c.API.Port)
	}
	if c.API.RateLimitRPS <= 0 {
		return fmt.Errorf("rate limit must be positive: %d", c.API.RateLimitRPS)
	}
	if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1 {
		return fmt.Errorf("tracing sample rate out of range: %f", c.Tracing.SampleRate)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	return nil
}
