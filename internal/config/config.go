package config

import (
	"fmt"
	"time"

	"github.com/turtacn/securepay/pkg/constants"
)

// Config holds the application's configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Audit     AuditConfig     `mapstructure:"audit"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Log       LogConfig       `mapstructure:"log"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	GRPCPort        int           `mapstructure:"grpc_port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Environment     string        `mapstructure:"environment"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
}

// HTTPAddr returns the listen address of the HTTP server.
func (c *ServerConfig) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// GRPCAddr returns the listen address of the gRPC server.
func (c *ServerConfig) GRPCAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.GRPCPort)
}

// IsProduction reports whether the server runs in the production environment.
func (c *ServerConfig) IsProduction() bool {
	return c.Environment == constants.EnvProduction
}

type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Addresses    []string      `mapstructure:"addresses"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
}

type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	RemoteTTL       time.Duration `mapstructure:"remote_ttl"`
}

type AuditConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Brokers      []string      `mapstructure:"brokers"`
	Topic        string        `mapstructure:"topic"`
	BatchSize    int           `mapstructure:"batch_size"`
	BatchTimeout time.Duration `mapstructure:"batch_timeout"`
	SigningKey   string        `mapstructure:"signing_key"`
}

type RateLimitConfig struct {
	Enabled        bool `mapstructure:"enabled"`
	RequestsPerMin int  `mapstructure:"requests_per_min"`
	BurstSize      int  `mapstructure:"burst_size"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
}

type TracingConfig struct {
	Enabled        bool    `mapstructure:"enabled"`
	JaegerEndpoint string  `mapstructure:"jaeger_endpoint"`
	ServiceName    string  `mapstructure:"service_name"`
	Environment    string  `mapstructure:"environment"`
	SamplingRate   float64 `mapstructure:"sampling_rate"`
}

// Validate checks for essential configuration values.
func (c *Config) Validate() error {
	if err := validatePort("server.port", c.Server.Port); err != nil {
		return err
	}
	if err := validatePort("server.grpc_port", c.Server.GRPCPort); err != nil {
		return err
	}
	if c.Server.Port == c.Server.GRPCPort {
		return fmt.Errorf("server.port and server.grpc_port must differ, both are %d", c.Server.Port)
	}
	if _, ok := constants.ParseLogLevel(c.Log.Level); !ok {
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error, fatal", c.Log.Level)
	}
	if c.Redis.Enabled && len(c.Redis.Addresses) == 0 {
		return fmt.Errorf("redis.addresses must not be empty when redis is enabled")
	}
	if c.Audit.Enabled {
		if len(c.Audit.Brokers) == 0 {
			return fmt.Errorf("audit.brokers must not be empty when audit is enabled")
		}
		if c.Audit.Topic == "" {
			return fmt.Errorf("audit.topic must be set when audit is enabled")
		}
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerMin <= 0 || c.RateLimit.BurstSize <= 0) {
		return fmt.Errorf("rate_limit.requests_per_min and rate_limit.burst_size must be positive")
	}
	if c.Tracing.SamplingRate < 0 || c.Tracing.SamplingRate > 1 {
		return fmt.Errorf("tracing.sampling_rate must be within [0, 1], got %v", c.Tracing.SamplingRate)
	}
	return nil
}

func validatePort(name string, port int) error {
	if port <= 0 || port > 65535 {
		return fmt.Errorf("%s must be within 1-65535, got %d", name, port)
	}
	return nil
}
