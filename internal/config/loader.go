package config

import (
	"context"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/turtacn/securepay/pkg/constants"
	"github.com/turtacn/securepay/pkg/errors"
	"github.com/turtacn/securepay/pkg/logger"
)

// EnvPrefix is the prefix of environment variable overrides, e.g. SECUREPAY_SERVER_PORT.
const EnvPrefix = "SECUREPAY"

// Loader reads configuration from a file, environment variables and defaults,
// and can watch the file for changes.
type Loader struct {
	v      *viper.Viper
	log    logger.Logger
	mu     sync.Mutex
	loaded *Config
}

// NewLoader creates a loader. An empty configPath searches /etc/securepay/ and
// the working directory for config.yaml.
func NewLoader(configPath string, log logger.Logger) *Loader {
	if log == nil {
		log = logger.NewNoopLogger()
	}
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("/etc/securepay/")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Loader{v: v, log: log.WithComponent("config")}
}

// LoadConfig loads the configuration from file, environment variables, and defaults.
func LoadConfig(configPath string, log logger.Logger) (*Config, error) {
	return NewLoader(configPath, log).Load()
}

// Load reads and validates the configuration.
func (l *Loader) Load() (*Config, error) {
	if err := l.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.WrapError(err, constants.ErrCodeInternal, "failed to read config file")
		}
		l.log.Info(context.Background(), "No config file found, using defaults and environment")
	}

	cfg, err := l.decode()
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.loaded = cfg
	l.mu.Unlock()
	return cfg, nil
}

// Watch re-reads the config file whenever it changes and passes the new,
// validated configuration to onChange. Invalid revisions are logged and skipped.
func (l *Loader) Watch(onChange func(*Config)) {
	l.v.OnConfigChange(func(e fsnotify.Event) {
		ctx := context.Background()
		cfg, err := l.decode()
		if err != nil {
			l.log.Warn(ctx, "Ignoring invalid config change", logger.String("file", e.Name), logger.Err(err))
			return
		}

		l.mu.Lock()
		l.loaded = cfg
		l.mu.Unlock()

		l.log.Info(ctx, "Config reloaded", logger.String("file", e.Name), logger.String("op", e.Op.String()))
		if onChange != nil {
			onChange(cfg)
		}
	})
	l.v.WatchConfig()
}

// Current returns the most recently loaded configuration.
func (l *Loader) Current() *Config {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loaded
}

func (l *Loader) decode() (*Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, errors.WrapError(err, constants.ErrCodeInternal, "failed to unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.WrapError(err, constants.ErrCodeInternal, "invalid config")
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", constants.DefaultHTTPPort)
	v.SetDefault("server.grpc_port", constants.DefaultGRPCPort)
	v.SetDefault("server.read_timeout", constants.DefaultReadTimeout)
	v.SetDefault("server.write_timeout", constants.DefaultWriteTimeout)
	v.SetDefault("server.shutdown_timeout", constants.DefaultShutdownTimeout)
	v.SetDefault("server.environment", constants.EnvDevelopment)
	v.SetDefault("server.cors_origins", []string{"*"})

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addresses", []string{"localhost:6379"})
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 2)
	v.SetDefault("redis.dial_timeout", "5s")

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", constants.DefaultCacheTTL)
	v.SetDefault("cache.cleanup_interval", constants.DefaultCacheCleanupInterval)
	v.SetDefault("cache.remote_ttl", constants.DefaultRemoteCacheTTL)

	v.SetDefault("audit.enabled", false)
	v.SetDefault("audit.brokers", []string{})
	v.SetDefault("audit.topic", "securepay.assessments")
	v.SetDefault("audit.batch_size", 100)
	v.SetDefault("audit.batch_timeout", "1s")
	v.SetDefault("audit.signing_key", "")

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_min", constants.DefaultRateLimitPerMinute)
	v.SetDefault("rate_limit.burst_size", constants.DefaultRateLimitBurst)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.output_path", "stdout")

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.jaeger_endpoint", "http://localhost:14268/api/traces")
	v.SetDefault("tracing.service_name", constants.ServiceName)
	v.SetDefault("tracing.environment", constants.EnvDevelopment)
	v.SetDefault("tracing.sampling_rate", 1.0)
}
