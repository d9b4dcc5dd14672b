package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"swipetree/internal/gesture"
	"swipetree/pkg/lineage"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdownTimeout"`
	AllowedOrigin   string        `mapstructure:"allowedOrigin"`
}

// Gesture exposes the classifier tunables.
type Gesture struct {
	LongPressMs      int     `mapstructure:"longPressMs"`
	JitterPx         float64 `mapstructure:"jitterPx"`
	SwipeThresholdPx float64 `mapstructure:"swipeThresholdPx"`
}

// Lineage configures relationship resolution.
type Lineage struct {
	MaxFanOut     int    `mapstructure:"maxFanOut"`
	OverridesFile string `mapstructure:"overridesFile"`
}

// Images lists the image bases tried in order.
type Images struct {
	Base        string        `mapstructure:"base"`
	Fallback    string        `mapstructure:"fallback"`
	Placeholder string        `mapstructure:"placeholder"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// Labels selects and configures the label store.
type Labels struct {
	Store string `mapstructure:"store"` // memory, redis or postgres
}

// RedisConfig configures the shared Redis client.
type RedisConfig struct {
	URL          string        `mapstructure:"url"`
	PoolSize     int           `mapstructure:"poolSize"`
	MinIdleConns int           `mapstructure:"minIdleConns"`
	DialTimeout  time.Duration `mapstructure:"dialTimeout"`
	ReadTimeout  time.Duration `mapstructure:"readTimeout"`
	WriteTimeout time.Duration `mapstructure:"writeTimeout"`
}

// PostgresConfig configures the PostgreSQL pool.
type PostgresConfig struct {
	URL          string `mapstructure:"url"`
	MaxOpenConns int    `mapstructure:"maxOpenConns"`
	MaxIdleConns int    `mapstructure:"maxIdleConns"`
}

// Logging selects the slog handler.
type Logging struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or text
}

// Config is the full service configuration.
type Config struct {
	Server   Server         `mapstructure:"server"`
	Gesture  Gesture        `mapstructure:"gesture"`
	Lineage  Lineage        `mapstructure:"lineage"`
	Images   Images         `mapstructure:"images"`
	Labels   Labels         `mapstructure:"labels"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	Logging  Logging        `mapstructure:"logging"`
}

const envPrefix = "SWIPETREE"

var ErrInvalid = errors.New("invalid configuration")

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdownTimeout", 10*time.Second)
	v.SetDefault("server.allowedOrigin", "*")

	def := gesture.DefaultConfig()
	v.SetDefault("gesture.longPressMs", int(def.LongPress/time.Millisecond))
	v.SetDefault("gesture.jitterPx", def.JitterPx)
	v.SetDefault("gesture.swipeThresholdPx", def.SwipeThresholdPx)

	v.SetDefault("lineage.maxFanOut", lineage.DefaultMaxFanOut)
	v.SetDefault("lineage.overridesFile", "")

	v.SetDefault("images.base", "https://cdn.jsdelivr.net/gh/allofusbhere/family-tree-images@main")
	v.SetDefault("images.fallback", "https://raw.githubusercontent.com/allofusbhere/family-tree-images/refs/heads/main")
	v.SetDefault("images.placeholder", "placeholder.jpg")
	v.SetDefault("images.timeout", 3*time.Second)

	v.SetDefault("labels.store", "memory")

	v.SetDefault("redis.url", "")
	v.SetDefault("redis.poolSize", 10)
	v.SetDefault("redis.minIdleConns", 2)
	v.SetDefault("redis.dialTimeout", 5*time.Second)
	v.SetDefault("redis.readTimeout", 3*time.Second)
	v.SetDefault("redis.writeTimeout", 3*time.Second)

	v.SetDefault("postgres.url", "")
	v.SetDefault("postgres.maxOpenConns", 10)
	v.SetDefault("postgres.maxIdleConns", 5)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// Load reads configuration from defaults, an optional file and SWIPETREE_*
// environment variables (SWIPETREE_SERVER_ADDR, SWIPETREE_LABELS_STORE, ...).
// An empty path looks for swipetree.{yaml,json,toml} in the working
// directory; a missing file is not an error.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("swipetree")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// GestureConfig converts the tunables into classifier configuration.
func (c Config) GestureConfig() gesture.Config {
	return gesture.Config{
		LongPress:        time.Duration(c.Gesture.LongPressMs) * time.Millisecond,
		JitterPx:         c.Gesture.JitterPx,
		SwipeThresholdPx: c.Gesture.SwipeThresholdPx,
	}
}

// ImageBases returns the configured image bases in priority order.
func (c Config) ImageBases() []string {
	var bases []string
	for _, b := range []string{c.Images.Base, c.Images.Fallback} {
		if b = strings.TrimSpace(b); b != "" {
			bases = append(bases, b)
		}
	}
	return bases
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	if err := c.GestureConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Lineage.MaxFanOut < 1 || c.Lineage.MaxFanOut > lineage.DefaultMaxFanOut {
		return fmt.Errorf("%w: lineage.maxFanOut must be within 1..%d", ErrInvalid, lineage.DefaultMaxFanOut)
	}
	switch c.Labels.Store {
	case "memory":
	case "redis":
		if c.Redis.URL == "" {
			return fmt.Errorf("%w: labels.store=redis requires redis.url", ErrInvalid)
		}
	case "postgres":
		if c.Postgres.URL == "" {
			return fmt.Errorf("%w: labels.store=postgres requires postgres.url", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown labels.store %q", ErrInvalid, c.Labels.Store)
	}
	return nil
}
