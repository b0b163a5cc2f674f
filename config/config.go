package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const (
	DefaultRedisAddress = "localhost:6379"
	DefaultNamespace    = "ambient"
	DefaultPort         = "4040"
	DefaultLogLevel     = "info"
)

// Config is the daemon configuration, read from AMBIENT_-prefixed environment
// variables with an optional ambient.yaml next to the working directory.
type Config struct {
	// PackagePath is the directory holding the root package manifest.
	PackagePath string `mapstructure:"package_path"`

	RedisAddress  string `mapstructure:"redis_address"`
	RedisPassword string `mapstructure:"redis_password"`
	Namespace     string `mapstructure:"namespace"`

	Port     string `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("AMBIENT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("package_path", ".")
	v.SetDefault("redis_address", DefaultRedisAddress)
	v.SetDefault("redis_password", "")
	v.SetDefault("namespace", DefaultNamespace)
	v.SetDefault("port", DefaultPort)
	v.SetDefault("log_level", DefaultLogLevel)

	v.SetConfigName("ambient")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !eris.As(err, &notFound) {
			return nil, eris.Wrap(err, "failed to read config file")
		}
	}

	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, eris.Wrap(err, "failed to unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return eris.Wrapf(err, "invalid log level %q", c.LogLevel)
	}
	if c.Namespace == "" {
		return eris.New("namespace must not be empty")
	}
	return nil
}
