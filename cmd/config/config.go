package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Media    MediaConfig    `mapstructure:"media"`
	AWS      AWSConfig      `mapstructure:"aws"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type AuthConfig struct {
	JWTSecret     string        `mapstructure:"jwt_secret"`
	TokenTTL      time.Duration `mapstructure:"token_ttl"`
	SessionSecret string        `mapstructure:"session_secret"`
	SessionName   string        `mapstructure:"session_name"`
}

type MediaConfig struct {
	Backend   string `mapstructure:"backend"`
	Dir       string `mapstructure:"dir"`
	URLPrefix string `mapstructure:"url_prefix"`
}

type AWSConfig struct {
	Region   string `mapstructure:"region"`
	S3Bucket string `mapstructure:"s3_bucket"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	AccessFile string `mapstructure:"access_file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// Load reads config.yaml from the given directories (cmd/config/ when none
// are given). A missing file is not an error; defaults and VIDEO_* variables
// still apply. A .env file in the working directory is loaded first.
func Load(paths ...string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"cmd/config/"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	setDefaults(v)
	v.SetEnvPrefix("video")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("database.driver", "sqlite3")
	v.SetDefault("database.dsn", "video.db")
	v.SetDefault("auth.jwt_secret", "change-me")
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("auth.session_secret", "change-me-too")
	v.SetDefault("auth.session_name", "video-session")
	v.SetDefault("media.backend", "fs")
	v.SetDefault("media.dir", "uploads")
	v.SetDefault("media.url_prefix", "/uploads")
	v.SetDefault("aws.region", "us-east-1")
	v.SetDefault("aws.s3_bucket", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.access_file", "")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 5)
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "sqlite3", "mysql", "postgres":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	switch c.Media.Backend {
	case "fs":
	case "s3":
		if c.AWS.S3Bucket == "" {
			return errors.New("aws.s3_bucket is required for the s3 media backend")
		}
	default:
		return fmt.Errorf("unsupported media backend %q", c.Media.Backend)
	}
	return nil
}
