package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage drivers accepted by storage.driver.
const (
	StorageDriverMemory = "memory"
	StorageDriverMongo  = "mongo"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Database   DatabaseConfig   `mapstructure:"database"`
	S3         S3Config         `mapstructure:"s3"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	Log        LogConfig        `mapstructure:"log"`
	Assignment AssignmentConfig `mapstructure:"assignment"`
	Drafts     DraftsConfig     `mapstructure:"drafts"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// StorageConfig selects the repository backend.
type StorageConfig struct {
	Driver string `mapstructure:"driver"` // memory or mongo
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// Enabled reports whether object storage is configured at all.
func (c S3Config) Enabled() bool {
	return c.BucketName != ""
}

// JWTConfig defines JWT specific configuration
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	JSON   bool   `mapstructure:"json"`
	File   string `mapstructure:"file"` // empty: stdout only
	Stdout bool   `mapstructure:"stdout"`
}

type AssignmentConfig struct {
	SimulatedLatency time.Duration `mapstructure:"simulated_latency"`
}

// MinDraftCacheSizeMB is the smallest draft cache that still holds a fully
// scheduled 52-week draft; freecache caps each entry at 1/1024 of its size.
const MinDraftCacheSizeMB = 128

// DraftsConfig bounds the in-progress plan wizard cache.
type DraftsConfig struct {
	TTL         time.Duration `mapstructure:"ttl"`
	CacheSizeMB int           `mapstructure:"cache_size_mb"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// server.address -> SERVER_ADDRESS, jwt.expiration -> JWT_EXPIRATION
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	v.SetDefault("server.address", ":8080")
	v.SetDefault("storage.driver", StorageDriverMemory)
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "coach_platform")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("s3.bucket_name", "")
	v.SetDefault("s3.use_ssl", true)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiration", "1h")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.file", "")
	v.SetDefault("log.stdout", true)
	v.SetDefault("assignment.simulated_latency", "1.5s")
	v.SetDefault("drafts.ttl", "24h")
	v.SetDefault("drafts.cache_size_mb", MinDraftCacheSizeMB)

	// A missing config file is fine; defaults and env vars still apply.
	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return
		}
		err = nil
	}

	// durations such as "1h" or "1.5s" decode straight into time.Duration
	if err = v.Unmarshal(&config); err != nil {
		return
	}
	if err = config.Validate(); err != nil {
		return
	}
	return config, nil
}

// Validate rejects configurations the server cannot start with.
func (c Config) Validate() error {
	switch c.Storage.Driver {
	case StorageDriverMemory, StorageDriverMongo:
	default:
		return errors.New("storage.driver must be memory or mongo")
	}
	if c.JWT.Secret == "" {
		return errors.New("jwt.secret is required")
	}
	if c.JWT.Expiration <= 0 {
		return errors.New("jwt.expiration must be positive")
	}
	if c.Assignment.SimulatedLatency < 0 {
		return errors.New("assignment.simulated_latency cannot be negative")
	}
	if c.Drafts.CacheSizeMB < MinDraftCacheSizeMB {
		return fmt.Errorf("drafts.cache_size_mb must be at least %d", MinDraftCacheSizeMB)
	}
	return nil
}
