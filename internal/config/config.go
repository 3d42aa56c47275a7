package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Storage  StorageConfig  `mapstructure:"storage"`
	S3       S3Config       `mapstructure:"s3"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Resume   ResumeConfig   `mapstructure:"resume"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

// StorageConfig selects the blob storage backend. "local" keeps resume
// PDFs on the node's filesystem; "s3" targets any S3-compatible endpoint
// configured under S3Config.
type StorageConfig struct {
	Driver    string `mapstructure:"driver"`
	LocalPath string `mapstructure:"local_path"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// JWTConfig defines JWT specific configuration. Expiration must be a
// duration string ("168h") so viper can unmarshal it directly into
// time.Duration.
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

// ResumeConfig is the upload policy injected into the resume service.
type ResumeConfig struct {
	MaxCount     int   `mapstructure:"max_count"`
	MaxSizeBytes int64 `mapstructure:"max_size_bytes"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Environment overrides: storage.local_path -> STORAGE_LOCAL_PATH etc.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("database.uri", "mongodb://localhost:27017")
	viper.SetDefault("database.name", "campus_placement")
	viper.SetDefault("storage.driver", "local")
	viper.SetDefault("storage.local_path", "uploads/resumes")
	viper.SetDefault("s3.use_ssl", true)
	viper.SetDefault("jwt.expiration", "168h") // 7 day sessions
	viper.SetDefault("resume.max_count", 3)
	viper.SetDefault("resume.max_size_bytes", 7864320) // 7.5 MB

	err = viper.ReadInConfig()
	// Missing config file is fine; env vars and defaults still apply.
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = nil
	} else if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	return config, nil
}
