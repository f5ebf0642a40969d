package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the dashboard server.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	S3         S3Config         `mapstructure:"s3"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	RemoteAPI  RemoteAPIConfig  `mapstructure:"remote_api"`
	Submission SubmissionConfig `mapstructure:"submission"`
	Media      MediaConfig      `mapstructure:"media"`
	Log        LogConfig        `mapstructure:"log"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
	Mode    string `mapstructure:"mode"` // gin mode: debug, release, test
}

type DatabaseConfig struct {
	URI            string        `mapstructure:"uri"`
	Name           string        `mapstructure:"name"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

// S3Config points at the media bucket. Without credentials media URLs are
// built from BucketURL instead of presigned.
type S3Config struct {
	BucketURL       string        `mapstructure:"bucket_url"`
	Endpoint        string        `mapstructure:"endpoint"`
	Region          string        `mapstructure:"region"`
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	BucketName      string        `mapstructure:"bucket_name"`
	PresignExpiry   time.Duration `mapstructure:"presign_expiry"`
}

// JWTConfig covers the dashboard session token issued to the browser.
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

type RemoteAPIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	// Timeout of zero disables the client timeout.
	Timeout     time.Duration `mapstructure:"timeout"`
	TypeDialect string        `mapstructure:"type_dialect"` // ondemand or on_demand
}

type SubmissionConfig struct {
	PlanExerciseTypeRequired bool `mapstructure:"plan_exercise_type_required"`
}

type MediaConfig struct {
	FFProbePath    string `mapstructure:"ffprobe_path"`
	MaxUploadBytes int64  `mapstructure:"max_upload_bytes"`
}

type LogConfig struct {
	Mode string `mapstructure:"mode"` // development or production
}

var (
	ErrMissingJWTSecret = errors.New("jwt.secret is required")
	ErrMissingRemoteAPI = errors.New("remote_api.base_url is required")
)

// LoadConfig reads configuration from path/config.yaml and the environment.
// Nested keys map to env vars with "." replaced by "_", e.g. JWT_SECRET.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	// AutomaticEnv only covers keys viper knows about, so every key gets a default.
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "dancer_admin_dashboard")
	v.SetDefault("database.connect_timeout", "10s")
	v.SetDefault("s3.bucket_url", "https://dancer-fitness-bucket.s3.us-east-2.amazonaws.com")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.region", "us-east-2")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("s3.bucket_name", "dancer-fitness-bucket")
	v.SetDefault("s3.presign_expiry", "15m")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiration", "12h")
	v.SetDefault("remote_api.base_url", "")
	v.SetDefault("remote_api.timeout", "0s")
	v.SetDefault("remote_api.type_dialect", "ondemand")
	v.SetDefault("submission.plan_exercise_type_required", false)
	v.SetDefault("media.ffprobe_path", "ffprobe")
	v.SetDefault("media.max_upload_bytes", int64(512<<20))
	v.SetDefault("log.mode", "development")

	err = v.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = nil
	} else if err != nil {
		return
	}

	if err = v.Unmarshal(&config); err != nil {
		return
	}
	return config, nil
}

// Validate checks the settings the server can't start without.
func (c Config) Validate() error {
	if c.JWT.Secret == "" {
		return ErrMissingJWTSecret
	}
	if c.RemoteAPI.BaseURL == "" {
		return ErrMissingRemoteAPI
	}
	return nil
}
