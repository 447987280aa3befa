package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string `mapstructure:"PORT"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	FrontendURL string `mapstructure:"FRONTEND_URL"`

	// Session lifetime. Zero means sessions never expire and live until
	// logout or account deletion.
	SessionTTL time.Duration `mapstructure:"SESSION_TTL"`

	// Redis (optional; rate limiting and counters degrade when absent)
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`

	// Attachment blob storage. "disk" (default) or "s3".
	BlobBackend string `mapstructure:"BLOB_BACKEND"`
	BlobDir     string `mapstructure:"BLOB_DIR"`

	// S3 / R2
	S3AccountID       string `mapstructure:"S3_ACCOUNT_ID"`
	S3AccessKeyID     string `mapstructure:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `mapstructure:"S3_SECRET_ACCESS_KEY"`
	S3BucketName      string `mapstructure:"S3_BUCKET_NAME"`
}

var AppConfig *Config

func LoadConfig() {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	viper.SetDefault("BLOB_BACKEND", "disk")
	viper.SetDefault("BLOB_DIR", "./data/files")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Unable to decode config: %v", err)
	}
}
