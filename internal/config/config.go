/**
 * @description
 * This package handles the configuration management for the service. It uses
 * the Viper library to read configuration from environment variables (and an
 * optional .env file), providing a centralized way to manage settings.
 *
 * @dependencies
 * - github.com/spf13/viper: A popular library for Go application configuration.
 */

package config

import (
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all the configuration variables for the service.
// These values are loaded from environment variables.
type Config struct {
	ServerPort              string `mapstructure:"SERVER_PORT"`
	DatabaseURL             string `mapstructure:"DATABASE_URL"`
	JWTSecret               string `mapstructure:"JWT_SECRET"`
	TokenTTLHours           int    `mapstructure:"TOKEN_TTL_HOURS"`
	BcryptCost              int    `mapstructure:"BCRYPT_COST"`
	RabbitMQURL             string `mapstructure:"RABBITMQ_URL"`
	RedisURL                string `mapstructure:"REDIS_URL"`
	RedisRateLimitPrefix    string `mapstructure:"REDIS_RATE_LIMIT_PREFIX"`
	LoginRateLimitPerMinute int    `mapstructure:"LOGIN_RATE_LIMIT_PER_MINUTE"`
	LowStockThreshold       int    `mapstructure:"LOW_STOCK_THRESHOLD"`
	LowStockDigestSchedule  string `mapstructure:"LOW_STOCK_DIGEST_SCHEDULE"`
	CORSAllowedOrigins      string `mapstructure:"CORS_ALLOWED_ORIGINS"`
	SeedDefaultAccount      bool   `mapstructure:"SEED_DEFAULT_ACCOUNT"`
}

// LoadConfig reads configuration from environment variables from the given path.
// It uses Viper to automatically bind environment variables to the Config struct.
func LoadConfig(path string) (config Config, err error) {
	// Tell viper the path to look for the optional .env file.
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	// Enable automatic binding of environment variables.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set default values
	viper.SetDefault("SERVER_PORT", "5000")
	viper.SetDefault("TOKEN_TTL_HOURS", 168) // 7 days
	viper.SetDefault("BCRYPT_COST", 10)
	viper.SetDefault("REDIS_RATE_LIMIT_PREFIX", "bms:rate_limit")
	viper.SetDefault("LOGIN_RATE_LIMIT_PER_MINUTE", 0)
	viper.SetDefault("LOW_STOCK_THRESHOLD", 10)
	viper.SetDefault("LOW_STOCK_DIGEST_SCHEDULE", "0 7 * * *")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "https://*,http://*")
	viper.SetDefault("SEED_DEFAULT_ACCOUNT", false)

	// Bind environment variables explicitly to ensure they appear in Unmarshal
	_ = viper.BindEnv("SERVER_PORT")
	_ = viper.BindEnv("PORT")
	_ = viper.BindEnv("DATABASE_URL")
	_ = viper.BindEnv("JWT_SECRET")
	_ = viper.BindEnv("TOKEN_TTL_HOURS")
	_ = viper.BindEnv("BCRYPT_COST")
	_ = viper.BindEnv("RABBITMQ_URL")
	_ = viper.BindEnv("REDIS_URL")
	_ = viper.BindEnv("REDIS_RATE_LIMIT_PREFIX")
	_ = viper.BindEnv("LOGIN_RATE_LIMIT_PER_MINUTE")
	_ = viper.BindEnv("LOW_STOCK_THRESHOLD")
	_ = viper.BindEnv("LOW_STOCK_DIGEST_SCHEDULE")
	_ = viper.BindEnv("CORS_ALLOWED_ORIGINS")
	_ = viper.BindEnv("SEED_DEFAULT_ACCOUNT")

	// Attempt to read the config file. It's okay if it doesn't exist.
	if err = viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("level=warn component=config msg=\"failed to read config file; using environment values\" err=%v", err)
		}
	}

	// Unmarshal the configuration into the Config struct.
	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	// A platform-provided PORT (e.g. Railway/Render) wins over SERVER_PORT.
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		config.ServerPort = port
	}
	config.JWTSecret = strings.TrimSpace(config.JWTSecret)
	config.RedisURL = strings.TrimSpace(config.RedisURL)
	config.RedisRateLimitPrefix = strings.TrimSpace(config.RedisRateLimitPrefix)
	if config.RedisRateLimitPrefix == "" {
		config.RedisRateLimitPrefix = "bms:rate_limit"
	}

	if config.TokenTTLHours <= 0 {
		log.Printf("level=warn component=config msg=\"non-positive token ttl configured; using default\" hours=%d", config.TokenTTLHours)
		config.TokenTTLHours = 168
	}
	if config.BcryptCost < 4 || config.BcryptCost > 31 {
		log.Printf("level=warn component=config msg=\"bcrypt cost out of range; using default\" cost=%d", config.BcryptCost)
		config.BcryptCost = 10
	}
	if config.LowStockThreshold <= 0 {
		config.LowStockThreshold = 10
	}
	if config.LoginRateLimitPerMinute < 0 {
		config.LoginRateLimitPerMinute = 0
	}
	if strings.TrimSpace(config.LowStockDigestSchedule) == "" {
		config.LowStockDigestSchedule = "0 7 * * *"
	}

	return
}
