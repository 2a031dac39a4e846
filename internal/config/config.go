/**
 * @description
 * This package handles the configuration management for the service. It uses the
 * Viper library to read configuration from environment variables, providing a
 * centralized and straightforward way to manage application settings.
 *
 * @dependencies
 * - github.com/spf13/viper: A popular library for Go application configuration.
 */

package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all the configuration variables for the roots-gateway.
// These values are loaded from environment variables.
type Config struct {
	ServerPort string `mapstructure:"SERVER_PORT"`

	ReputeServiceURL     string `mapstructure:"REPUTE_SERVICE_URL"`
	CollateralServiceURL string `mapstructure:"COLLATERAL_SERVICE_URL"`
	LoansServiceURL      string `mapstructure:"LOANS_SERVICE_URL"`
	TrustAIServiceURL    string `mapstructure:"TRUST_AI_SERVICE_URL"`
	EventBusServiceURL   string `mapstructure:"EVENT_BUS_SERVICE_URL"`
	ServiceAPIKey        string `mapstructure:"SERVICE_API_KEY"`

	JWKSURL string `mapstructure:"JWKS_URL"`

	RabbitMQURL   string `mapstructure:"RABBITMQ_URL"`
	AuditExchange string `mapstructure:"AUDIT_EXCHANGE"`

	RedisURL                       string `mapstructure:"REDIS_URL"`
	RedisRateLimitPrefix           string `mapstructure:"REDIS_RATE_LIMIT_PREFIX"`
	LoanApplicationRateLimitPerMin int    `mapstructure:"LOAN_APPLICATION_RATE_LIMIT_PER_MINUTE"`

	HealthProbeTimeoutMs     int    `mapstructure:"HEALTH_PROBE_TIMEOUT_MS"`
	RecentEventsDefaultLimit uint64 `mapstructure:"RECENT_EVENTS_DEFAULT_LIMIT"`
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
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("AUDIT_EXCHANGE", "roots.events")
	viper.SetDefault("REDIS_RATE_LIMIT_PREFIX", "roots:rate_limit")
	viper.SetDefault("LOAN_APPLICATION_RATE_LIMIT_PER_MINUTE", 30)
	viper.SetDefault("HEALTH_PROBE_TIMEOUT_MS", 2000)
	viper.SetDefault("RECENT_EVENTS_DEFAULT_LIMIT", 10)

	// Bind environment variables explicitly to ensure they appear in Unmarshal
	_ = viper.BindEnv("SERVER_PORT", "SERVER_PORT", "PORT")
	_ = viper.BindEnv("REPUTE_SERVICE_URL")
	_ = viper.BindEnv("COLLATERAL_SERVICE_URL")
	_ = viper.BindEnv("LOANS_SERVICE_URL")
	_ = viper.BindEnv("TRUST_AI_SERVICE_URL")
	_ = viper.BindEnv("EVENT_BUS_SERVICE_URL")
	_ = viper.BindEnv("SERVICE_API_KEY", "SERVICE_API_KEY", "ROOTS_GATEWAY_SERVICE_API_KEY")
	_ = viper.BindEnv("JWKS_URL")
	_ = viper.BindEnv("RABBITMQ_URL")
	_ = viper.BindEnv("AUDIT_EXCHANGE")
	_ = viper.BindEnv("REDIS_URL", "REDIS_URL", "GATEWAY_REDIS_URL")
	_ = viper.BindEnv("REDIS_RATE_LIMIT_PREFIX")
	_ = viper.BindEnv("LOAN_APPLICATION_RATE_LIMIT_PER_MINUTE")
	_ = viper.BindEnv("HEALTH_PROBE_TIMEOUT_MS")
	_ = viper.BindEnv("RECENT_EVENTS_DEFAULT_LIMIT")

	// Attempt to read the config file. It's okay if it doesn't exist.
	if err = viper.ReadInConfig(); err != nil {
		// If the config file is not found, we can ignore the error.
		// For other errors, we should return them.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("level=warn component=config msg=\"failed to read config file; using environment values\" err=%v", err)
		}
	}

	// Unmarshal the configuration into the Config struct.
	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	return
}
