/**
 * @description
 * This file handles the configuration management for the membership backend.
 * It uses the Viper library to provide a robust way of reading settings from
 * environment variables or a local .env file.
 *
 * @dependencies
 * - github.com/spf13/viper: A powerful configuration library for Go applications.
 */
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config stores all configuration for the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	ServerPort  string `mapstructure:"SERVER_PORT"`
	Environment string `mapstructure:"ENVIRONMENT"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	RabbitMQURL string `mapstructure:"RABBITMQ_URL"`

	AdminJWTSecret  string `mapstructure:"ADMIN_JWT_SECRET"`
	JobTriggerToken string `mapstructure:"JOB_TRIGGER_TOKEN"`

	GatewayBaseURL     string `mapstructure:"GATEWAY_BASE_URL"`
	GatewayMerchantID  string `mapstructure:"GATEWAY_MERCHANT_ID"`
	GatewaySecret      string `mapstructure:"GATEWAY_SECRET"`
	GatewayCallbackURL string `mapstructure:"GATEWAY_CALLBACK_URL"`

	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUsername string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	MailFrom     string `mapstructure:"MAIL_FROM"`

	CertLogoPath           string `mapstructure:"CERT_LOGO_PATH"`
	CertDispatchSchedule   string `mapstructure:"CERT_DISPATCH_SCHEDULE"`
	CertBatchSizeScheduled int    `mapstructure:"CERT_BATCH_SIZE_SCHEDULED"`
	CertBatchSizeManual    int    `mapstructure:"CERT_BATCH_SIZE_MANUAL"`

	OrgAddress string `mapstructure:"ORG_ADDRESS"`
	OrgGSTIN   string `mapstructure:"ORG_GSTIN"`
	OrgEmail   string `mapstructure:"ORG_EMAIL"`
	OrgPhone   string `mapstructure:"ORG_PHONE"`
}

// IsProduction reports whether the service runs in the production
// environment.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig() (config Config, err error) {
	viper.AddConfigPath(".")
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("CERT_DISPATCH_SCHEDULE", "0 */6 * * *")
	viper.SetDefault("CERT_BATCH_SIZE_SCHEDULED", 25)
	viper.SetDefault("CERT_BATCH_SIZE_MANUAL", 100)
	viper.SetDefault("SMTP_PORT", 587)

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Bind env vars explicitly to ensure they appear in Unmarshal
	for _, key := range []string{
		"SERVER_PORT", "ENVIRONMENT", "DATABASE_URL", "RABBITMQ_URL",
		"ADMIN_JWT_SECRET", "JOB_TRIGGER_TOKEN",
		"GATEWAY_BASE_URL", "GATEWAY_MERCHANT_ID", "GATEWAY_SECRET", "GATEWAY_CALLBACK_URL",
		"SMTP_HOST", "SMTP_PORT", "SMTP_USERNAME", "SMTP_PASSWORD", "MAIL_FROM",
		"CERT_LOGO_PATH", "CERT_DISPATCH_SCHEDULE", "CERT_BATCH_SIZE_SCHEDULED", "CERT_BATCH_SIZE_MANUAL",
		"ORG_ADDRESS", "ORG_GSTIN", "ORG_EMAIL", "ORG_PHONE",
	} {
		_ = viper.BindEnv(key)
	}

	// Read the config file if it exists.
	if err = viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return config, err
		}
		err = nil
	}

	err = viper.Unmarshal(&config)
	return
}
