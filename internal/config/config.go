// Package config loads application settings with viper. Environment
// variables win over the optional config.yaml next to the binary.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Addr        string `mapstructure:"addr"`
	DatabaseURL string `mapstructure:"database_url"`
	RedisAddr   string `mapstructure:"redis_addr"`
	JWTSecret   string `mapstructure:"jwt_secret"`

	// Default threshold for the metrics dashboard's low-stock counter.
	LowStockThreshold int `mapstructure:"low_stock_threshold"`

	SMTP SMTPConfig `mapstructure:"smtp"`
}

type SMTPConfig struct {
	From         string `mapstructure:"from"`
	To           string `mapstructure:"to"`
	Server       string `mapstructure:"server"`
	Port         string `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	AuthDisabled bool   `mapstructure:"auth_disabled"`
}

func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("addr", ":8080")
	v.SetDefault("redis_addr", "stockroom-redis:6379")
	v.SetDefault("low_stock_threshold", 10)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("redis_addr", "REDIS_ADDR")
	_ = v.BindEnv("jwt_secret", "JWT_SECRET")
	_ = v.BindEnv("smtp.from", "ALERT_FROM")
	_ = v.BindEnv("smtp.to", "ALERT_TO")
	_ = v.BindEnv("smtp.server", "SMTP_SERVER")
	_ = v.BindEnv("smtp.port", "SMTP_PORT")
	_ = v.BindEnv("smtp.user", "SMTP_USER")
	_ = v.BindEnv("smtp.password", "SMTP_PASS")
	_ = v.BindEnv("smtp.auth_disabled", "SMTP_AUTH_DISABLED")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("database_url is required (set DATABASE_URL)")
	}
	return cfg, nil
}
