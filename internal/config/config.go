// Package config loads application settings from the environment with
// an optional .env file for local development.
package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Operator OperatorConfig
}

type AppConfig struct {
	Name         string
	Env          string
	Address      string
	Debug        bool
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// OperatorConfig holds fiscal operator credentials and connection
// settings used by the registration client.
type OperatorConfig struct {
	BaseURL      string
	Login        string
	Password     string
	GroupCode    string
	CallbackURL  string
	PollAttempts int
	PollDelay    time.Duration
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "fiscaldoc")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_ADDRESS", ":8080")
	viper.SetDefault("APP_DEBUG", false)
	viper.SetDefault("APP_READ_TIMEOUT_SECONDS", 15)
	viper.SetDefault("APP_WRITE_TIMEOUT_SECONDS", 15)
	viper.SetDefault("OPERATOR_BASE_URL", "https://online.atol.ru/possystem/v4")
	viper.SetDefault("OPERATOR_POLL_ATTEMPTS", 10)
	viper.SetDefault("OPERATOR_POLL_DELAY_SECONDS", 2)

	return &Config{
		App: AppConfig{
			Name:         viper.GetString("APP_NAME"),
			Env:          viper.GetString("APP_ENV"),
			Address:      viper.GetString("APP_ADDRESS"),
			Debug:        viper.GetBool("APP_DEBUG"),
			ReadTimeout:  time.Duration(viper.GetInt("APP_READ_TIMEOUT_SECONDS")) * time.Second,
			WriteTimeout: time.Duration(viper.GetInt("APP_WRITE_TIMEOUT_SECONDS")) * time.Second,
		},
		Operator: OperatorConfig{
			BaseURL:      viper.GetString("OPERATOR_BASE_URL"),
			Login:        viper.GetString("OPERATOR_LOGIN"),
			Password:     viper.GetString("OPERATOR_PASSWORD"),
			GroupCode:    viper.GetString("OPERATOR_GROUP_CODE"),
			CallbackURL:  viper.GetString("OPERATOR_CALLBACK_URL"),
			PollAttempts: viper.GetInt("OPERATOR_POLL_ATTEMPTS"),
			PollDelay:    time.Duration(viper.GetInt("OPERATOR_POLL_DELAY_SECONDS")) * time.Second,
		},
	}
}
