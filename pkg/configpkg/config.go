// Package configpkg provides parsing functionality for environment variables.
package configpkg

import (
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
//
// The values are read by viper from a config file or environment variables.
type Config struct {
	ServerAddress     string        `mapstructure:"SERVER_ADDRESS"`
	SessionDuration   time.Duration `mapstructure:"SESSION_DURATION"`
	SessionTick       time.Duration `mapstructure:"SESSION_TICK"`
	LoanApprovalDelay time.Duration `mapstructure:"LOAN_APPROVAL_DELAY"`
	SeedFile          string        `mapstructure:"SEED_FILE"`
	Environment       string        `mapstructure:"GO_ENV"`
}

// Load reads configuration from file or environment variables.
func Load(path string) (Config, error) {
	var c Config

	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.SetDefault("SERVER_ADDRESS", "0.0.0.0:8080")
	viper.SetDefault("SESSION_DURATION", "2m")
	viper.SetDefault("SESSION_TICK", "1s")
	viper.SetDefault("LOAN_APPROVAL_DELAY", "2500ms")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Defaults plus environment variables are a valid configuration.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return c, err
		}
	}

	if err := viper.Unmarshal(&c); err != nil {
		return c, err
	}

	return c, nil
}
