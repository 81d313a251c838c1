package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"database"`
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	Redis struct {
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	API struct {
		Key string `mapstructure:"key"`
	} `mapstructure:"api"`
	Limits Limits `mapstructure:"limits"`
}

// Limits holds every tunable the transaction engine needs. It is passed by
// reference into the services so tests can inject their own values instead of
// reaching for package state.
type Limits struct {
	DailyTransferLimit    int64   `mapstructure:"daily_transfer_limit"`
	MinTransactionAmount  int64   `mapstructure:"min_transaction_amount"`
	MaxTransactionAmount  int64   `mapstructure:"max_transaction_amount"`
	FeePercentage         float64 `mapstructure:"fee_percentage"`
	FeeCap                int64   `mapstructure:"fee_cap"`
	WithdrawFeePercentage float64 `mapstructure:"withdraw_fee_percentage"`
	LockTimeoutMS         int     `mapstructure:"lock_timeout_ms"`
}

// LoadConfig reads config.yml from the given path, applies environment
// variable overrides, and returns the decoded configuration.
func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yml")

	viper.SetDefault("limits.daily_transfer_limit", 50_000_000)
	viper.SetDefault("limits.min_transaction_amount", 1_000)
	viper.SetDefault("limits.max_transaction_amount", 50_000_000)
	viper.SetDefault("limits.fee_percentage", 0.10)
	viper.SetDefault("limits.fee_cap", 100_000)
	viper.SetDefault("limits.withdraw_fee_percentage", 0.0)
	viper.SetDefault("limits.lock_timeout_ms", 3000)

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	return cfg, nil
}
