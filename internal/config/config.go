package config

import (
	"github.com/spf13/viper"
)

type (
	Config struct {
		Database
		Console
	}

	Database struct {
		Path string
	}

	Console struct {
		// MaxInputRetries bounds the re-prompt loops for malformed
		// input. Zero means prompt until valid input arrives.
		MaxInputRetries int
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("console_max_input_retries", DefaultMaxInputRetries)

	return &Config{
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Console: Console{
			MaxInputRetries: v.GetInt("CONSOLE_MAX_INPUT_RETRIES"),
		},
	}
}
