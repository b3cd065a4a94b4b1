package config

import (
	"errors"

	"github.com/spf13/viper"
)

// Config holds everything read at startup. Nothing here is mutated
// after Load returns.
type Config struct {
	ListenAddr    string `mapstructure:"LISTEN_ADDR"`
	StoreDriver   string `mapstructure:"STORE_DRIVER"` // "postgres" or "memory"
	DSN           string `mapstructure:"DSN"`
	JWTSecret     string `mapstructure:"JWT_SECRET"`
	TokenTTLHours int    `mapstructure:"TOKEN_TTL_HOURS"`
	MigrationsDir string `mapstructure:"MIGRATIONS_DIR"`
	CORSOrigins   string `mapstructure:"CORS_ORIGINS"` // comma-separated, "*" for any
}

// Load reads config.env from the working directory, letting real
// environment variables override file values. A missing file is fine;
// a missing JWT secret is not.
func Load() (config Config, err error) {
	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	viper.SetDefault("LISTEN_ADDR", ":8080")
	viper.SetDefault("STORE_DRIVER", "postgres")
	viper.SetDefault("TOKEN_TTL_HOURS", 24)
	viper.SetDefault("MIGRATIONS_DIR", "migrations")
	viper.SetDefault("CORS_ORIGINS", "*")

	if err = viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return
		}
		err = nil
	}

	if err = viper.Unmarshal(&config); err != nil {
		return
	}

	if config.JWTSecret == "" {
		err = errors.New("JWT_SECRET must be set")
		return
	}
	if config.StoreDriver == "postgres" && config.DSN == "" {
		err = errors.New("DSN must be set when STORE_DRIVER is postgres")
	}
	return
}
