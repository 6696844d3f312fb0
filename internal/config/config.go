package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/ngocdai99/furniture-backend/pkg/logger"
	"github.com/spf13/viper"
)

// MustInit loads .env, reads config.yaml and installs the default logger.
// Secrets stay in the environment; everything else lives in the yaml file.
func MustInit() {
	if err := godotenv.Load("./.env"); err != nil {
		slog.Warn("No .env file loaded, relying on process environment", "error", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		viper.AddConfigPath(path)
	}
	viper.AddConfigPath("/etc/furniture-backend")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		panic("error while reading config file: " + err.Error())
	}

	SetupLogger()
}

func SetupLogger() {
	handler := logger.NewHandler(nil)
	log := slog.New(handler)
	slog.SetDefault(log)
}
