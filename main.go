// @title Hackathon Judging API
// @version 1.0
// @description Backend API for team registration, panelist scoring and hackathon administration

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"errors"
	"os"
	"strings"

	_ "github.com/alex-pricope/hackathon-judging-api/docs"

	"github.com/alex-pricope/hackathon-judging-api/api"
	"github.com/alex-pricope/hackathon-judging-api/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func main() {
	if os.Getenv("APP_ENV") == "local" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			logging.Log.Warnf("Failed to load .env: %v", err)
		}
	}

	// Load env
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	api.SetDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			logging.Log.Errorf("Failed to read config file: %v", err)
			panic("Failed to read config file: " + err.Error())
		}
	}

	// Read config
	config, err := api.ReadConfig()
	if err != nil {
		logging.Log.Fatalf("Invalid configuration: %v", err)
	}
	logging.BoostrapLogger(config.Level, config.JSON)

	// Start the service (inside the lambda)
	service := api.NewServer(config)
	service.Start()
}
