package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"parking-vacancy-backend/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "parkingd",
	Short: "Parking garage vacancy backend",
	Long: `parkingd tracks real-time parking garage vacancy, merged from the
campus occupancy table and the city vacancy feed, and serves the current
state plus history over HTTP.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := godotenv.Load(); err != nil {
			log.Printf("No .env file loaded: %v", err)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file (default ./config/config.yaml)")
}

// loadConfig resolves the config path (flag, then CONFIG_PATH, then the local
// default) and loads it.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = "./config/config.yaml"
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	log.Printf("configuration loaded successfully from %s", path)
	return cfg, nil
}
