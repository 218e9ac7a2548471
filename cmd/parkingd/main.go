package main

import (
	"log"
	"os"
)

func main() {
	logger := log.New(os.Stdout, "parking-backend ", log.LstdFlags)

	if err := rootCmd.Execute(); err != nil {
		logger.Fatalf("command failed: %v", err)
	}
}
