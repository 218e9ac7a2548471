package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"parking-vacancy-backend/internal/db"
	"parking-vacancy-backend/internal/model"
	"parking-vacancy-backend/internal/store"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the static garage reference data into the database",
	Long: `Seed reads a JSON array of garages (name, address, coordinates, rate
schedule, source tag) and upserts it into the reference table, keyed on
name. The array's order becomes the API output order.`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "./data/garages.json", "path to the garage seed file")
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	raw, err := os.ReadFile(seedFile)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	var garages []model.Garage
	if err := json.Unmarshal(raw, &garages); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}
	for i := range garages {
		garages[i].ID = 0 // keys are assigned by the database
		garages[i].Position = i
		if garages[i].Source == "" {
			garages[i].Source = model.SourceUW
		}
	}

	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	appStore := store.NewGormStore(gormDB)
	if err := appStore.SeedGarages(context.Background(), garages); err != nil {
		return err
	}

	log.Printf("Seeded %d garages from %s", len(garages), seedFile)
	return nil
}
