package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Big-jpg/swipehire/internal/models"
	"github.com/Big-jpg/swipehire/internal/store"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the job catalogue; jobs already present by external id are skipped",
	Run: func(cmd *cobra.Command, _ []string) {
		logger, config := bootstrap()
		defer logger.Sync()

		jobs, err := catalogue(cmd.Flag("file").Value.String())
		if err != nil {
			logger.Fatal("loading the catalogue", zap.Error(err))
		}

		st, err := openStore(cmd.Context(), config.Database, logger, config.Database.AutoMigrate)
		if err != nil {
			logger.Fatal("opening the database", zap.Error(err))
		}
		defer st.Close()

		created, err := st.SeedJobs(cmd.Context(), jobs)
		if err != nil {
			logger.Fatal("seeding jobs", zap.Error(err))
		}
		logger.Info("jobs seeded", zap.Int("created", created), zap.Int("skipped", len(jobs)-created))
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().StringP("file", "f", "", "JSON file with a list of jobs (default is the built-in sample catalogue)")
}

func catalogue(path string) ([]models.Job, error) {
	if path == "" {
		return store.SampleJobs()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var jobs []models.Job
	if err := json.Unmarshal(data, &jobs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return jobs, nil
}
