package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Run: func(cmd *cobra.Command, _ []string) {
		logger, config := bootstrap()
		defer logger.Sync()

		st, err := openStore(cmd.Context(), config.Database, logger, true)
		if err != nil {
			logger.Fatal("migrating the database", zap.Error(err))
		}
		defer st.Close()
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
