package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Big-jpg/swipehire/internal/models"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Ensure a user exists and print a bearer token for it",
	Run: func(cmd *cobra.Command, _ []string) {
		logger, config := bootstrap()
		defer logger.Sync()

		subject, _ := cmd.Flags().GetString("subject")
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		admin, _ := cmd.Flags().GetBool("admin")

		role := ""
		if admin {
			role = models.RoleAdmin
		}

		auth, err := newAuthenticator(config.Auth)
		if err != nil {
			logger.Fatal("preparing authentication", zap.Error(err))
		}

		st, err := openStore(cmd.Context(), config.Database, logger, config.Database.AutoMigrate)
		if err != nil {
			logger.Fatal("opening the database", zap.Error(err))
		}
		defer st.Close()

		user, err := st.EnsureUser(cmd.Context(), subject, name, email, role)
		if err != nil {
			logger.Fatal("ensuring the user", zap.Error(err))
		}

		token, err := auth.Issue(user.ID)
		if err != nil {
			logger.Fatal("issuing the token", zap.Error(err))
		}

		logger.Info("token issued", zap.Uint("user_id", user.ID), zap.String("role", user.Role))
		fmt.Fprintln(cmd.OutOrStdout(), token)
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().StringP("subject", "s", "", "external id of the user")
	tokenCmd.Flags().String("name", "", "display name stored on the user")
	tokenCmd.Flags().String("email", "", "email stored on the user")
	tokenCmd.Flags().Bool("admin", false, "grant the admin role")
	tokenCmd.MarkFlagRequired("subject")
}
