package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/02priyeshraj/Tomato_Restaurant_Website/config"
	controller "github.com/02priyeshraj/Tomato_Restaurant_Website/controllers"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/repository"
)

var (
	adminEmail    string
	adminName     string
	adminPassword string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create a back office account with a password",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		client, err := config.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return err
		}
		defer client.Disconnect(context.Background())

		stores := repository.NewMongoStores(config.OpenDatabase(client, cfg.MongoDatabase))
		user, err := controller.RegisterAdmin(ctx, stores.Users, adminEmail, adminName, adminPassword)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created admin %s (%s)\n", user.Email, user.User_id)
		return nil
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "admin email")
	createAdminCmd.Flags().StringVar(&adminName, "name", "", "display name")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "password, at least 8 characters")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(createAdminCmd)
}
