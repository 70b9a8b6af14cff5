package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"campaign-manager/application/commands"
	"campaign-manager/application/ports"
	"campaign-manager/infrastructure/config"
	"campaign-manager/infrastructure/persistence/dynamodb"
)

func newInitDBCommand() *cobra.Command {
	var (
		wait time.Duration
		seed bool
	)

	cmd := &cobra.Command{
		Use:   "init-db",
		Short: "Create the DynamoDB tables and seed a sample campaign",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			container, err := loadContainer(ctx)
			if err != nil {
				return err
			}
			defer container.Shutdown()

			cfg := container.Config
			if cfg.StoreBackend != config.BackendDynamoDB {
				return fmt.Errorf("init-db requires STORE_BACKEND=%s", config.BackendDynamoDB)
			}

			created, err := dynamodb.EnsureTables(ctx, container.DynamoDB, dynamodb.TableNames{
				Campaigns:   cfg.CampaignsTable,
				Profiles:    cfg.ProfilesTable,
				Messages:    cfg.MessagesTable,
				Users:       cfg.UsersTable,
				StatusIndex: cfg.StatusIndexName,
			}, wait, container.Logger)
			if err != nil {
				return err
			}
			container.Logger.Info("Tables ready", zap.Strings("created", created))

			if !seed {
				return nil
			}

			count, err := container.Repositories.Campaigns.Count(ctx, ports.CampaignFilter{})
			if err != nil {
				return err
			}
			if count > 0 {
				return nil
			}

			container.Logger.Info("Adding sample campaign data")
			_, err = container.CommandBus.Send(ctx, commands.CreateCampaignCommand{
				Name:        "Sample Campaign",
				Description: "This is a sample campaign created during initialization",
				Status:      "ACTIVE",
				Leads:       []string{"https://linkedin.com/in/sample-profile-1", "https://linkedin.com/in/sample-profile-2"},
				AccountIDs:  []string{"123", "456"},
			})
			return err
		},
	}

	cmd.Flags().DurationVar(&wait, "wait", 2*time.Minute, "how long to wait for each new table to become ACTIVE")
	cmd.Flags().BoolVar(&seed, "seed", true, "insert a sample campaign when the campaigns table is empty")
	return cmd
}
