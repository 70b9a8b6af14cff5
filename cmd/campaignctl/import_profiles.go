package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"campaign-manager/application/commands"
)

func newImportProfilesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import-profiles <file.json>",
		Short: "Store scraped profiles from a JSON array file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles, err := readProfiles(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			container, err := loadContainer(ctx)
			if err != nil {
				return err
			}
			defer container.Shutdown()

			result, err := container.CommandBus.Send(ctx, commands.StoreProfilesCommand{Profiles: profiles})
			if err != nil {
				return err
			}

			stored := result.(commands.StoreProfilesResult)
			fmt.Fprintln(cmd.OutOrStdout(), stored.Message)
			return nil
		},
	}
}

func readProfiles(path string) ([]commands.ProfileInput, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var profiles []commands.ProfileInput
	if err := json.Unmarshal(buf, &profiles); err != nil {
		return nil, fmt.Errorf("%s: expected a JSON array of profiles: %w", path, err)
	}
	return profiles, nil
}
