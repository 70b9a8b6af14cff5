package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"campaign-manager/infrastructure/config"
	"campaign-manager/infrastructure/di"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "campaignctl",
		Short:         "Administrative tasks for the campaign manager",
		SilenceUsage: true,
	}

	root.AddCommand(
		newInitDBCommand(),
		newImportProfilesCommand(),
		newCreateUserCommand(),
	)
	return root
}

// loadContainer builds the same dependency graph the API server uses
func loadContainer(ctx context.Context) (*di.Container, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	container, err := di.InitializeContainer(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize container: %w", err)
	}
	return container, nil
}
