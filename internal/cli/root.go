// Package cli implements ecomctl, the admin command line of the platform.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MikeMC777/ordenes-core/internal/config"
	"github.com/MikeMC777/ordenes-core/internal/database"
)

type connectFunc func(ctx context.Context, cfg config.Config) (*database.DB, error)

func connect(ctx context.Context, cfg config.Config) (*database.DB, error) {
	db, err := database.New(ctx, cfg.PostgresDSN, cfg.DBMaxConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(connect)
}

func newRootCmd(dial connectFunc) *cobra.Command {
	root := &cobra.Command{
		Use:   "ecomctl",
		Short: "Admin tool for the ordenes platform",
		Long: `ecomctl applies the database schema and runs the order placement
workflow directly against Postgres. Connection settings come from the same
environment (or .env file) the services read.`,
		SilenceUsage: true,
	}
	root.AddCommand(newMigrateCmd(dial), newPlaceOrderCmd(dial))
	return root
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
