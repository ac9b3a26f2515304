package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
)

var version = "dev"

var rootArgs struct {
	catalog string
}

func newRootCmd() *cobra.Command {
	serve := newServeCmd()
	cmd := &cobra.Command{
		Use:           "portfolio-guide",
		Long:          "Serve the interactive Django portfolio guide and run its offline tasks",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}
	cmd.PersistentFlags().StringVar(&rootArgs.catalog, "catalog", "", "catalog source: builtin, a .yaml file or a .db file (overrides CATALOG_PATH)")
	cmd.Flags().AddFlagSet(serve.Flags())
	cmd.AddCommand(serve, newListCmd(), newChartCmd(), newSeedCmd())
	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
