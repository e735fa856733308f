package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/junova144/Eva/app"
	"github.com/junova144/Eva/config"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "eva",
		Short:         "Ask EVA, the secondary-school subject assistant",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newAskCmd(), newCoursesCmd())
	return root
}

// mustStart exits the process when configuration or credentials are missing.
func mustStart(ctx context.Context) *app.App {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[ERROR] Failed to load configuration: %v", err)
	}

	eva, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("[ERROR] Failed to initialize EVA: %v", err)
	}
	return eva
}
