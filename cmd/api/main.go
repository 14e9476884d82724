package main

import (
	"context"
	"os"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "simpleguide",
		Short:         "Business directory server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(serveCmd(), migrateCmd(), createAdminCmd())

	if err := root.ExecuteContext(context.Background()); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}
