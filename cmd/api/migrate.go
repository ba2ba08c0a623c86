package main

import (
	"github.com/spf13/cobra"

	"h2grid/internal/server"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database if needed and apply the schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()

		app, err := server.Open(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		app.Close()
		return nil
	},
}
