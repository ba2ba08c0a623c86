package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"h2grid/internal/server"
)

var importReadingsCmd = &cobra.Command{
	Use:   "import-readings <file.csv>",
	Short: "Load wind and solar readings from a CSV with lat, lon, speed and Insolation columns",
	Args:  cobra.ExactArgs(1),
	RunE:  runImportReadings,
}

func runImportReadings(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", args[0], err)
	}
	defer f.Close()

	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync()

	app, err := server.Open(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()

	res, err := app.ReadingService().ImportCSV(cmd.Context(), f)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "imported %d wind and %d solar readings from %d rows (%d values skipped)\n",
		res.Wind, res.Solar, res.Rows, res.Skipped)
	return nil
}
