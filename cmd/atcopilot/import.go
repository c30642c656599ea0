package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yegors/atcopilot/internal/airport"
	"github.com/yegors/atcopilot/internal/storage/sqlite"
)

func importAirportsCmd(load loadFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "import-airports [geojson]",
		Short: "Load an airport GeoJSON file into the SQLite airport table",
		Long: `Load an airport GeoJSON file into the SQLite airport table.

Without an argument the configured data.airports_file is imported. Airports already
in the table are kept; the first record for an ICAO code wins.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := load(os.Stderr)
			if err != nil {
				return err
			}
			defer log.Sync()

			path := cfg.Data.AirportsFile
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return fmt.Errorf("no airport file given and data.airports_file is empty")
			}

			idx, err := airport.LoadIndex(path, log)
			if err != nil {
				return err
			}

			db, err := sqlite.Open(cfg.Storage.SQLitePath)
			if err != nil {
				return err
			}
			defer db.Close()

			store, err := sqlite.NewAirportStorage(db, log)
			if err != nil {
				return err
			}

			inserted, err := store.Import(cmd.Context(), idx.Records())
			if err != nil {
				return err
			}
			total, err := store.Count(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported %d of %d airports into %s (%d total)\n",
				inserted, idx.Len(), cfg.Storage.SQLitePath, total)
			return nil
		},
	}
}
