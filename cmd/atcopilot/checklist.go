package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yegors/atcopilot/internal/planner"
)

func checklistCmd(load loadFunc) *cobra.Command {
	var (
		req      planner.Request
		markdown bool
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "checklist",
		Short: "Generate a checklist for one flight and print it",
		Example: `  atcopilot checklist --dep EDFE --arr EDFN --callsign D-EABC --type C172 --pax 2 --position "Halle 3"
  atcopilot checklist --dep EDFE --arr EDFN --callsign D-EABC --markdown`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if markdown && asJSON {
				return fmt.Errorf("--markdown and --json are mutually exclusive")
			}

			cfg, log, err := load(os.Stderr)
			if err != nil {
				return err
			}
			defer log.Sync()

			a, err := newApp(cfg, log, false)
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.service.Generate(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case asJSON:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			case markdown:
				_, err = fmt.Fprint(out, res.Checklist.Markdown())
				return err
			default:
				_, err = fmt.Fprintln(out, renderResult(res))
				return err
			}
		},
	}

	cmd.Flags().StringVar(&req.DepartureICAO, "dep", "", "departure airport ICAO code")
	cmd.Flags().StringVar(&req.ArrivalICAO, "arr", "", "arrival airport ICAO code")
	cmd.Flags().StringVar(&req.Callsign, "callsign", "", "aircraft callsign")
	cmd.Flags().StringVar(&req.AircraftType, "type", "", "aircraft type")
	cmd.Flags().IntVar(&req.PaxCount, "pax", 1, "persons on board")
	cmd.Flags().StringVar(&req.StartPosition, "position", "", "parking position at the departure airport")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "print the checklist as Markdown")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full result as JSON")
	_ = cmd.MarkFlagRequired("dep")
	_ = cmd.MarkFlagRequired("arr")

	return cmd
}
