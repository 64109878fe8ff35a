package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/CODEX19/FarmLink-Africa/calendar"
	"github.com/spf13/cobra"
)

var calendarOut string

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Farming calendar tools",
}

var calendarParseCmd = &cobra.Command{
	Use:   "parse <file|->",
	Short: "Parse a model answer into calendar suggestions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(cmd, args[0])
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(calendar.ParseSuggestions(string(text)))
	},
}

var calendarExportCmd = &cobra.Command{
	Use:   "export <events.json|->",
	Short: "Export a json list of events as iCalendar",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput(cmd, args[0])
		if err != nil {
			return err
		}

		events := []calendar.Event{}
		if err := json.Unmarshal(data, &events); err != nil {
			return fmt.Errorf("Error parsing events: %w", err)
		}

		ics, err := calendar.ExportICS(events)
		if err != nil {
			return err
		}

		if calendarOut == "" {
			_, err = cmd.OutOrStdout().Write(ics)
			return err
		}
		if err := os.WriteFile(calendarOut, ics, 0o644); err != nil {
			return fmt.Errorf("Error writing %s: %w", calendarOut, err)
		}
		return nil
	},
}

func init() {
	calendarExportCmd.Flags().StringVarP(&calendarOut, "out", "o", "", "Output file (default stdout)")

	calendarCmd.AddCommand(calendarParseCmd)
	calendarCmd.AddCommand(calendarExportCmd)
}

func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("Error reading %s: %w", name, err)
	}
	return data, nil
}
