package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/CODEX19/FarmLink-Africa/advice"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type askOptions struct {
	location  string
	crops     []string
	latitude  float64
	longitude float64
	message   string
	text      string
	out       string
}

var askOpts askOptions

var askCmd = &cobra.Command{
	Use:   "ask <operation>",
	Short: "Ask the advisor once and print the answer",
	Long: fmt.Sprintf(`Ask the advisor once and print the answer as json.

Supported operations: %s.
Speech is written as a wav file to --out (default <uid>.wav).`, operationNames()),
	Args: cobra.ExactArgs(1),
	RunE: ask,
}

func init() {
	f := askCmd.Flags()
	f.StringVar(&askOpts.location, "location", "", "Region of the farmer, e.g. 'Nakuru, Kenya'")
	f.StringSliceVar(&askOpts.crops, "crops", nil, "Crops of the farmer (comma separated)")
	f.Float64Var(&askOpts.latitude, "lat", 0, "Latitude for nearby-nodes")
	f.Float64Var(&askOpts.longitude, "lng", 0, "Longitude for nearby-nodes")
	f.StringVar(&askOpts.message, "message", "", "Chat message")
	f.StringVar(&askOpts.text, "text", "", "Text to speak")
	f.StringVarP(&askOpts.out, "out", "o", "", "Output file for speech")
}

func operationNames() string {
	names := []string{}
	for _, op := range advice.Operations {
		names = append(names, string(op))
	}
	return strings.Join(names, ", ")
}

func (o askOptions) request(operation string) (advice.Request, error) {
	op, err := advice.ParseOperation(operation)
	if err != nil {
		return advice.Request{}, err
	}
	req := advice.Request{
		Operation: op,
		Location:  o.location,
		Crops:     o.crops,
		Latitude:  o.latitude,
		Longitude: o.longitude,
		Message:   o.message,
		Text:      o.text,
	}
	return req, req.Validate()
}

func ask(cmd *cobra.Command, args []string) error {
	req, err := askOpts.request(args[0])
	if err != nil {
		return err
	}

	svc, cleanup, err := newAdvisor(cmd.Context(), logger, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	resp, err := svc.Advise(cmd.Context(), req)
	if err != nil {
		return err
	}

	if len(resp.Audio) > 0 {
		out := askOpts.out
		if out == "" {
			out = resp.UID + ".wav"
		}
		if err := os.WriteFile(out, resp.Audio, 0o644); err != nil {
			return fmt.Errorf("Error writing audio to %s: %w", out, err)
		}
		logger.Info("Wrote audio", zap.String("file", out), zap.Int("bytes", len(resp.Audio)))
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
