package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	canvas "github.com/goliatone/go-canvas"
	"github.com/goliatone/go-canvas/pkg/record"
)

var (
	transformFormPath       string
	transformSubmissionPath string
	transformOutput         string
)

// transformCmd converts a local v3 submission file against a local form
// definition, without touching the API.
var transformCmd = &cobra.Command{
	Use:   "transform",
	Short: "Transform a local v3 submission file into the v2 format",
	RunE: func(cmd *cobra.Command, _ []string) error {
		loader := canvas.NewLoader()

		def, err := loader.LoadForm(cmd.Context(), record.FileSource(transformFormPath))
		if err != nil {
			return err
		}
		doc, err := loader.LoadSubmission(cmd.Context(), record.FileSource(transformSubmissionPath))
		if err != nil {
			return err
		}

		v2, report, err := canvas.Transform(def, doc)
		if err != nil {
			return err
		}
		for _, diag := range report.Diagnostics {
			slog.Warn("transform diagnostic", "kind", string(diag.Kind), "entry_id", diag.EntryID, "label", diag.Label)
		}
		if skipped := report.Skipped(); skipped > 0 {
			slog.Warn("answers omitted from output", "count", skipped)
		}

		return writeJSON(transformOutput, v2)
	},
}

func init() {
	transformCmd.Flags().StringVar(&transformFormPath, "form", "", "form definition JSON file (required)")
	transformCmd.Flags().StringVar(&transformSubmissionPath, "submission", "", "v3 submission JSON file (required)")
	transformCmd.Flags().StringVarP(&transformOutput, "output", "o", "", "output file (stdout if empty)")
	_ = transformCmd.MarkFlagRequired("form")
	_ = transformCmd.MarkFlagRequired("submission")

	rootCmd.AddCommand(transformCmd)
}
