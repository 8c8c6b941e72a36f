package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-canvas/pkg/canvasapi"
)

var formsCmd = &cobra.Command{
	Use:   "forms",
	Short: "List and fetch form definitions",
}

var (
	formsListStatus string
	formsListOutput string
)

var formsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all forms visible to the account",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}

		forms, err := client.ListAllForms(cmd.Context(), formsListStatus)
		if err != nil {
			return err
		}
		slog.Info("retrieved forms", "count", len(forms))

		return writeJSON(formsListOutput, forms)
	},
}

var (
	formGetStatus  string
	formGetVersion int
	formGetOutput  string
)

var formsGetCmd = &cobra.Command{
	Use:   "get <form-id>",
	Short: "Fetch one form's full nested definition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		formID, err := parseID(args[0])
		if err != nil {
			return fmt.Errorf("invalid form id %q: %w", args[0], err)
		}

		client, _, err := newClient()
		if err != nil {
			return err
		}

		def, err := client.GetForm(cmd.Context(), formID, canvasapi.GetFormRequest{
			Status:  formGetStatus,
			Version: formGetVersion,
		})
		if err != nil {
			return err
		}
		slog.Info("retrieved form", "form_id", def.ID, "name", def.Name, "version", def.Version)

		return writeJSON(formGetOutput, def)
	},
}

func init() {
	formsListCmd.Flags().StringVar(&formsListStatus, "status", "", "filter by form status (published, archived, ...)")
	formsListCmd.Flags().StringVarP(&formsListOutput, "output", "o", "", "output file (stdout if empty)")

	formsGetCmd.Flags().StringVar(&formGetStatus, "status", "published", "form status to fetch")
	formsGetCmd.Flags().IntVar(&formGetVersion, "version", 0, "specific form version (latest if zero)")
	formsGetCmd.Flags().StringVarP(&formGetOutput, "output", "o", "", "output file (stdout if empty)")

	formsCmd.AddCommand(formsListCmd, formsGetCmd)
	rootCmd.AddCommand(formsCmd)
}

// writeJSON renders v with the legacy three-space indent to a file or stdout.
func writeJSON(path string, v any) error {
	payload, err := json.MarshalIndent(v, "", "   ")
	if err != nil {
		return err
	}
	if path == "" {
		fmt.Println(string(payload))
		return nil
	}
	if err := os.WriteFile(path, append(payload, '\n'), 0o644); err != nil {
		return err
	}
	slog.Info("wrote output", "path", path)
	return nil
}
