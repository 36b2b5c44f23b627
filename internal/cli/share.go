package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newShareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "share",
		Short: "Print a share code for the current state",
		Long:  "Encodes the whole roster, overrides, colors and start date into one code that 'lich import' accepts.",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.Post("/api/v1/share/", nil)
			if err != nil {
				return fmt.Errorf("create share code: %w", err)
			}

			var data struct {
				Code string `json:"code"`
			}
			if err := json.Unmarshal(resp.Data, &data); err != nil {
				return fmt.Errorf("parse response: %w", err)
			}

			// Only the code goes to stdout so the output can be piped.
			fmt.Println(data.Code)
			return nil
		},
	}
}

func newImportCmd() *cobra.Command {
	var flagDryRun bool

	cmd := &cobra.Command{
		Use:   "import <code>",
		Short: "Replace all state from a share code",
		Long:  "Decodes a share code and replaces the whole planner state with it. With --dry-run only shows what the code contains.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if flagDryRun {
				resp, err := client.Post("/api/v1/share/preview", map[string]any{"code": args[0]})
				if err != nil {
					return fmt.Errorf("preview share code: %w", err)
				}

				var data struct {
					Teachers []struct {
						Name string `json:"name"`
					} `json:"teachers"`
					Overrides int    `json:"overrides"`
					Colors    int    `json:"colors"`
					StartDate string `json:"start_date"`
				}
				if err := json.Unmarshal(resp.Data, &data); err != nil {
					return fmt.Errorf("parse response: %w", err)
				}

				fmt.Printf("Share code contains: %d teachers, %d overrides, %d colors\n",
					len(data.Teachers), data.Overrides, data.Colors)
				for _, t := range data.Teachers {
					fmt.Printf("  - %s\n", t.Name)
				}
				if data.StartDate != "" {
					fmt.Printf("Start date: %s\n", data.StartDate)
				}
				return nil
			}

			resp, err := client.Post("/api/v1/share/import", map[string]any{"code": args[0]})
			if err != nil {
				return fmt.Errorf("import share code: %w", err)
			}

			var data struct {
				Teachers  int `json:"teachers"`
				Overrides int `json:"overrides"`
				Colors    int `json:"colors"`
			}
			if err := json.Unmarshal(resp.Data, &data); err != nil {
				return fmt.Errorf("parse response: %w", err)
			}

			fmt.Printf("State imported: %d teachers, %d overrides, %d colors\n",
				data.Teachers, data.Overrides, data.Colors)
			return nil
		},
	}

	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Only show what the code contains without importing")

	return cmd
}
