package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newStartDateCmd() *cobra.Command {
	var flagClear bool

	cmd := &cobra.Command{
		Use:   "start-date [date]",
		Short: "Show or set the rotation start date",
		Long:  "Without arguments prints the start date. With a YYYY-MM-DD argument sets it; --clear unsets it and empties the schedule.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if flagClear {
				if _, err := client.Delete("/api/v1/settings/start-date"); err != nil {
					return fmt.Errorf("clear start date: %w", err)
				}
				fmt.Println("Start date cleared.")
				return nil
			}

			if len(args) == 1 {
				if _, err := client.Put("/api/v1/settings/start-date", map[string]any{"start_date": args[0]}); err != nil {
					return fmt.Errorf("set start date: %w", err)
				}
				fmt.Printf("Start date set: %s\n", args[0])
				return nil
			}

			resp, err := client.Get("/api/v1/settings/start-date")
			if err != nil {
				return fmt.Errorf("get start date: %w", err)
			}

			var data struct {
				StartDate string `json:"start_date"`
				Set       bool   `json:"set"`
			}
			if err := json.Unmarshal(resp.Data, &data); err != nil {
				return fmt.Errorf("parse response: %w", err)
			}

			if !data.Set {
				fmt.Println("Start date is not set; the schedule stays empty.")
				return nil
			}
			fmt.Printf("Start date: %s\n", data.StartDate)
			return nil
		},
	}

	cmd.Flags().BoolVar(&flagClear, "clear", false, "Unset the start date")

	return cmd
}
