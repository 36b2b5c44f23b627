package cli

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/DuyDuc2014/l-ch/pkg/model"
)

func newOverridesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "overrides",
		Short: "List manual overrides",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.Get("/api/v1/overrides/")
			if err != nil {
				return fmt.Errorf("list overrides: %w", err)
			}

			var data struct {
				Overrides map[string]model.Override `json:"overrides"`
			}
			if err := json.Unmarshal(resp.Data, &data); err != nil {
				return fmt.Errorf("parse response: %w", err)
			}

			if len(data.Overrides) == 0 {
				fmt.Println("No overrides set.")
				return nil
			}

			dates := make([]string, 0, len(data.Overrides))
			for d := range data.Overrides {
				dates = append(dates, d)
			}
			sort.Strings(dates)

			fmt.Printf("%-12s  %-8s  %s\n", "DATE", "KIND", "TEACHER")
			for _, d := range dates {
				ov := data.Overrides[d]
				fmt.Printf("%-12s  %-8s  %s\n", d, ov.Kind, ov.TeacherID)
			}

			return nil
		},
	}
}

func newOverrideCmd() *cobra.Command {
	var flagClear bool

	cmd := &cobra.Command{
		Use:   "override <date> [teacher_id|none]",
		Short: "Force or clear the assignment for one day",
		Long:  "Pins a date to a teacher, forces it empty with 'none', or removes the override with --clear.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := args[0]

			if flagClear {
				if _, err := client.Delete("/api/v1/overrides/" + date); err != nil {
					return fmt.Errorf("clear override: %w", err)
				}
				fmt.Printf("Override cleared: %s\n", date)
				return nil
			}

			if len(args) < 2 {
				return fmt.Errorf("missing assignee: pass a teacher id, 'none', or --clear")
			}

			body := map[string]any{"kind": "teacher", "teacher_id": args[1]}
			if args[1] == "none" {
				body = map[string]any{"kind": "empty"}
			}
			if _, err := client.Put("/api/v1/overrides/"+date, body); err != nil {
				return fmt.Errorf("set override: %w", err)
			}

			fmt.Printf("Override set: %s -> %s\n", date, args[1])
			return nil
		},
	}

	cmd.Flags().BoolVar(&flagClear, "clear", false, "Remove the override for the date")

	return cmd
}
