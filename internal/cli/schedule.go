package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

func newScheduleCmd() *cobra.Command {
	var (
		flagYear  int
		flagMonth int
		flagCSV   bool
		flagJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Show the generated schedule for one month",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now().UTC()
			if flagYear == 0 {
				flagYear = now.Year()
			}
			if flagMonth == 0 {
				flagMonth = int(now.Month())
			}
			if flagCSV && flagJSON {
				return fmt.Errorf("--csv and --json are mutually exclusive")
			}

			query := fmt.Sprintf("year=%d&month=%d", flagYear, flagMonth)
			if flagCSV || flagJSON {
				format := "csv"
				if flagJSON {
					format = "json"
				}
				if err := client.Download("/api/v1/schedule/export?"+query+"&format="+format, os.Stdout); err != nil {
					return fmt.Errorf("export schedule: %w", err)
				}
				return nil
			}

			resp, err := client.Get("/api/v1/schedule?" + query)
			if err != nil {
				return fmt.Errorf("get schedule: %w", err)
			}

			var data struct {
				Year  int `json:"year"`
				Month int `json:"month"`
				Days  []struct {
					Date        string `json:"date"`
					Weekday     string `json:"weekday"`
					TeacherName string `json:"teacher_name"`
					Overridden  bool   `json:"overridden"`
				} `json:"days"`
			}
			if err := json.Unmarshal(resp.Data, &data); err != nil {
				return fmt.Errorf("parse response: %w", err)
			}

			fmt.Printf("Schedule for %04d-%02d\n\n", data.Year, data.Month)
			fmt.Printf("%-12s  %-10s  %s\n", "DATE", "WEEKDAY", "TEACHER")
			overridden := 0
			for _, d := range data.Days {
				name := d.TeacherName
				if name == "" {
					name = "-"
				}
				if d.Overridden {
					name += " *"
					overridden++
				}
				fmt.Printf("%-12s  %-10s  %s\n", d.Date, d.Weekday, name)
			}
			if overridden > 0 {
				fmt.Println("\n* overridden")
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&flagYear, "year", 0, "Year (defaults to the current year)")
	cmd.Flags().IntVar(&flagMonth, "month", 0, "Month 1-12 (defaults to the current month)")
	cmd.Flags().BoolVar(&flagCSV, "csv", false, "Write the month as CSV to stdout")
	cmd.Flags().BoolVar(&flagJSON, "json", false, "Write the month as JSON to stdout")

	return cmd
}
