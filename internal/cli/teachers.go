package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DuyDuc2014/l-ch/pkg/model"
)

func newTeachersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "teachers",
		Short: "List the roster in rotation order",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.Get("/api/v1/teachers/")
			if err != nil {
				return fmt.Errorf("list teachers: %w", err)
			}

			var data struct {
				Teachers []model.Teacher `json:"teachers"`
			}
			if err := json.Unmarshal(resp.Data, &data); err != nil {
				return fmt.Errorf("parse response: %w", err)
			}

			if len(data.Teachers) == 0 {
				fmt.Println("No teachers on the roster.")
				return nil
			}

			fmt.Printf("%-4s  %-42s  %s\n", "POS", "ID", "NAME")
			for _, t := range data.Teachers {
				fmt.Printf("%-4d  %-42s  %s\n", t.Position, t.ID, t.Name)
			}

			return nil
		},
	}
}

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add a teacher to the end of the rotation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.Post("/api/v1/teachers/", map[string]any{"name": args[0]})
			if err != nil {
				return fmt.Errorf("add teacher: %w", err)
			}

			var t model.Teacher
			if err := json.Unmarshal(resp.Data, &t); err != nil {
				return fmt.Errorf("parse response: %w", err)
			}

			fmt.Printf("Teacher added: %s (%s)\n", t.Name, t.ID)
			return nil
		},
	}
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <teacher_id>",
		Short: "Remove a teacher from the rotation",
		Long:  "Removes a teacher. Overrides naming the teacher stay stored but stop assigning anyone.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := client.Delete("/api/v1/teachers/" + args[0]); err != nil {
				return fmt.Errorf("remove teacher: %w", err)
			}

			fmt.Printf("Teacher removed: %s\n", args[0])
			return nil
		},
	}
}

func newReorderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reorder <teacher_id>...",
		Short: "Set a new rotation order",
		Long:  "Takes every teacher id exactly once, in the desired rotation order.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.Put("/api/v1/teachers/order", map[string]any{"ids": args})
			if err != nil {
				return fmt.Errorf("reorder teachers: %w", err)
			}

			var data struct {
				Teachers []model.Teacher `json:"teachers"`
			}
			if err := json.Unmarshal(resp.Data, &data); err != nil {
				return fmt.Errorf("parse response: %w", err)
			}

			fmt.Println("New rotation order:")
			for _, t := range data.Teachers {
				fmt.Printf("  %d. %s (%s)\n", t.Position+1, t.Name, t.ID)
			}

			return nil
		},
	}
}
