package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newColorCmd() *cobra.Command {
	var flagClear bool

	cmd := &cobra.Command{
		Use:   "color <date> [#rrggbb]",
		Short: "Set or clear a day color",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := args[0]

			if flagClear {
				if _, err := client.Delete("/api/v1/colors/" + date); err != nil {
					return fmt.Errorf("clear color: %w", err)
				}
				fmt.Printf("Color cleared: %s\n", date)
				return nil
			}

			if len(args) < 2 {
				return fmt.Errorf("missing color: pass #rgb or #rrggbb, or --clear")
			}

			if _, err := client.Put("/api/v1/colors/"+date, map[string]any{"color": args[1]}); err != nil {
				return fmt.Errorf("set color: %w", err)
			}

			fmt.Printf("Color set: %s -> %s\n", date, args[1])
			return nil
		},
	}

	cmd.Flags().BoolVar(&flagClear, "clear", false, "Remove the color for the date")

	return cmd
}
