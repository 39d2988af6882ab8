package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/samuelmholley1/ukiahumc-signups/pkg/calendar"
	"github.com/samuelmholley1/ukiahumc-signups/pkg/store"
)

// CalendarCmd creates the calendar command
func CalendarCmd(app *AppContext) *cobra.Command {
	var period string

	cmd := &cobra.Command{
		Use:   "calendar <signup_type>",
		Short: "Print the generated slot template for a signup type and period",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			signupType, err := store.ParseSignupType(args[0])
			if err != nil {
				return err
			}

			p := calendar.ParsePeriod(period)
			slots := calendar.Template(signupType, p)

			fmt.Printf("\n%s slots for Q%d-%d (%d services)\n\n", signupType.Label(), p.Quarter, p.Year, len(slots))
			for _, slot := range slots {
				roleNames := make([]string, len(slot.Roles))
				for i, r := range slot.Roles {
					roleNames[i] = string(r)
				}
				fmt.Printf("  %s  %-28s %s\n", slot.Date, slot.DisplayDate, strings.Join(roleNames, ", "))
				if slot.Notes != "" {
					fmt.Printf("              %s\n", slot.Notes)
				}
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().StringVarP(&period, "period", "p", "", "Period token, e.g. Q4-2025 (default: current quarter)")

	return cmd
}
