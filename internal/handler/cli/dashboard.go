package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/dashboard"
	"github.com/spf13/cobra"
)

func NewDashboardCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "dashboard",
		Short:         "Show the overview for the signed-in role",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, "failed to load dashboard", func(ctx context.Context, out *OutputFormatter) error {
				overview, err := rootOpts.App.Dashboard.Overview(ctx)
				if err != nil {
					return err
				}
				return out.Render(overview, func(w io.Writer) error {
					return overviewText(w, overview)
				})
			})
		},
	}
}

func overviewText(w io.Writer, o dashboard.Overview) error {
	fmt.Fprintf(w, "%s\n\n", o.Greeting)

	rows := make([][]string, 0, len(o.Cards))
	for _, c := range o.Cards {
		value := formatCount(int(c.Value))
		if c.Currency {
			value = formatMoney(c.Value)
		}
		rows = append(rows, []string{c.Title, value, c.Description})
	}
	if err := table(w, []string{"METRIC", "VALUE", "NOTE"}, rows); err != nil {
		return err
	}

	if o.Attendance != nil {
		fmt.Fprintf(w, "\nAttendance %s to %s: %d present, %d absent, %d half day\n",
			o.Attendance.StartDate, o.Attendance.EndDate,
			o.Attendance.PresentCount, o.Attendance.AbsentCount, o.Attendance.HalfDayCount)
	}
	return nil
}
