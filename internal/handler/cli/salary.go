package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/user"
	"github.com/spf13/cobra"
)

// NewSalaryCommand groups salary and salary-slip commands.
func NewSalaryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "salary",
		Aliases: []string{"payroll"},
		Short:   "Salary amounts and salary slips",
	}

	cmd.AddCommand(newSalaryGenerateCommand(rootOpts))
	cmd.AddCommand(newSalaryAmountCommand(rootOpts))
	cmd.AddCommand(newSalaryDownloadCommand(rootOpts))

	return cmd
}

type MonthOptions struct {
	*RootOptions
	Month int
	Year  int
}

// defaults fills the current month and year when the flags were left out.
func (o *MonthOptions) defaults() {
	now := o.App.Now()
	if o.Month == 0 {
		o.Month = int(now.Month())
	}
	if o.Year == 0 {
		o.Year = now.Year()
	}
}

func (o *MonthOptions) bindFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&o.Month, "month", 0, "month 1-12, defaults to the current month")
	cmd.Flags().IntVar(&o.Year, "year", 0, "four digit year, defaults to the current year")
}

func newSalaryGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MonthOptions{RootOptions: rootOpts}
	var incentive float64

	cmd := &cobra.Command{
		Use:   "generate <employee-id>",
		Short: "Generate a salary slip",
		Long: `Generate the salary slip of one employee for a month, optionally with an
incentive on top of the attendance-based salary.

Example:
  hrdash salary generate 42 --month 6 --year 2024 --incentive 150`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, "failed to generate salary slip", func(ctx context.Context, out *OutputFormatter) error {
				if _, err := opts.authorize(user.PermissionSalaryGenerate); err != nil {
					return err
				}
				opts.defaults()
				req := payroll.GenerateRequest{EmployeeID: args[0], Month: opts.Month, Year: opts.Year, Incentive: incentive}
				if err := opts.App.Payroll.Generate(ctx, req); err != nil {
					return err
				}
				period := payroll.Period(fmt.Sprintf("%04d-%02d", req.Year, req.Month))
				return out.Render(map[string]any{"employeeId": req.EmployeeID, "period": period, "incentive": incentive}, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "Salary slip for %s generated for employee %s\n", period.Label(), req.EmployeeID)
					return err
				})
			})
		},
	}
	opts.bindFlags(cmd)
	cmd.Flags().Float64Var(&incentive, "incentive", 0, "incentive added to the slip")

	return cmd
}

func newSalaryAmountCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MonthOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "amount [employee-id]",
		Short:         "Show the salary earned in a month",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, "failed to load salary", func(ctx context.Context, out *OutputFormatter) error {
				if _, err := opts.authorizeAny(user.PermissionSalaryViewOwn, user.PermissionSalaryGenerate); err != nil {
					return err
				}
				opts.defaults()
				q := payroll.SalaryQuery{Month: opts.Month, Year: opts.Year}
				if len(args) == 1 {
					q.EmployeeID = args[0]
				}
				amount, err := opts.App.Payroll.Salary(ctx, q)
				if err != nil {
					return err
				}
				return out.Render(map[string]any{"month": q.Month, "year": q.Year, "salary": amount}, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "Salary for %02d/%d: %s\n", q.Month, q.Year, formatMoney(amount))
					return err
				})
			})
		},
	}
	opts.bindFlags(cmd)

	return cmd
}

func newSalaryDownloadCommand(rootOpts *RootOptions) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "download [employee-id]",
		Short: "Save a salary slip PDF into the export directory",
		Long: `Download the salary slip for a month (YYYY-MM). Without --month the
previous month is used, the most recent one a slip can exist for.

Example:
  hrdash salary download --month 2024-06
  hrdash salary download 42 --month 2024-05`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, "failed to download salary slip", func(ctx context.Context, out *OutputFormatter) error {
				if _, err := rootOpts.authorizeAny(user.PermissionSalaryViewOwn, user.PermissionSalaryGenerate); err != nil {
					return err
				}
				period := payroll.Period(month)
				if period == "" {
					period = payroll.AvailablePeriods(rootOpts.App.Now())[0]
				}
				var employeeID string
				if len(args) == 1 {
					employeeID = args[0]
				}
				path, err := rootOpts.App.Payroll.Download(ctx, employeeID, period)
				if err != nil {
					return err
				}
				return out.Render(map[string]string{"file": path, "period": string(period)}, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "Salary slip for %s saved to %s\n", period.Label(), path)
					return err
				})
			})
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "slip month (YYYY-MM)")

	return cmd
}
