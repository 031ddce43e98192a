package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/export"
	"github.com/spf13/cobra"
)

// NewLeaveCommand groups the leave request commands.
func NewLeaveCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "leave",
		Aliases: []string{"leaves"},
		Short:   "Apply for, review and decide leave requests",
	}

	cmd.AddCommand(newLeaveListCommand(rootOpts))
	cmd.AddCommand(newLeaveApplyCommand(rootOpts))
	cmd.AddCommand(newLeaveDecideCommand(rootOpts, "approve", leave.StatusApproved))
	cmd.AddCommand(newLeaveDecideCommand(rootOpts, "reject", leave.StatusRejected))
	cmd.AddCommand(newLeaveExportCommand(rootOpts))

	return cmd
}

func leavesText(w io.Writer, list []leave.Leave) error {
	rows := make([][]string, 0, len(list))
	for _, l := range list {
		rows = append(rows, []string{
			l.ID.String(),
			l.EmployeeID.String(),
			l.FromDate,
			l.ToDate,
			strconv.Itoa(l.DurationDays()),
			string(l.Status),
			l.Reason,
		})
	}
	return table(w, []string{"ID", "EMPLOYEE", "FROM", "TO", "DAYS", "STATUS", "REASON"}, rows)
}

type leaveListing struct {
	Leaves []leave.Leave `json:"leaves" yaml:"leaves"`
	Stats  leave.Stats   `json:"stats" yaml:"stats"`
}

func newLeaveListCommand(rootOpts *RootOptions) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List leave requests",
		Long: `List leave requests. HRs and admins see their queue, employees see their
own requests. Totals are printed underneath.

Example:
  hrdash leave list
  hrdash leave list --status pending`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, "failed to list leave requests", func(ctx context.Context, out *OutputFormatter) error {
				if _, err := rootOpts.authorizeAny(user.PermissionLeaveViewOwn, user.PermissionLeaveViewAll); err != nil {
					return err
				}
				list, err := rootOpts.App.Leaves.Refresh(ctx)
				if err != nil {
					return err
				}
				if status != "" {
					list = filterLeaves(list, leave.Status(status))
				}
				result := leaveListing{Leaves: list, Stats: rootOpts.App.Leaves.Stats()}
				return out.Render(result, func(w io.Writer) error {
					if err := leavesText(w, list); err != nil {
						return err
					}
					s := result.Stats
					_, err := fmt.Fprintf(w, "\nTotal %d, pending %d, approved %d, rejected %d\n", s.Total, s.Pending, s.Approved, s.Rejected)
					return err
				})
			})
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "only show requests with this status")

	return cmd
}

func filterLeaves(list []leave.Leave, status leave.Status) []leave.Leave {
	want := leave.Status(strings.ToUpper(string(status)))
	out := make([]leave.Leave, 0, len(list))
	for _, l := range list {
		if l.Status == want {
			out = append(out, l)
		}
	}
	return out
}

func newLeaveApplyCommand(rootOpts *RootOptions) *cobra.Command {
	var req leave.ApplyRequest

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Request leave",
		Long: `Submit a leave request. It starts PENDING with today as the request date.

Example:
  hrdash leave apply --from 2024-06-20 --to 2024-06-21 --reason "Family event"`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, "failed to apply for leave", func(ctx context.Context, out *OutputFormatter) error {
				created, err := rootOpts.App.Leaves.Apply(ctx, req)
				if err != nil {
					return err
				}
				return out.Render(created, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "Leave request %s submitted for %d day(s), status %s\n",
						created.ID, created.DurationDays(), created.Status)
					return err
				})
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.FromDate, "from", "", "first day of leave (YYYY-MM-DD)")
	f.StringVar(&req.ToDate, "to", "", "last day of leave (YYYY-MM-DD)")
	f.StringVar(&req.Reason, "reason", "", "reason for the leave")
	f.StringVar(&req.EmployeeID, "employee", "", "employee id, defaults to you")
	f.BoolVar(&req.OverrideAutoReject, "override-auto-reject", false, "keep the request open past its start date")

	return cmd
}

func newLeaveDecideCommand(rootOpts *RootOptions, use string, decision leave.Status) *cobra.Command {
	return &cobra.Command{
		Use:           use + " <leave-id>",
		Short:         fmt.Sprintf("Mark a pending leave request %s", decision),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, "failed to "+use+" leave", func(ctx context.Context, out *OutputFormatter) error {
				if _, err := rootOpts.authorize(user.PermissionLeaveApprove); err != nil {
					return err
				}
				updated, err := rootOpts.App.Leaves.Decide(ctx, args[0], decision)
				if err != nil {
					return err
				}
				return out.Render(updated, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "Leave request %s is now %s\n", updated.ID, updated.Status)
					return err
				})
			})
		},
	}
}

func newLeaveExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "export",
		Short:         "Write leave requests to an .xlsx file",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, "failed to export leave requests", func(ctx context.Context, out *OutputFormatter) error {
				if _, err := opts.authorizeAny(user.PermissionLeaveViewOwn, user.PermissionLeaveViewAll); err != nil {
					return err
				}
				list, err := opts.App.Leaves.Refresh(ctx)
				if err != nil {
					return err
				}
				name := opts.Output
				if name == "" {
					name = exportName("leaves", opts.App.Now())
				}
				path, err := export.Save(ctx, opts.App.Files, name, export.Leaves(list))
				if err != nil {
					return err
				}
				return out.Render(map[string]any{"file": path, "rows": len(list)}, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "Exported %s leave requests to %s\n", formatCount(len(list)), path)
					return err
				})
			})
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "file name inside the export directory")

	return cmd
}
