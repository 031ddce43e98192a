package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/hr"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/validator"
	"github.com/spf13/cobra"
)

// NewHRCommand groups the admin commands that manage HR accounts.
func NewHRCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "hr",
		Aliases: []string{"hrs"},
		Short:   "List and manage HR accounts (admin)",
	}

	cmd.AddCommand(newHRListCommand(rootOpts))
	cmd.AddCommand(newHRGetCommand(rootOpts))
	cmd.AddCommand(newHRAddCommand(rootOpts))
	cmd.AddCommand(newHRUpdateCommand(rootOpts))
	cmd.AddCommand(newHRDeleteCommand(rootOpts))

	return cmd
}

func hrsText(w io.Writer, list []hr.HR) error {
	rows := make([][]string, 0, len(list))
	for _, h := range list {
		rows = append(rows, []string{h.ID.String(), h.FullName, h.Email, orDash(h.Department), string(h.Status)})
	}
	return table(w, []string{"ID", "NAME", "EMAIL", "DEPARTMENT", "STATUS"}, rows)
}

func newHRListCommand(rootOpts *RootOptions) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List HRs",
		Long: `List HRs. Admins see the HRs they referred; --status lists every HR with
that status instead.

Example:
  hrdash hr list
  hrdash hr list --status inactive`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, "failed to list HRs", func(ctx context.Context, out *OutputFormatter) error {
				var (
					list []hr.HR
					err  error
				)
				if status != "" {
					list, err = rootOpts.App.HRs.ListByStatus(ctx, hr.Status(status))
				} else {
					list, err = rootOpts.App.HRs.Refresh(ctx)
				}
				if err != nil {
					return err
				}
				return out.Render(list, func(w io.Writer) error {
					return hrsText(w, list)
				})
			})
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status (active|inactive)")

	return cmd
}

func newHRGetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "get <hr-id>",
		Short:         "Show one HR",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, "failed to load HR", func(ctx context.Context, out *OutputFormatter) error {
				h, err := rootOpts.App.HRs.Get(ctx, args[0])
				if err != nil {
					return err
				}
				return out.Render(h, func(w io.Writer) error {
					return hrsText(w, []hr.HR{h})
				})
			})
		},
	}
}

func newHRAddCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		req     hr.CreateRequest
		status  string
		joining string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register an HR referred by you",
		Long: `Register an HR account. The HR is recorded as referred by the signed-in
admin and starts ACTIVE unless --status says otherwise.

Example:
  hrdash hr add --name "Sari Dewi" --email sari@example.com \
    --department People --username sari --password secret1`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, "failed to create HR", func(ctx context.Context, out *OutputFormatter) error {
				req.Status = hr.Status(status)
				if joining != "" {
					t, ok := validator.IsValidDate(joining)
					if !ok {
						return validator.ValidationErrors{{Field: "joined", Message: "joined must be in YYYY-MM-DD format"}}
					}
					req.JoiningDate = t.UnixMilli()
				}
				created, err := rootOpts.App.HRs.Create(ctx, req)
				if err != nil {
					return err
				}
				return out.Render(created, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "Created HR %s (%s)\n", created.FullName, created.ID)
					return err
				})
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.FullName, "name", "", "full name")
	f.StringVar(&req.Email, "email", "", "email address")
	f.StringVar(&req.PhoneNumber, "phone", "", "phone number")
	f.StringVar(&req.Department, "department", "", "department")
	f.StringVar(&joining, "joined", "", "joining date (YYYY-MM-DD)")
	f.StringVar(&status, "status", "", "ACTIVE or INACTIVE")
	f.StringVar(&req.Username, "username", "", "login username")
	f.StringVar(&req.Password, "password", "", "login password")

	return cmd
}

func newHRUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	var fullName, email, phone, department, status string

	cmd := &cobra.Command{
		Use:           "update <hr-id>",
		Short:         "Change selected fields of an HR",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, "failed to update HR", func(ctx context.Context, out *OutputFormatter) error {
				var req hr.UpdateRequest
				changed := cmd.Flags().Changed
				if changed("name") {
					req.FullName = &fullName
				}
				if changed("email") {
					req.Email = &email
				}
				if changed("phone") {
					req.PhoneNumber = &phone
				}
				if changed("department") {
					req.Department = &department
				}
				if changed("status") {
					st, err := hr.ParseStatus(status)
					if err != nil {
						return err
					}
					req.Status = &st
				}

				updated, err := rootOpts.App.HRs.Update(ctx, args[0], req)
				if err != nil {
					return err
				}
				return out.Render(updated, func(w io.Writer) error {
					return hrsText(w, []hr.HR{updated})
				})
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&fullName, "name", "", "full name")
	f.StringVar(&email, "email", "", "email address")
	f.StringVar(&phone, "phone", "", "phone number")
	f.StringVar(&department, "department", "", "department")
	f.StringVar(&status, "status", "", "ACTIVE or INACTIVE")

	return cmd
}

func newHRDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "delete <hr-id>",
		Short:         "Delete an HR; their employees become unassigned",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, "failed to delete HR", func(ctx context.Context, out *OutputFormatter) error {
				if err := rootOpts.App.HRs.Delete(ctx, args[0]); err != nil {
					return err
				}
				return out.Render(map[string]string{"deleted": args[0]}, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "Deleted HR %s\n", args[0])
					return err
				})
			})
		},
	}
}
