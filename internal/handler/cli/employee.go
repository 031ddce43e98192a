package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/export"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/validator"
	"github.com/spf13/cobra"
)

// NewEmployeeCommand groups the employee directory commands.
func NewEmployeeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "employee",
		Aliases: []string{"employees"},
		Short:   "List and manage employees",
	}

	cmd.AddCommand(newEmployeeListCommand(rootOpts))
	cmd.AddCommand(newEmployeeGetCommand(rootOpts))
	cmd.AddCommand(newEmployeeAddCommand(rootOpts))
	cmd.AddCommand(newEmployeeUpdateCommand(rootOpts))
	cmd.AddCommand(newEmployeeDeleteCommand(rootOpts))
	cmd.AddCommand(newEmployeeExportCommand(rootOpts))

	return cmd
}

func employeesText(w io.Writer, list []employee.Employee) error {
	rows := make([][]string, 0, len(list))
	for _, e := range list {
		rows = append(rows, []string{
			e.ID.String(),
			e.DisplayName(),
			e.Email,
			orDash(e.Department.Name),
			orDash(e.Role.Name),
			formatMoney(e.Salary),
			orDash(e.Status),
		})
	}
	if err := table(w, []string{"ID", "NAME", "EMAIL", "DEPARTMENT", "ROLE", "SALARY", "STATUS"}, rows); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s employees\n", formatCount(len(list)))
	return err
}

func employeeText(w io.Writer, e employee.Employee) error {
	joined := "-"
	if t, ok := e.Joined(); ok {
		joined = t.Format(validator.DateLayout)
	}
	rows := [][]string{
		{"ID", e.ID.String()},
		{"Name", e.DisplayName()},
		{"Email", e.Email},
		{"Phone", orDash(e.PhoneNumber)},
		{"Department", orDash(e.Department.Name)},
		{"Role", orDash(e.Role.Name)},
		{"Joined", joined},
		{"Salary", formatMoney(e.Salary)},
		{"Status", orDash(e.Status)},
		{"HR", orDash(e.HRID.String())},
		{"Address", orDash(e.CurrentAddress)},
		{"College", orDash(e.CollegeName)},
	}
	if e.InternshipDuration != nil {
		rows = append(rows, []string{"Internship", fmt.Sprintf("%d months", *e.InternshipDuration)})
	}
	return table(w, []string{"FIELD", "VALUE"}, rows)
}

type EmployeeListOptions struct {
	*RootOptions
	AcrossHRs bool
}

func newEmployeeListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EmployeeListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the employees visible to your role",
		Long: `List employees. Admins see everyone, HRs see the employees assigned to
them and employees see their team.

Example:
  hrdash employee list
  hrdash employee list --across-hrs --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, "failed to list employees", func(ctx context.Context, out *OutputFormatter) error {
				list, err := listEmployees(ctx, opts)
				if err != nil {
					return err
				}
				return out.Render(list, func(w io.Writer) error {
					return employeesText(w, list)
				})
			})
		},
	}

	cmd.Flags().BoolVar(&opts.AcrossHRs, "across-hrs", false, "admin only: employees of every HR you referred")

	return cmd
}

func listEmployees(ctx context.Context, opts *EmployeeListOptions) ([]employee.Employee, error) {
	if opts.AcrossHRs {
		if _, err := opts.authorize(user.PermissionHRView); err != nil {
			return nil, err
		}
		return opts.App.Employees.ListAcrossAdminHRs(ctx)
	}
	if _, err := opts.App.Sessions.Current(); err != nil {
		return nil, err
	}
	return opts.App.Employees.Refresh(ctx)
}

func newEmployeeGetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "get <employee-id>",
		Short:         "Show full details of one employee",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, "failed to load employee", func(ctx context.Context, out *OutputFormatter) error {
				e, err := rootOpts.App.Employees.Get(ctx, args[0])
				if err != nil {
					return err
				}
				return out.Render(e, func(w io.Writer) error {
					return employeeText(w, e)
				})
			})
		},
	}
}

type EmployeeAddOptions struct {
	*RootOptions
	Request     employee.CreateRequest
	JoiningDate string
	Internship  int
}

func newEmployeeAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EmployeeAddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an employee",
		Long: `Create an employee. Giving --username (with --password) also creates a
login; documents are uploaded with repeated --doc field=path flags.

Example:
  hrdash employee add --name "Budi Santoso" --email budi@example.com \
    --role Designer --department Engineering --salary 25000
  hrdash employee add ... --username budi --password secret1 --doc resume=./cv.pdf`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, "failed to create employee", func(ctx context.Context, out *OutputFormatter) error {
				if _, err := opts.authorize(user.PermissionEmployeeManage); err != nil {
					return err
				}
				req := opts.Request
				if opts.JoiningDate != "" {
					t, ok := validator.IsValidDate(opts.JoiningDate)
					if !ok {
						return validator.ValidationErrors{{Field: "joined", Message: "joined must be in YYYY-MM-DD format"}}
					}
					req.JoiningDate = t.UnixMilli()
				}
				if cmd.Flags().Changed("internship") {
					months := opts.Internship
					req.InternshipDuration = &months
				}
				if err := req.Validate(); err != nil {
					return err
				}

				created, err := opts.App.Employees.Create(ctx, req)
				if err != nil {
					return err
				}
				return out.Render(created, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "Created employee %s (%s)\n", created.DisplayName(), created.ID)
					return err
				})
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.Request.FullName, "name", "", "full name")
	f.StringVar(&opts.Request.Email, "email", "", "email address")
	f.StringVar(&opts.Request.PhoneNumber, "phone", "", "phone number")
	f.StringVar(&opts.Request.WhatsappNumber, "whatsapp", "", "WhatsApp number")
	f.StringVar(&opts.Request.LinkedInURL, "linkedin", "", "LinkedIn profile URL")
	f.StringVar(&opts.Request.CurrentAddress, "address", "", "current address")
	f.StringVar(&opts.Request.PermanentAddress, "permanent-address", "", "permanent address")
	f.StringVar(&opts.Request.CollegeName, "college", "", "college name")
	f.StringVar(&opts.Request.Role, "role", "", "job role")
	f.StringVar(&opts.Request.Department, "department", "", "department")
	f.StringVar(&opts.JoiningDate, "joined", "", "joining date (YYYY-MM-DD)")
	f.IntVar(&opts.Internship, "internship", 0, "internship duration in months")
	f.StringVar(&opts.Request.Status, "status", "", "employment status")
	f.Float64Var(&opts.Request.Salary, "salary", 0, "monthly salary")
	f.StringVar(&opts.Request.HRID, "hr", "", "assigned HR id (defaults to you when you are an HR)")
	f.StringVar(&opts.Request.Username, "username", "", "login username")
	f.StringVar(&opts.Request.Password, "password", "", "login password")
	f.StringVar(&opts.Request.ReferenceID, "reference", "", "reference id")
	f.StringToStringVar(&opts.Request.Documents, "doc", nil, "document upload as field=path, repeatable")

	return cmd
}

type EmployeeUpdateOptions struct {
	*RootOptions
	FullName       string
	Email          string
	PhoneNumber    string
	CurrentAddress string
	Role           string
	Department     string
	Status         string
	Salary         float64
	HRID           string
}

func newEmployeeUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EmployeeUpdateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "update <employee-id>",
		Short: "Change selected fields of an employee",
		Long: `Change the fields given as flags; everything else is left as is.

Example:
  hrdash employee update 42 --salary 32000 --department Finance`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, "failed to update employee", func(ctx context.Context, out *OutputFormatter) error {
				if _, err := opts.authorize(user.PermissionEmployeeManage); err != nil {
					return err
				}
				req := opts.request(cmd)
				if req.Empty() {
					return NewExitError(ExitCommandError, "nothing to update, pass at least one field flag")
				}
				updated, err := opts.App.Employees.Update(ctx, args[0], req)
				if err != nil {
					return err
				}
				return out.Render(updated, func(w io.Writer) error {
					return employeeText(w, updated)
				})
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.FullName, "name", "", "full name")
	f.StringVar(&opts.Email, "email", "", "email address")
	f.StringVar(&opts.PhoneNumber, "phone", "", "phone number")
	f.StringVar(&opts.CurrentAddress, "address", "", "current address")
	f.StringVar(&opts.Role, "role", "", "job role")
	f.StringVar(&opts.Department, "department", "", "department")
	f.StringVar(&opts.Status, "status", "", "employment status")
	f.Float64Var(&opts.Salary, "salary", 0, "monthly salary")
	f.StringVar(&opts.HRID, "hr", "", "assigned HR id")

	return cmd
}

// request keeps only the flags the user actually set.
func (o *EmployeeUpdateOptions) request(cmd *cobra.Command) employee.UpdateRequest {
	var req employee.UpdateRequest
	changed := cmd.Flags().Changed
	str := func(flag string, v string, dst **string) {
		if changed(flag) {
			*dst = &v
		}
	}
	str("name", o.FullName, &req.FullName)
	str("email", o.Email, &req.Email)
	str("phone", o.PhoneNumber, &req.PhoneNumber)
	str("address", o.CurrentAddress, &req.CurrentAddress)
	str("role", o.Role, &req.Role)
	str("department", o.Department, &req.Department)
	str("status", o.Status, &req.Status)
	str("hr", o.HRID, &req.HRID)
	if changed("salary") {
		salary := o.Salary
		req.Salary = &salary
	}
	return req
}

func newEmployeeDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "delete <employee-id>",
		Short:         "Delete an employee",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, "failed to delete employee", func(ctx context.Context, out *OutputFormatter) error {
				if _, err := rootOpts.authorize(user.PermissionEmployeeManage); err != nil {
					return err
				}
				if err := rootOpts.App.Employees.Delete(ctx, args[0]); err != nil {
					return err
				}
				return out.Render(map[string]string{"deleted": args[0]}, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "Deleted employee %s\n", args[0])
					return err
				})
			})
		},
	}
}

type ExportOptions struct {
	*RootOptions
	Output string
}

func exportName(prefix string, now time.Time) string {
	return prefix + "-" + now.Format("20060102-150405") + ".xlsx"
}

func newEmployeeExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "export",
		Short:         "Write the employee roster to an .xlsx file",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, "failed to export employees", func(ctx context.Context, out *OutputFormatter) error {
				if _, err := opts.authorize(user.PermissionEmployeeViewAll); err != nil {
					return err
				}
				list, err := opts.App.Employees.Refresh(ctx)
				if err != nil {
					return err
				}
				name := opts.Output
				if name == "" {
					name = exportName("employees", opts.App.Now())
				}
				path, err := export.Save(ctx, opts.App.Files, name, export.Employees(list))
				if err != nil {
					return err
				}
				return out.Render(map[string]string{"file": path, "rows": strconv.Itoa(len(list))}, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "Exported %s employees to %s\n", formatCount(len(list)), path)
					return err
				})
			})
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "file name inside the export directory")

	return cmd
}
