package cli

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/session"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "text" | "json" | "yaml"
	App     *App
}

var ValidFormats = []string{"text", "json", "yaml"}

// NewRootCommand creates the root command for hrdash.
func NewRootCommand(app *App) *cobra.Command {
	opts := &RootOptions{App: app}

	cmd := &cobra.Command{
		Use:   "hrdash",
		Short: "HR dashboard for attendance, leave and payroll",
		Long: `hrdash is a terminal dashboard for an HR management backend.

Sign in once with "hrdash login"; the session is kept on disk and reused by
every other command until "hrdash logout".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !validator.IsInSlice(opts.Format, ValidFormats) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")

	cmd.AddCommand(NewLoginCommand(opts))
	cmd.AddCommand(NewLogoutCommand(opts))
	cmd.AddCommand(NewWhoamiCommand(opts))
	cmd.AddCommand(NewPingCommand(opts))
	cmd.AddCommand(NewDashboardCommand(opts))
	cmd.AddCommand(NewEmployeeCommand(opts))
	cmd.AddCommand(NewDepartmentCommand(opts))
	cmd.AddCommand(NewRoleCommand(opts))
	cmd.AddCommand(NewHRCommand(opts))
	cmd.AddCommand(NewAttendanceCommand(opts))
	cmd.AddCommand(NewLeaveCommand(opts))
	cmd.AddCommand(NewSalaryCommand(opts))

	return cmd
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

// run executes fn and reports its error once, in the selected format.
func (o *RootOptions) run(cmd *cobra.Command, message string, fn func(ctx context.Context, out *OutputFormatter) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := o.formatter(cmd)
	if err := fn(ctx, out); err != nil {
		wrapped := classify(message, err)
		out.ReportError(wrapped)
		return wrapped
	}
	return nil
}

// authorize fails before any request when the session lacks perm.
func (o *RootOptions) authorize(perm user.Permission) (session.Session, error) {
	return session.Authorize(o.App.Sessions, perm)
}

// authorizeAny passes when the session holds at least one of perms.
func (o *RootOptions) authorizeAny(perms ...user.Permission) (session.Session, error) {
	sess, err := o.App.Sessions.Current()
	if err != nil {
		return session.Session{}, err
	}
	for _, p := range perms {
		if user.HasPermission(sess.Role, p) {
			return sess, nil
		}
	}
	return session.Session{}, fmt.Errorf("%w: %s cannot %s", user.ErrInsufficientPermissions, sess.Role, perms[0])
}
