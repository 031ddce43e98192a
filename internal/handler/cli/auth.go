package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/session"
	"github.com/spf13/cobra"
)

type LoginOptions struct {
	*RootOptions
	Password string
}

func NewLoginCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LoginOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Sign in and store the session",
		Long: `Sign in with a username and password. Without --password the password is
read from the first line of standard input.

Example:
  hrdash login admin --password admin123
  echo "$HR_PASSWORD" | hrdash login hr`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, "login failed", func(ctx context.Context, out *OutputFormatter) error {
				return login(ctx, opts, args[0], cmd.InOrStdin(), out)
			})
		},
	}

	cmd.Flags().StringVarP(&opts.Password, "password", "p", "", "account password")

	return cmd
}

func login(ctx context.Context, opts *LoginOptions, username string, in io.Reader, out *OutputFormatter) error {
	password := opts.Password
	if password == "" {
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	req := auth.LoginRequest{Username: username, Password: password}
	if err := opts.App.Auth.Login(ctx, req); err != nil {
		return err
	}

	sess, err := opts.App.Sessions.Current()
	if err != nil {
		return err
	}
	out.VerboseLog("session stored for %s", sess.Username)
	return out.Render(sess.Profile(), func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "Signed in as %s (%s)\n", sess.Username, sess.Role)
		return err
	})
}

func NewLogoutCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "logout",
		Short:         "Forget the stored session",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, "logout failed", func(ctx context.Context, out *OutputFormatter) error {
				if err := rootOpts.App.Auth.Logout(); err != nil {
					return err
				}
				rootOpts.App.Close()
				return out.Render(map[string]bool{"signedOut": true}, func(w io.Writer) error {
					_, err := fmt.Fprintln(w, "Signed out")
					return err
				})
			})
		},
	}
}

func NewWhoamiCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "whoami",
		Short:         "Show the signed-in user",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, "no session", func(ctx context.Context, out *OutputFormatter) error {
				sess, err := rootOpts.App.Sessions.Current()
				if err != nil {
					return err
				}
				return out.Render(sess.Profile(), func(w io.Writer) error {
					return whoamiText(w, sess)
				})
			})
		},
	}
}

func whoamiText(w io.Writer, sess session.Session) error {
	rows := [][]string{
		{"Username", sess.Username},
		{"Name", orDash(sess.FullName)},
		{"Role", string(sess.Role)},
		{"User ID", orDash(sess.ID)},
	}
	if sess.EmployeeID != "" {
		rows = append(rows, []string{"Employee ID", sess.EmployeeID})
	}
	if sess.HRID != "" {
		rows = append(rows, []string{"HR ID", sess.HRID})
	}
	if exp, ok := sess.ExpiresAt(); ok {
		rows = append(rows, []string{"Expires", exp.Local().Format("2006-01-02 15:04")})
	}
	return table(w, []string{"FIELD", "VALUE"}, rows)
}

func NewPingCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "ping",
		Short:         "Check that the backend is reachable",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, "backend unreachable", func(ctx context.Context, out *OutputFormatter) error {
				if err := rootOpts.App.Client.Ping(ctx); err != nil {
					return err
				}
				return out.Render(map[string]string{"ping": "pong"}, func(w io.Writer) error {
					_, err := fmt.Fprintln(w, "pong")
					return err
				})
			})
		},
	}
}
