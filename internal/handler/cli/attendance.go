package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/export"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/pubsub"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/session"
	"github.com/spf13/cobra"
)

// NewAttendanceCommand groups the attendance tracker commands.
func NewAttendanceCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attendance",
		Short: "Track, mark and report attendance",
	}

	cmd.AddCommand(newAttendanceTodayCommand(rootOpts))
	cmd.AddCommand(newAttendanceMarkCommand(rootOpts))
	cmd.AddCommand(newAttendanceBoardCommand(rootOpts))
	cmd.AddCommand(newAttendanceSummaryCommand(rootOpts))
	cmd.AddCommand(newAttendanceClockCommand(rootOpts, "checkin", "Record your arrival time for today"))
	cmd.AddCommand(newAttendanceClockCommand(rootOpts, "checkout", "Record your departure time for today"))
	cmd.AddCommand(newAttendanceRangeCommand(rootOpts))
	cmd.AddCommand(newAttendanceExportCommand(rootOpts))

	return cmd
}

// subjectFor resolves whose attendance a command acts on. Reading someone
// else's attendance needs the view-all permission.
func (o *RootOptions) subjectFor(args []string) (string, session.Session, error) {
	sess, err := o.authorizeAny(user.PermissionAttendanceViewOwn, user.PermissionAttendanceViewAll)
	if err != nil {
		return "", session.Session{}, err
	}
	own := sess.SubjectID()
	if len(args) == 0 || args[0] == own {
		return own, sess, nil
	}
	if !user.HasPermission(sess.Role, user.PermissionAttendanceViewAll) {
		return "", session.Session{}, fmt.Errorf("%w: %s cannot %s", user.ErrInsufficientPermissions, sess.Role, user.PermissionAttendanceViewAll)
	}
	return args[0], sess, nil
}

func viewStateText(w io.Writer, vs attendance.ViewState) error {
	name := vs.FullName
	if name == "" {
		name = vs.SubjectID
	}
	fmt.Fprintf(w, "%s on %s: %s\n", name, vs.Date, vs.Status.Label())
	if vs.RecordID != nil {
		fmt.Fprintf(w, "Record: %s\n", *vs.RecordID)
	}
	if vs.Error != "" {
		fmt.Fprintf(w, "Error: %s\n", vs.Error)
	}
	if vs.Summary != nil {
		return summaryText(w, *vs.Summary)
	}
	return nil
}

func summaryText(w io.Writer, s attendance.Summary) error {
	period := "this period"
	if s.StartDate != "" && s.EndDate != "" {
		period = s.StartDate + " to " + s.EndDate
	}
	_, err := fmt.Fprintf(w, "Summary %s: %s present, %s absent, %s half day\n",
		period, formatCount(s.PresentCount), formatCount(s.AbsentCount), formatCount(s.HalfDayCount))
	return err
}

func boardText(w io.Writer, rows []attendance.BoardRow) error {
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{
			r.SubjectID,
			orDash(r.FullName),
			r.Status.Label(),
			formatCount(r.PresentCount),
			formatCount(r.AbsentCount),
			formatCount(r.HalfDayCount),
			orDash(r.Error),
		})
	}
	return table(w, []string{"ID", "NAME", "TODAY", "PRESENT", "ABSENT", "HALF DAY", "ERROR"}, cells)
}

func recordsText(w io.Writer, records []attendance.Record) error {
	rows := make([][]string, 0, len(records))
	clock := func(c *attendance.ClockTime) string {
		if c == nil {
			return "-"
		}
		return c.String()
	}
	for _, r := range records {
		rows = append(rows, []string{r.ID.String(), r.EmployeeID.String(), r.Date, r.Status.Label(), clock(r.CheckInTime), clock(r.CheckOutTime)})
	}
	return table(w, []string{"ID", "EMPLOYEE", "DATE", "STATUS", "IN", "OUT"}, rows)
}

func newAttendanceTodayCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "today [employee-id]",
		Short: "Show today's attendance status",
		Long: `Load today's attendance record and show its status. Without an id the
signed-in user's own attendance is shown.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, "failed to load attendance", func(ctx context.Context, out *OutputFormatter) error {
				subject, _, err := rootOpts.subjectFor(args)
				if err != nil {
					return err
				}
				vs, err := rootOpts.App.Attendance.EnsureTodayStatus(ctx, subject, rootOpts.App.Now().Format(validator.DateLayout))
				if err != nil {
					return err
				}
				return out.Render(vs, func(w io.Writer) error {
					return viewStateText(w, vs)
				})
			})
		},
	}
}

func newAttendanceMarkCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mark <employee-id> <status>",
		Short: "Set an employee's attendance for today",
		Long: `Set today's attendance. A record is created when none exists yet and
updated otherwise; the month-to-date summary is refreshed afterwards.

Statuses: present, absent, leave, half-day.

Example:
  hrdash attendance mark 42 present
  hrdash attendance mark 42 half-day`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, "failed to mark attendance", func(ctx context.Context, out *OutputFormatter) error {
				if _, err := rootOpts.authorize(user.PermissionAttendanceMark); err != nil {
					return err
				}
				status, err := attendance.ParseStatus(args[1])
				if err != nil {
					return validator.ValidationErrors{{Field: "status", Message: err.Error()}}
				}
				if !status.Submittable() {
					return validator.ValidationErrors{{Field: "status", Message: attendance.ErrNotSubmittable.Error()}}
				}

				tracker := rootOpts.App.Attendance
				today := rootOpts.App.Now().Format(validator.DateLayout)
				if _, err := tracker.EnsureTodayStatus(ctx, args[0], today); err != nil {
					return err
				}
				out.VerboseLog("loaded today's attendance for %s", args[0])

				vs, err := tracker.SubmitStatus(ctx, args[0], status)
				if err != nil {
					return err
				}
				return out.Render(vs, func(w io.Writer) error {
					return viewStateText(w, vs)
				})
			})
		},
	}
}

type BoardOptions struct {
	*RootOptions
	Watch bool
}

// boardSubjects lists the employees the signed-in manager tracks.
func (o *RootOptions) boardSubjects(ctx context.Context) ([]attendance.Subject, error) {
	list, err := o.App.Employees.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	subjects := make([]attendance.Subject, 0, len(list))
	for _, e := range list {
		subjects = append(subjects, attendance.Subject{ID: e.ID.String(), FullName: e.DisplayName()})
	}
	return subjects, nil
}

func newAttendanceBoardCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BoardOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show today's attendance for every employee you manage",
		Long: `Load today's status and month-to-date counts for every employee you
manage. With --watch the board is refreshed on an interval and every change
is printed until interrupted; the backend is also pinged periodically.

Example:
  hrdash attendance board
  hrdash attendance board --watch`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, "failed to load attendance board", func(ctx context.Context, out *OutputFormatter) error {
				if _, err := opts.authorize(user.PermissionAttendanceViewAll); err != nil {
					return err
				}
				if opts.Watch {
					return watchBoard(ctx, opts.RootOptions, out)
				}
				subjects, err := opts.boardSubjects(ctx)
				if err != nil {
					return err
				}
				rows := attendance.BoardRows(opts.App.Attendance.TrackAll(ctx, subjects, opts.App.Now()))
				return out.Render(rows, func(w io.Writer) error {
					return boardText(w, rows)
				})
			})
		},
	}

	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "keep refreshing and print changes")

	return cmd
}

// watchBoard streams settled view-state changes until ctx ends or the
// process is interrupted.
func watchBoard(ctx context.Context, opts *RootOptions, out *OutputFormatter) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	updates, cancel := opts.App.Attendance.Watch(pubsub.Wildcard)
	defer cancel()

	scheduler := cron.NewScheduler(ctx, opts.App.Logger)
	jobs := cron.NewDashboardJobs(opts.App.Client, opts.App.Attendance, opts.boardSubjects, opts.App.Logger)
	jobs.RegisterJobs(scheduler, opts.App.PingInterval, opts.App.RefreshInterval)
	scheduler.Start()
	defer scheduler.Stop()

	last := make(map[string]attendance.Status)
	for {
		select {
		case <-ctx.Done():
			return nil
		case vs, ok := <-updates:
			if !ok {
				return nil
			}
			if vs.Loading || vs.Pending || vs.Status == "" {
				continue
			}
			if prev, seen := last[vs.SubjectID]; seen && prev == vs.Status && vs.Error == "" {
				continue
			}
			last[vs.SubjectID] = vs.Status
			err := out.Render(vs, func(w io.Writer) error {
				name := vs.FullName
				if name == "" {
					name = vs.SubjectID
				}
				line := fmt.Sprintf("%s  %-24s %s", opts.App.Now().Format("15:04:05"), name, vs.Status.Label())
				if vs.Error != "" {
					line += "  (" + vs.Error + ")"
				}
				_, err := fmt.Fprintln(w, line)
				return err
			})
			if err != nil {
				return err
			}
		}
	}
}

type RangeOptions struct {
	*RootOptions
	From string
	To   string
}

// query defaults to the month so far.
func (o *RangeOptions) query() (attendance.RangeQuery, error) {
	now := o.App.Now()
	q := attendance.RangeQuery{StartDate: o.From, EndDate: o.To}
	if q.StartDate == "" {
		q.StartDate = attendance.MonthStart(now)
	}
	if q.EndDate == "" {
		q.EndDate = now.Format(validator.DateLayout)
	}
	return q, q.Validate()
}

func (o *RangeOptions) bindFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.From, "from", "", "first day (YYYY-MM-DD), defaults to the start of this month")
	cmd.Flags().StringVar(&o.To, "to", "", "last day (YYYY-MM-DD), defaults to today")
}

func newAttendanceSummaryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RangeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "summary [employee-id]",
		Short:         "Count present, absent and half days over a range",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, "failed to load attendance summary", func(ctx context.Context, out *OutputFormatter) error {
				subject, _, err := opts.subjectFor(args)
				if err != nil {
					return err
				}
				q, err := opts.query()
				if err != nil {
					return err
				}
				sum, err := opts.App.Attendance.RefreshSummary(ctx, subject, q)
				if err != nil {
					return err
				}
				if sum.StartDate == "" {
					sum.StartDate, sum.EndDate = q.StartDate, q.EndDate
				}
				return out.Render(sum, func(w io.Writer) error {
					if err := summaryText(w, sum); err != nil {
						return err
					}
					if opts.Verbose && len(sum.AttendanceList) > 0 {
						return recordsText(w, sum.AttendanceList)
					}
					return nil
				})
			})
		},
	}
	opts.bindFlags(cmd)

	return cmd
}

func newAttendanceClockCommand(rootOpts *RootOptions, use, short string) *cobra.Command {
	return &cobra.Command{
		Use:           use + " [employee-id]",
		Short:         short,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, use+" failed", func(ctx context.Context, out *OutputFormatter) error {
				sess, err := rootOpts.authorizeAny(user.PermissionAttendanceClock, user.PermissionAttendanceMark)
				if err != nil {
					return err
				}
				subject := sess.SubjectID()
				if len(args) == 1 && args[0] != subject {
					if _, err := rootOpts.authorize(user.PermissionAttendanceMark); err != nil {
						return err
					}
					subject = args[0]
				}

				clock := rootOpts.App.Attendance.CheckIn
				if use == "checkout" {
					clock = rootOpts.App.Attendance.CheckOut
				}
				rec, err := clock(ctx, subject)
				if err != nil {
					return err
				}
				return out.Render(rec, func(w io.Writer) error {
					return recordsText(w, []attendance.Record{rec})
				})
			})
		},
	}
}

func newAttendanceRangeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RangeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "range",
		Short:         "List every employee's records over a range",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, "failed to load attendance range", func(ctx context.Context, out *OutputFormatter) error {
				if _, err := opts.authorize(user.PermissionAttendanceViewAll); err != nil {
					return err
				}
				q, err := opts.query()
				if err != nil {
					return err
				}
				records, err := opts.App.Attendance.Range(ctx, q)
				if err != nil {
					return err
				}
				return out.Render(records, func(w io.Writer) error {
					return recordsText(w, records)
				})
			})
		},
	}
	opts.bindFlags(cmd)

	return cmd
}

type AttendanceExportOptions struct {
	RangeOptions
	Output string
}

func newAttendanceExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AttendanceExportOptions{RangeOptions: RangeOptions{RootOptions: rootOpts}}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the attendance board and records to an .xlsx file",
		Long: `Write a workbook with today's board on the first sheet and every record
in the range on the second.

Example:
  hrdash attendance export --from 2024-06-01 --to 2024-06-30 -o june.xlsx`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, "failed to export attendance", func(ctx context.Context, out *OutputFormatter) error {
				if _, err := opts.authorize(user.PermissionAttendanceViewAll); err != nil {
					return err
				}
				q, err := opts.query()
				if err != nil {
					return err
				}
				subjects, err := opts.boardSubjects(ctx)
				if err != nil {
					return err
				}
				rows := attendance.BoardRows(opts.App.Attendance.TrackAll(ctx, subjects, opts.App.Now()))
				records, err := opts.App.Attendance.Range(ctx, q)
				if err != nil {
					return err
				}

				name := opts.Output
				if name == "" {
					name = exportName("attendance", opts.App.Now())
				}
				path, err := export.Save(ctx, opts.App.Files, name, export.AttendanceBoard(rows), export.AttendanceRecords(records))
				if err != nil {
					return err
				}
				result := map[string]any{"file": path, "employees": len(rows), "records": len(records)}
				return out.Render(result, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "Exported %s employees and %s records to %s\n",
						formatCount(len(rows)), formatCount(len(records)), path)
					return err
				})
			})
		},
	}
	opts.bindFlags(cmd)
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "file name inside the export directory")

	return cmd
}
