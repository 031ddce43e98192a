package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/master/department"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/master/jobrole"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/user"
	"github.com/spf13/cobra"
)

// masterOps adapts one master-data collection to the shared command set.
type masterOps[T any] struct {
	noun   string
	list   func(ctx context.Context) ([]T, error)
	create func(ctx context.Context, name, description string) (T, error)
	update func(ctx context.Context, id, name, description string) (T, error)
	delete func(ctx context.Context, id string) error
	row    func(T) []string
}

func NewDepartmentCommand(rootOpts *RootOptions) *cobra.Command {
	ops := masterOps[department.Department]{
		noun: "department",
		list: func(ctx context.Context) ([]department.Department, error) {
			return rootOpts.App.Master.ListDepartments(ctx)
		},
		create: func(ctx context.Context, name, description string) (department.Department, error) {
			return rootOpts.App.Master.CreateDepartment(ctx, department.UpsertRequest{Name: name, Description: description})
		},
		update: func(ctx context.Context, id, name, description string) (department.Department, error) {
			return rootOpts.App.Master.UpdateDepartment(ctx, id, department.UpsertRequest{Name: name, Description: description})
		},
		delete: func(ctx context.Context, id string) error {
			return rootOpts.App.Master.DeleteDepartment(ctx, id)
		},
		row: func(d department.Department) []string {
			return []string{d.ID.String(), d.Name, orDash(d.Description)}
		},
	}
	cmd := newMasterCommand(rootOpts, ops)
	cmd.Aliases = []string{"departments", "dept"}
	return cmd
}

func NewRoleCommand(rootOpts *RootOptions) *cobra.Command {
	ops := masterOps[jobrole.JobRole]{
		noun: "role",
		list: func(ctx context.Context) ([]jobrole.JobRole, error) {
			return rootOpts.App.Master.ListRoles(ctx)
		},
		create: func(ctx context.Context, name, description string) (jobrole.JobRole, error) {
			return rootOpts.App.Master.CreateRole(ctx, jobrole.UpsertRequest{Name: name, Description: description})
		},
		update: func(ctx context.Context, id, name, description string) (jobrole.JobRole, error) {
			return rootOpts.App.Master.UpdateRole(ctx, id, jobrole.UpsertRequest{Name: name, Description: description})
		},
		delete: func(ctx context.Context, id string) error {
			return rootOpts.App.Master.DeleteRole(ctx, id)
		},
		row: func(r jobrole.JobRole) []string {
			return []string{r.ID.String(), r.Name, orDash(r.Description)}
		},
	}
	cmd := newMasterCommand(rootOpts, ops)
	cmd.Aliases = []string{"roles"}
	return cmd
}

func newMasterCommand[T any](rootOpts *RootOptions, ops masterOps[T]) *cobra.Command {
	cmd := &cobra.Command{
		Use:   ops.noun,
		Short: fmt.Sprintf("List and manage %ss", ops.noun),
	}

	var description string

	list := &cobra.Command{
		Use:           "list",
		Short:         fmt.Sprintf("List %ss", ops.noun),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, "failed to list "+ops.noun+"s", func(ctx context.Context, out *OutputFormatter) error {
				if _, err := rootOpts.authorize(user.PermissionMasterView); err != nil {
					return err
				}
				items, err := ops.list(ctx)
				if err != nil {
					return err
				}
				return out.Render(items, func(w io.Writer) error {
					rows := make([][]string, 0, len(items))
					for _, it := range items {
						rows = append(rows, ops.row(it))
					}
					return table(w, []string{"ID", "NAME", "DESCRIPTION"}, rows)
				})
			})
		},
	}

	add := &cobra.Command{
		Use:           "add <name>",
		Short:         fmt.Sprintf("Create a %s", ops.noun),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, "failed to create "+ops.noun, func(ctx context.Context, out *OutputFormatter) error {
				if _, err := rootOpts.authorize(user.PermissionMasterManage); err != nil {
					return err
				}
				created, err := ops.create(ctx, args[0], description)
				if err != nil {
					return err
				}
				return out.Render(created, func(w io.Writer) error {
					return table(w, []string{"ID", "NAME", "DESCRIPTION"}, [][]string{ops.row(created)})
				})
			})
		},
	}
	add.Flags().StringVarP(&description, "description", "d", "", "description")

	update := &cobra.Command{
		Use:           "update <id> <name>",
		Short:         fmt.Sprintf("Rename a %s", ops.noun),
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, "failed to update "+ops.noun, func(ctx context.Context, out *OutputFormatter) error {
				if _, err := rootOpts.authorize(user.PermissionMasterManage); err != nil {
					return err
				}
				updated, err := ops.update(ctx, args[0], args[1], description)
				if err != nil {
					return err
				}
				return out.Render(updated, func(w io.Writer) error {
					return table(w, []string{"ID", "NAME", "DESCRIPTION"}, [][]string{ops.row(updated)})
				})
			})
		},
	}
	update.Flags().StringVarP(&description, "description", "d", "", "description")

	del := &cobra.Command{
		Use:           "delete <id>",
		Short:         fmt.Sprintf("Delete a %s", ops.noun),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, "failed to delete "+ops.noun, func(ctx context.Context, out *OutputFormatter) error {
				if _, err := rootOpts.authorize(user.PermissionMasterManage); err != nil {
					return err
				}
				if err := ops.delete(ctx, args[0]); err != nil {
					return err
				}
				return out.Render(map[string]string{"deleted": args[0]}, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "Deleted %s %s\n", ops.noun, args[0])
					return err
				})
			})
		},
	}

	cmd.AddCommand(list, add, update, del)
	return cmd
}
