package cli

import (
	"github.com/alexanderramin/escopo/internal/cli/formatter"
	"github.com/alexanderramin/escopo/internal/domain"
	"github.com/spf13/cobra"
)

func newNodeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "node",
		Short: "Manage nodes at any level of a functional scope",
		Long: `Manage nodes of the functional-scope tree. --level selects the table:
0 is the functional scope, 1 to 4 are nivel1 to nivel4.`,
	}

	cmd.AddCommand(
		newNodeAddCmd(app),
		newNodeUpdateCmd(app),
		newNodeShowCmd(app),
		newNodeRemoveCmd(app),
		newNodeChildrenCmd(app),
	)

	return cmd
}

func levelFlag(cmd *cobra.Command, target *int) {
	cmd.Flags().IntVar(target, "level", -1, "Node level, 0 (escopo) to 4 (nivel4)")
	_ = cmd.MarkFlagRequired("level")
}

func newNodeAddCmd(app *App) *cobra.Command {
	var (
		flags  nodeFlags
		level  int
		parent string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a node under a parent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			lvl, err := domain.ParseLevel(level)
			if err != nil {
				return err
			}
			if lvl == domain.LevelScope {
				if parent, err = resolveParentProject(ctx, app, parent); err != nil {
					return err
				}
			}
			in, err := flags.input(ctx, cmd, app)
			if err != nil {
				return err
			}
			n, err := app.Hierarchy.CreateNode(ctx, lvl, parent, in)
			if err != nil {
				return err
			}
			return report(cmd, n, "Created %s %s (%s)", lvl, n.Name, n.ID)
		},
	}

	levelFlag(cmd, &level)
	cmd.Flags().StringVar(&parent, "parent", "", "Parent node ID, or project ID for level 0")
	flags.register(cmd, false)
	_ = cmd.MarkFlagRequired("parent")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newNodeUpdateCmd(app *App) *cobra.Command {
	var (
		flags nodeFlags
		level int
	)

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a node",
		Long: `Update a node. Under the replace update mode the flags given become the
whole record; under merge, fields without a flag keep their stored value.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			lvl, err := domain.ParseLevel(level)
			if err != nil {
				return err
			}
			in, err := flags.input(ctx, cmd, app)
			if err != nil {
				return err
			}
			n, err := app.Hierarchy.UpdateNode(ctx, lvl, args[0], in)
			if err != nil {
				return err
			}
			return report(cmd, n, "Updated %s %s", lvl, n.Name)
		},
	}

	levelFlag(cmd, &level)
	flags.register(cmd, true)

	return cmd
}

func newNodeShowCmd(app *App) *cobra.Command {
	var level int

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show a node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := domain.ParseLevel(level)
			if err != nil {
				return err
			}
			n, err := app.Hierarchy.GetNode(cmd.Context(), lvl, args[0])
			if err != nil {
				return err
			}
			return render(cmd, n, func() string { return formatter.FormatNode(n) })
		},
	}

	levelFlag(cmd, &level)

	return cmd
}

func newNodeRemoveCmd(app *App) *cobra.Command {
	var level int

	cmd := &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Delete a node and everything below it",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := domain.ParseLevel(level)
			if err != nil {
				return err
			}
			if err := app.Hierarchy.DeleteNode(cmd.Context(), lvl, args[0]); err != nil {
				return err
			}
			return report(cmd, map[string]string{"removido": args[0]}, "Removed %s %s", lvl, args[0])
		},
	}

	levelFlag(cmd, &level)

	return cmd
}

func newNodeChildrenCmd(app *App) *cobra.Command {
	var level int

	cmd := &cobra.Command{
		Use:   "children PARENT_ID",
		Short: "List the nodes at --level whose parent is PARENT_ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			lvl, err := domain.ParseLevel(level)
			if err != nil {
				return err
			}
			parent := args[0]
			if lvl == domain.LevelScope {
				if parent, err = resolveProjectID(ctx, app, parent); err != nil {
					return err
				}
			}
			nodes, err := app.Hierarchy.ListChildren(ctx, lvl, parent)
			if err != nil {
				return err
			}
			return render(cmd, nodes, func() string { return formatter.FormatNodeList(lvl, nodes) })
		},
	}

	levelFlag(cmd, &level)

	return cmd
}
