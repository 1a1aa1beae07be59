package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/escopo/internal/cli/formatter"
	"github.com/alexanderramin/escopo/internal/domain"
	"github.com/alexanderramin/escopo/internal/service"
	"github.com/spf13/cobra"
)

func newScopeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "scope",
		Aliases: []string{"escopo"},
		Short:   "Manage functional scopes and their trees",
	}

	cmd.AddCommand(
		newScopeAddCmd(app),
		newScopeListCmd(app),
		newScopeTreeCmd(app),
		newScopeSummaryCmd(app),
		newScopeImportCmd(app),
	)

	return cmd
}

func newScopeAddCmd(app *App) *cobra.Command {
	var (
		flags   nodeFlags
		project string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a functional scope in a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveParentProject(ctx, app, project)
			if err != nil {
				return err
			}
			in, err := flags.input(ctx, cmd, app)
			if err != nil {
				return err
			}
			n, err := app.Hierarchy.CreateNode(ctx, domain.LevelScope, projectID, in)
			if err != nil {
				return err
			}
			return report(cmd, n, "Created escopo %s (%s)", n.Name, n.ID)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or prefix")
	flags.register(cmd, false)
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newScopeListCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the functional scopes of a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			scopes, err := app.Hierarchy.ListScopes(ctx, projectID)
			if err != nil {
				return err
			}
			return render(cmd, scopes, func() string {
				if len(scopes) == 0 {
					return "No functional scopes."
				}
				return formatter.FormatNodeList(domain.LevelScope, scopes)
			})
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or prefix")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newScopeTreeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tree SCOPE_ID",
		Short: "Show a functional scope with all four levels below it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := app.Hierarchy.GetTree(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return render(cmd, tree, func() string { return formatter.FormatTree(tree) })
		},
	}
}

func newScopeSummaryCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "summary [SCOPE_ID]",
		Short: "Roll up hours and progress of a scope, or of every scope in --project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			switch {
			case len(args) == 1 && project == "":
				s, err := app.Summary.ScopeSummary(ctx, args[0])
				if err != nil {
					return err
				}
				return render(cmd, s, func() string { return formatScopeSummaries(s) })
			case len(args) == 0 && project != "":
				projectID, err := resolveProjectID(ctx, app, project)
				if err != nil {
					return err
				}
				all, err := app.Summary.ProjectSummary(ctx, projectID)
				if err != nil {
					return err
				}
				return render(cmd, all, func() string {
					if len(all) == 0 {
						return "No functional scopes."
					}
					return formatScopeSummaries(all...)
				})
			default:
				return domain.Validationf("give either SCOPE_ID or --project")
			}
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Summarize every scope of this project")

	return cmd
}

func formatScopeSummaries(summaries ...*service.ScopeSummary) string {
	parts := make([]string, 0, len(summaries))
	for _, s := range summaries {
		parts = append(parts, formatter.FormatSummary(s.Scope.Name, s.Summary))
	}
	return strings.Join(parts, "\n")
}

func newScopeImportCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Create a whole functional scope from a YAML tree file",
		Long: `Create a functional scope and its descendants from a YAML file rooted at
an "escopo" key. The file is validated in full first; nothing is written
unless every node can be created.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			result, err := app.Import.ImportTree(ctx, projectID, args[0])
			if err != nil {
				return err
			}
			return render(cmd, result, func() string { return formatImportResult(result) })
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or prefix")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func formatImportResult(r *service.ImportResult) string {
	counts := make([]string, 0, domain.MaxLevel)
	for _, l := range domain.AllLevels()[1:] {
		counts = append(counts, fmt.Sprintf("%s: %d", l, r.LevelCount[l]))
	}
	return fmt.Sprintf("Imported escopo %s (%s): %d nodes (%s)",
		r.Scope.Name, r.Scope.ID, r.NodeCount, strings.Join(counts, ", "))
}
