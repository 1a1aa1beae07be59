package cli

import (
	"time"

	"github.com/alexanderramin/escopo/internal/cli/formatter"
	"github.com/alexanderramin/escopo/internal/domain"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectShowCmd(app),
		newProjectUpdateCmd(app),
		newProjectRemoveCmd(app),
	)

	return cmd
}

type projectFlags struct {
	name, client, status string
	start, due           *time.Time
}

func (f *projectFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.name, "name", "", "Project name")
	fs.StringVar(&f.client, "client", "", "Client name")
	fs.StringVar(&f.status, "status", "", "nao_iniciado|em_andamento|concluido|pausado|cancelado")
	dateVar(fs, &f.start, "start", "Start date")
	dateVar(fs, &f.due, "due", "Target date")
}

// apply copies every flag the user set onto p.
func (f *projectFlags) apply(cmd *cobra.Command, p *domain.Project) {
	fs := cmd.Flags()
	if fs.Changed("name") {
		p.Name = f.name
	}
	if fs.Changed("client") {
		p.Client = f.client
	}
	if fs.Changed("status") {
		p.Status = domain.ProjectStatus(f.status)
	}
	if fs.Changed("start") {
		p.StartDate = f.start
	}
	if fs.Changed("due") {
		p.TargetDate = f.due
	}
}

func newProjectAddCmd(app *App) *cobra.Command {
	var flags projectFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &domain.Project{}
			flags.apply(cmd, p)
			if err := app.Projects.Create(cmd.Context(), p); err != nil {
				return err
			}
			return report(cmd, p, "Created project %s [%s]", p.Name, p.DisplayID())
		},
	}

	flags.register(cmd)
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd, projects, func() string {
				if len(projects) == 0 {
					return "No projects found."
				}
				return formatter.FormatProjectList(projects, app.now())
			})
		},
	}
}

type projectDetail struct {
	Project *domain.Project `json:"projeto"`
	Scopes  []*domain.Node  `json:"escopos"`
}

func newProjectShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a project and its functional scopes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.GetByID(ctx, id)
			if err != nil {
				return err
			}
			scopes, err := app.Hierarchy.ListScopes(ctx, id)
			if err != nil {
				return err
			}
			return render(cmd, projectDetail{Project: p, Scopes: scopes}, func() string {
				return formatter.FormatProjectShow(p, scopes)
			})
		},
	}
}

func newProjectUpdateCmd(app *App) *cobra.Command {
	var flags projectFlags

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change project fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.GetByID(ctx, id)
			if err != nil {
				return err
			}
			flags.apply(cmd, p)
			if err := app.Projects.Update(ctx, p); err != nil {
				return err
			}
			return report(cmd, p, "Updated project %s [%s]", p.Name, p.DisplayID())
		},
	}

	flags.register(cmd)

	return cmd
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Delete a project with its scopes and schedule",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.Delete(ctx, id); err != nil {
				return err
			}
			return report(cmd, map[string]string{"removido": id}, "Removed project %s", formatter.TruncID(id))
		},
	}
}
