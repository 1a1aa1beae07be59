package cli

import (
	"strconv"
	"time"

	"github.com/alexanderramin/escopo/internal/cli/formatter"
	"github.com/alexanderramin/escopo/internal/domain"
	"github.com/alexanderramin/escopo/internal/service"
	"github.com/spf13/cobra"
)

func newScheduleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "schedule",
		Aliases: []string{"cronograma"},
		Short:   "Manage a project's schedule phases",
	}

	cmd.AddCommand(
		newScheduleAddCmd(app),
		newScheduleListCmd(app),
		newScheduleShowCmd(app),
		newScheduleUpdateCmd(app),
		newScheduleProgressCmd(app),
		newScheduleRemoveCmd(app),
		newScheduleGanttCmd(app),
		newScheduleSummaryCmd(app),
	)

	return cmd
}

type entryFlags struct {
	project, phase, description, owner, deps, notes, status string
	start, end, actualStart, actualEnd                      *time.Time
	percent                                                 int
}

func (f *entryFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.project, "project", "", "Project ID or prefix")
	fs.StringVar(&f.phase, "phase", "", "Phase name")
	fs.StringVar(&f.description, "description", "", "Free-text description")
	fs.StringVar(&f.owner, "owner", "", "Responsible person")
	fs.StringVar(&f.deps, "deps", "", "Comma-separated phases this one depends on")
	fs.StringVar(&f.notes, "notes", "", "Notes")
	statusVar(fs, &f.status, "nao_iniciado|em_andamento|concluido|cancelado")
	dateVar(fs, &f.start, "start", "Planned start")
	dateVar(fs, &f.end, "end", "Planned end")
	dateVar(fs, &f.actualStart, "actual-start", "Actual start")
	dateVar(fs, &f.actualEnd, "actual-end", "Actual end")
	fs.IntVar(&f.percent, "percent", 0, "Percent complete (0-100)")
}

// apply copies every flag the user set onto e. The project flag is handled
// by the caller because it needs resolving.
func (f *entryFlags) apply(cmd *cobra.Command, e *domain.ScheduleEntry) {
	fs := cmd.Flags()
	if fs.Changed("phase") {
		e.Phase = f.phase
	}
	if fs.Changed("description") {
		e.Description = f.description
	}
	if fs.Changed("owner") {
		e.Owner = f.owner
	}
	if fs.Changed("deps") {
		e.Dependencies = f.deps
	}
	if fs.Changed("notes") {
		e.Notes = f.notes
	}
	if st := statusPtr(fs, f.status); st != nil {
		e.Status = *st
	}
	if f.start != nil {
		e.StartDate = *f.start
	}
	if f.end != nil {
		e.EndDate = *f.end
	}
	if fs.Changed("actual-start") {
		e.ActualStart = f.actualStart
	}
	if fs.Changed("actual-end") {
		e.ActualEnd = f.actualEnd
	}
	if fs.Changed("percent") {
		e.PercentComplete = f.percent
	}
}

func newScheduleAddCmd(app *App) *cobra.Command {
	var flags entryFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a phase to a project's schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveParentProject(ctx, app, flags.project)
			if err != nil {
				return err
			}
			e := &domain.ScheduleEntry{ProjectID: projectID}
			flags.apply(cmd, e)
			if err := app.Schedule.Create(ctx, e); err != nil {
				return err
			}
			return report(cmd, e, "Added phase %s (%s)", e.Phase, e.ID)
		},
	}

	flags.register(cmd)
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("phase")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newScheduleListCmd(app *App) *cobra.Command {
	var project, status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List schedule phases with their effective status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			filter := service.ScheduleFilter{Status: domain.Status(status)}
			if project != "" {
				id, err := resolveProjectID(ctx, app, project)
				if err != nil {
					return err
				}
				filter.ProjectID = id
			}
			views, err := app.Schedule.List(ctx, filter)
			if err != nil {
				return err
			}
			return render(cmd, views, func() string {
				if len(views) == 0 {
					return "No schedule entries."
				}
				return formatter.FormatScheduleList(views)
			})
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Only this project")
	cmd.Flags().StringVar(&status, "status", "", "Only this effective status, atrasado included")

	return cmd
}

func newScheduleShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a schedule phase with its durations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := app.Schedule.GetByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return render(cmd, v, func() string { return formatter.FormatEntry(v) })
		},
	}
}

func newScheduleUpdateCmd(app *App) *cobra.Command {
	var flags entryFlags

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change fields of a schedule phase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			v, err := app.Schedule.GetByID(ctx, args[0])
			if err != nil {
				return err
			}
			e := v.Entry
			if cmd.Flags().Changed("project") {
				if e.ProjectID, err = resolveParentProject(ctx, app, flags.project); err != nil {
					return err
				}
			}
			flags.apply(cmd, e)
			if err := app.Schedule.Update(ctx, e); err != nil {
				return err
			}
			return report(cmd, e, "Updated phase %s", e.Phase)
		},
	}

	flags.register(cmd)

	return cmd
}

func newScheduleProgressCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "progress ID PERCENT",
		Short: "Record progress; status and actual dates follow from it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pct, err := strconv.Atoi(args[1])
			if err != nil {
				return domain.Validationf("percent must be an integer, got %q", args[1])
			}
			e, err := app.Schedule.UpdateProgress(cmd.Context(), args[0], pct)
			if err != nil {
				return err
			}
			return report(cmd, e, "%s %s %s", e.Phase,
				formatter.RenderProgress(e.PercentComplete, 20), formatter.StatusPill(e.Status))
		},
	}
}

func newScheduleRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Delete a schedule phase",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Schedule.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			return report(cmd, map[string]string{"removido": args[0]}, "Removed phase %s", args[0])
		},
	}
}

func newScheduleGanttCmd(app *App) *cobra.Command {
	var (
		project string
		width   int
	)

	cmd := &cobra.Command{
		Use:   "gantt",
		Short: "Show a project's schedule as a Gantt chart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			records, err := app.Schedule.Gantt(ctx, projectID)
			if err != nil {
				return err
			}
			return render(cmd, records, func() string {
				if len(records) == 0 {
					return "No schedule entries."
				}
				return formatter.FormatGantt(records, width)
			})
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or prefix")
	cmd.Flags().IntVar(&width, "width", 40, "Chart width in columns")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newScheduleSummaryCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize a project's schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			s, err := app.Schedule.Summary(ctx, projectID)
			if err != nil {
				return err
			}
			return render(cmd, s, func() string { return formatter.FormatScheduleSummary(s) })
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or prefix")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}
