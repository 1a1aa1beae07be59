package cli

import (
	"time"

	"github.com/alexanderramin/escopo/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects  service.ProjectService
	Hierarchy service.HierarchyService
	Schedule  service.ScheduleService
	Summary   service.SummaryService
	Types     service.LevelTypeService
	Import    service.ImportService

	// Now drives relative dates in listings. Nil means the wall clock.
	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

// NewRootCmd creates the top-level "escopo" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "escopo",
		Short:         "Functional scope hierarchy and project schedule tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Bool("json", false, "Write JSON instead of formatted text")

	root.AddCommand(
		newProjectCmd(app),
		newScopeCmd(app),
		newNodeCmd(app),
		newScheduleCmd(app),
		newTypesCmd(app),
	)

	return root
}
