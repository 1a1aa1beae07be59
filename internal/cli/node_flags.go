package cli

import (
	"context"
	"time"

	"github.com/alexanderramin/escopo/internal/domain"
	"github.com/spf13/cobra"
)

// nodeFlags collects the editable node fields. Only flags the user set end
// up in the NodeInput, so merge updates keep everything else.
type nodeFlags struct {
	name, description, status, typ string
	start, due                     *time.Time
	order                          int
	estimated, worked              float64
	clearStart, clearDue           bool
}

func (f *nodeFlags) register(cmd *cobra.Command, update bool) {
	fs := cmd.Flags()
	fs.StringVar(&f.name, "name", "", "Node name")
	fs.StringVar(&f.description, "description", "", "Free-text description")
	statusVar(fs, &f.status, "planejado|em_andamento|concluido|cancelado")
	dateVar(fs, &f.start, "start", "Start date")
	dateVar(fs, &f.due, "due", "Target date")
	fs.IntVar(&f.order, "order", 0, "Display order among siblings")
	fs.StringVar(&f.typ, "type", "", "Nivel1 type name or ID")
	fs.Float64Var(&f.estimated, "estimated", 0, "Estimated hours (nivel4)")
	fs.Float64Var(&f.worked, "worked", 0, "Worked hours (nivel4)")
	if update {
		fs.BoolVar(&f.clearStart, "clear-start", false, "Remove the start date")
		fs.BoolVar(&f.clearDue, "clear-due", false, "Remove the target date")
	}
}

func (f *nodeFlags) input(ctx context.Context, cmd *cobra.Command, app *App) (domain.NodeInput, error) {
	fs := cmd.Flags()
	var in domain.NodeInput
	if fs.Changed("name") {
		in.Name = &f.name
	}
	if fs.Changed("description") {
		in.Description = &f.description
	}
	in.Status = statusPtr(fs, f.status)
	in.StartDate = f.start
	in.TargetDate = f.due
	if fs.Changed("order") {
		in.Order = &f.order
	}
	if fs.Changed("type") {
		id, err := resolveTypeID(ctx, app, f.typ)
		if err != nil {
			return in, err
		}
		in.TypeID = &id
	}
	if fs.Changed("estimated") {
		in.EstimatedHours = &f.estimated
	}
	if fs.Changed("worked") {
		in.WorkedHours = &f.worked
	}
	if f.clearStart {
		if in.StartDate != nil {
			return in, domain.Validationf("--start and --clear-start are mutually exclusive")
		}
		in.ClearStartDate = true
	}
	if f.clearDue {
		if in.TargetDate != nil {
			return in, domain.Validationf("--due and --clear-due are mutually exclusive")
		}
		in.ClearTargetDate = true
	}
	return in, nil
}
