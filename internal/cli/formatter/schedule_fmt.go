package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/escopo/internal/domain"
	"github.com/alexanderramin/escopo/internal/scheduler"
)

// FormatScheduleList renders schedule entries with their effective status and
// planned and actual durations.
func FormatScheduleList(views []scheduler.EntryView) string {
	headers := []string{"ID", "FASE", "STATUS", "PERÍODO", "DIAS", "REAL", "PROGRESSO", "RESPONSÁVEL"}
	rows := make([][]string, 0, len(views))
	for _, v := range views {
		e := v.Entry
		actual := Dim("--")
		if v.ActualDays != nil {
			actual = fmt.Sprint(*v.ActualDays)
		}
		rows = append(rows, []string{
			TruncID(e.ID),
			Bold(e.Phase),
			StatusPill(v.EffectiveStatus),
			FormatRange(&e.StartDate, &e.EndDate),
			fmt.Sprint(v.PlannedDays),
			actual,
			RenderProgress(e.PercentComplete, 10),
			domain.CoalesceStr(e.Owner, Dim("--")),
		})
	}
	return Table{Headers: headers, Rows: rows, Right: []int{4, 5}}.Render()
}

// FormatEntry renders a single schedule entry.
func FormatEntry(v *scheduler.EntryView) string {
	e := v.Entry
	var b strings.Builder
	line := func(label, value string) {
		b.WriteString(fmt.Sprintf("  %s  %s\n", Dim(fmt.Sprintf("%-12s", label)), value))
	}
	b.WriteString(fmt.Sprintf("%s  %s\n\n", Bold(e.Phase), StatusPill(v.EffectiveStatus)))
	line("ID", e.ID)
	line("PROJETO", e.ProjectID)
	line("PLANEJADO", fmt.Sprintf("%s (%s)", FormatRange(&e.StartDate, &e.EndDate), FormatDays(v.PlannedDays)))
	actual := FormatRange(e.ActualStart, e.ActualEnd)
	if v.ActualDays != nil {
		actual += fmt.Sprintf(" (%s)", FormatDays(*v.ActualDays))
	}
	line("REAL", actual)
	line("PROGRESSO", RenderProgress(e.PercentComplete, 20))
	if e.Owner != "" {
		line("RESPONSÁVEL", e.Owner)
	}
	if deps := scheduler.ParseDependencies(e.Dependencies); len(deps) > 0 {
		line("DEPENDE DE", strings.Join(deps, ", "))
	}
	if e.Description != "" {
		b.WriteString("\n  " + e.Description + "\n")
	}
	if e.Notes != "" {
		b.WriteString("\n  " + Dim(e.Notes) + "\n")
	}
	return b.String()
}

// FormatGantt draws one bar per record across the span of all records, scaled
// to width columns.
func FormatGantt(records []scheduler.GanttRecord, width int) string {
	if len(records) == 0 {
		return ""
	}
	if width < 10 {
		width = 10
	}

	lo, hi := records[0].Start, records[0].End
	nameWidth := 0
	for _, r := range records {
		if r.Start.Before(lo) {
			lo = r.Start
		}
		if r.End.After(hi) {
			hi = r.End
		}
		nameWidth = max(nameWidth, len([]rune(r.Name)))
	}
	span := hi.Sub(lo).Hours()/24 + 1
	col := func(t time.Time) int {
		return int(t.Sub(lo).Hours() / 24 * float64(width) / span)
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s  %s%s\n", strings.Repeat(" ", nameWidth),
		Dim(lo.Format(domain.DateLayout)),
		Dim(fmt.Sprintf("%*s", width-len(domain.DateLayout), hi.Format(domain.DateLayout)))))
	for _, r := range records {
		start := col(r.Start)
		end := max(col(r.End.AddDate(0, 0, 1)), start+1)
		end = min(end, width)
		length := end - start
		done := length * r.Progress / 100

		bar := strings.Repeat(" ", start) +
			StatusStyle(r.Status).Render(strings.Repeat(filledBlock, done)+strings.Repeat(emptyBlock, length-done)) +
			strings.Repeat(" ", width-end)

		label := r.Name + strings.Repeat(" ", nameWidth-len([]rune(r.Name)))
		b.WriteString(fmt.Sprintf("%s  %s  %s", label, bar, StatusPill(r.Status)))
		if len(r.Dependencies) > 0 {
			b.WriteString(Dim(" ← " + strings.Join(r.Dependencies, ", ")))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// FormatScheduleSummary renders a schedule summary.
func FormatScheduleSummary(s *scheduler.ScheduleSummary) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s  %s\n", RenderProgress(s.AveragePercent, 20), Dim("média de conclusão")))
	b.WriteString(fmt.Sprintf("%d fases, %s planejados\n\n", s.Total, FormatDays(s.PlannedDays)))
	for _, st := range []domain.Status{
		domain.StatusNaoIniciado, domain.StatusEmAndamento, domain.StatusAtrasado,
		domain.StatusConcluido, domain.StatusCancelado,
	} {
		b.WriteString(fmt.Sprintf("%s  %d\n", StatusPill(st), s.ByStatus[st]))
	}
	return RenderBox("Cronograma", strings.TrimRight(b.String(), "\n"))
}

// FormatLevelTypes renders the Level1 type catalog.
func FormatLevelTypes(types []*domain.LevelType) string {
	rows := make([][]string, 0, len(types))
	for _, t := range types {
		rows = append(rows, []string{Swatch(t.ColorHex) + " " + t.ID, Bold(t.Name), Dim(t.Description)})
	}
	return RenderTable([]string{"ID", "NOME", "DESCRIÇÃO"}, rows)
}
