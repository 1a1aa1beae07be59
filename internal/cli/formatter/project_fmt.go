package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/escopo/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// FormatProjectList renders a styled project list inside a bordered box.
func FormatProjectList(projects []*domain.Project, now time.Time) string {
	headers := []string{"ID", "NOME", "CLIENTE", "STATUS", "PRAZO"}
	rows := make([][]string, 0, len(projects))

	for _, p := range projects {
		due := Dim("--")
		if p.TargetDate != nil {
			due = dueStyled(*p.TargetDate, now)
		}
		client := Dim("--")
		if strings.TrimSpace(p.Client) != "" {
			client = StylePurple.Render(p.Client)
		}
		rows = append(rows, []string{
			TruncID(p.ID),
			Bold(p.Name),
			client,
			ProjectStatusPill(p.Status),
			due,
		})
	}

	return RenderBox("Projetos", strings.TrimRight(RenderTable(headers, rows), "\n"))
}

// dueStyled colors a relative due date by urgency.
func dueStyled(due, now time.Time) string {
	text := RelativeDateFrom(due, now)
	days := int(domain.DateOnly(due).Sub(domain.DateOnly(now)).Hours() / 24)
	switch {
	case days <= 2:
		return StyleRed.Render(text)
	case days <= 7:
		return StyleYellow.Render(text)
	default:
		return StyleFg.Render(text)
	}
}

// FormatProjectShow renders a project card with its functional scopes beside it.
func FormatProjectShow(p *domain.Project, scopes []*domain.Node) string {
	var meta strings.Builder
	meta.WriteString(Bold(p.Name) + "\n\n")
	rows := [][2]string{
		{"ID", p.ID},
		{"CLIENTE", domain.CoalesceStr(p.Client, "--")},
		{"STATUS", ProjectStatusPill(p.Status)},
		{"INÍCIO", FormatDate(p.StartDate)},
		{"PRAZO", FormatDate(p.TargetDate)},
	}
	for _, r := range rows {
		meta.WriteString(fmt.Sprintf("%s  %s\n", Dim(fmt.Sprintf("%-8s", r[0])), r[1]))
	}

	var list strings.Builder
	list.WriteString(Header("Escopos funcionais") + "\n")
	if len(scopes) == 0 {
		list.WriteString(Dim("nenhum escopo"))
	}
	for _, s := range scopes {
		list.WriteString(fmt.Sprintf("%s %s  %s\n", TruncID(s.ID), Bold(s.Name), StatusPill(s.Status)))
	}

	left := lipgloss.NewStyle().MarginRight(4).Render(strings.TrimRight(meta.String(), "\n"))
	return RenderBox("Projeto", lipgloss.JoinHorizontal(lipgloss.Top, left, strings.TrimRight(list.String(), "\n")))
}
