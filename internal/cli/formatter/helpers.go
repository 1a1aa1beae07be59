package formatter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/escopo/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// RelativeDateFrom returns a short relative date such as "In 3d" or "2w ago".
func RelativeDateFrom(t time.Time, now time.Time) string {
	days := int(math.Round(domain.DateOnly(t).Sub(domain.DateOnly(now)).Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// StatusPill returns a colored indicator for a node or schedule status.
func StatusPill(s domain.Status) string {
	switch s {
	case domain.StatusPlanejado:
		return StatusStyle(s).Render("○ Planejado")
	case domain.StatusNaoIniciado:
		return StatusStyle(s).Render("○ Não iniciado")
	case domain.StatusEmAndamento:
		return StatusStyle(s).Render("● Em andamento")
	case domain.StatusConcluido:
		return StatusStyle(s).Render("✔ Concluído")
	case domain.StatusCancelado:
		return StatusStyle(s).Render("✖ Cancelado")
	case domain.StatusAtrasado:
		return StatusStyle(s).Render("▲ Atrasado")
	default:
		return StyleDim.Render(string(s))
	}
}

// ProjectStatusPill returns a colored indicator for a project status.
func ProjectStatusPill(s domain.ProjectStatus) string {
	switch s {
	case domain.ProjectEmAndamento:
		return StyleGreen.Render("● Em andamento")
	case domain.ProjectNaoIniciado:
		return StyleBlue.Render("○ Não iniciado")
	case domain.ProjectPausado:
		return StyleYellow.Render("○ Pausado")
	case domain.ProjectConcluido:
		return StyleDim.Render("✔ Concluído")
	case domain.ProjectCancelado:
		return StyleDim.Render("✖ Cancelado")
	default:
		return StyleDim.Render(string(s))
	}
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// FormatDate renders an optional date, or a dim "--" when absent.
func FormatDate(t *time.Time) string {
	if t == nil {
		return Dim("--")
	}
	return t.Format(domain.DateLayout)
}

// FormatRange renders "start → end" with absent bounds shown as "--".
func FormatRange(start, end *time.Time) string {
	if start == nil && end == nil {
		return Dim("--")
	}
	return FormatDate(start) + Dim(" → ") + FormatDate(end)
}

// FormatHours renders an hour amount without trailing zeros, e.g. "7.5h".
func FormatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64) + "h"
}

// FormatDays renders a whole-day count.
func FormatDays(d int) string {
	if d == 1 {
		return "1 dia"
	}
	return fmt.Sprintf("%d dias", d)
}
