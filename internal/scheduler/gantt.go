package scheduler

import (
	"strings"
	"time"

	"github.com/alexanderramin/escopo/internal/domain"
)

// GanttRecord is a presentation-neutral timeline row.
type GanttRecord struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Start        time.Time     `json:"start"`
	End          time.Time     `json:"end"`
	Progress     int           `json:"progress"`
	Status       domain.Status `json:"status"`
	Dependencies []string      `json:"dependencies"`
	Owner        string        `json:"responsavel"`
	Description  string        `json:"descricao"`
}

// ProjectGantt maps entries to Gantt records in input order. Callers sort by
// start date first. Dependencies are labels only; they are not checked for
// cycles or for referring to existing phases.
func ProjectGantt(entries []*domain.ScheduleEntry, now time.Time) []GanttRecord {
	records := make([]GanttRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, GanttRecord{
			ID:           e.ID,
			Name:         e.Phase,
			Start:        e.StartDate,
			End:          e.EndDate,
			Progress:     e.PercentComplete,
			Status:       EffectiveStatus(e, now),
			Dependencies: ParseDependencies(e.Dependencies),
			Owner:        e.Owner,
			Description:  e.Description,
		})
	}
	return records
}

// ParseDependencies splits a comma-separated dependency list, trimming
// whitespace and dropping empty tokens.
func ParseDependencies(s string) []string {
	deps := []string{}
	for _, tok := range strings.Split(s, ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			deps = append(deps, tok)
		}
	}
	return deps
}
