package scheduler

import (
	"math"
	"time"

	"github.com/alexanderramin/escopo/internal/domain"
)

// ScheduleSummary aggregates a project's schedule at a point in time.
type ScheduleSummary struct {
	Total          int                   `json:"total"`
	ByStatus       map[domain.Status]int `json:"por_status"`
	Overdue        int                   `json:"atrasados"`
	AveragePercent int                   `json:"percentual_medio"`
	PlannedDays    int                   `json:"dias_planejados"`
}

// SummarizeSchedule counts effective statuses and averages completion.
func SummarizeSchedule(entries []*domain.ScheduleEntry, now time.Time) ScheduleSummary {
	s := ScheduleSummary{ByStatus: map[domain.Status]int{}}
	pctSum := 0
	for _, e := range entries {
		st := EffectiveStatus(e, now)
		s.Total++
		s.ByStatus[st]++
		if st == domain.StatusAtrasado {
			s.Overdue++
		}
		pctSum += e.PercentComplete
		if d, ok := PlannedDuration(e); ok {
			s.PlannedDays += d
		}
	}
	if s.Total > 0 {
		s.AveragePercent = int(math.Round(float64(pctSum) / float64(s.Total)))
	}
	return s
}
