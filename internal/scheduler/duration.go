package scheduler

import (
	"math"
	"time"

	"github.com/alexanderramin/escopo/internal/domain"
)

const day = 24 * time.Hour

// daysBetween returns ceil((end - start) / 1 day) over calendar dates.
func daysBetween(start, end time.Time) int {
	d := domain.DateOnly(end).Sub(domain.DateOnly(start))
	return int(math.Ceil(float64(d) / float64(day)))
}

// PlannedDuration returns the planned length of the entry in whole days.
// ok is false when either planned bound is missing.
func PlannedDuration(e *domain.ScheduleEntry) (days int, ok bool) {
	if e.StartDate.IsZero() || e.EndDate.IsZero() {
		return 0, false
	}
	return daysBetween(e.StartDate, e.EndDate), true
}

// ActualDuration returns the recorded length of the entry in whole days, or
// nil unless both actual dates are present.
func ActualDuration(e *domain.ScheduleEntry) *int {
	if e.ActualStart == nil || e.ActualEnd == nil {
		return nil
	}
	d := daysBetween(*e.ActualStart, *e.ActualEnd)
	return &d
}

// ProgressPercent returns round(100 * worked / estimated), or 0 when nothing
// is estimated. The result is never negative.
func ProgressPercent(worked, estimated float64) int {
	if estimated <= 0 || math.IsNaN(worked) || worked <= 0 {
		return 0
	}
	return int(math.Round(100 * worked / estimated))
}

// EntryView is a schedule entry annotated with its read-time metrics.
type EntryView struct {
	Entry           *domain.ScheduleEntry `json:"entrada"`
	EffectiveStatus domain.Status         `json:"status_efetivo"`
	PlannedDays     int                   `json:"duracao_planejada_dias"`
	ActualDays      *int                  `json:"duracao_real_dias,omitempty"`
}

// Annotate computes the view of every entry at now, preserving input order.
func Annotate(entries []*domain.ScheduleEntry, now time.Time) []EntryView {
	views := make([]EntryView, 0, len(entries))
	for _, e := range entries {
		planned, _ := PlannedDuration(e)
		views = append(views, EntryView{
			Entry:           e,
			EffectiveStatus: EffectiveStatus(e, now),
			PlannedDays:     planned,
			ActualDays:      ActualDuration(e),
		})
	}
	return views
}

// FilterByStatus keeps the views whose effective status is s.
func FilterByStatus(views []EntryView, s domain.Status) []EntryView {
	out := make([]EntryView, 0, len(views))
	for _, v := range views {
		if v.EffectiveStatus == s {
			out = append(out, v)
		}
	}
	return out
}
