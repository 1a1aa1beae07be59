package scheduler

import (
	"time"

	"github.com/alexanderramin/escopo/internal/domain"
)

// EffectiveStatus is the status an entry shows at now. Terminal statuses are
// returned as stored; an open entry whose end date (midnight of that day) is
// before now reads as atrasado, so a phase is late from the start of its due
// day. Storage is never touched.
func EffectiveStatus(e *domain.ScheduleEntry, now time.Time) domain.Status {
	if e.Status.IsTerminal() {
		return e.Status
	}
	if !e.EndDate.IsZero() && e.EndDate.Before(now) {
		return domain.StatusAtrasado
	}
	return e.Status
}

// IsOverdue reports whether the entry's effective status is atrasado.
func IsOverdue(e *domain.ScheduleEntry, now time.Time) bool {
	return EffectiveStatus(e, now) == domain.StatusAtrasado
}
