package domain

import (
	"fmt"
	"strings"
	"time"
)

// ScheduleEntry is one phase of a project's schedule. StartDate and EndDate
// form the planned range; the actual dates are recorded as work happens.
type ScheduleEntry struct {
	ID              string     `json:"id"`
	ProjectID       string     `json:"projeto_id"`
	Phase           string     `json:"fase"`
	Description     string     `json:"descricao,omitempty"`
	StartDate       time.Time  `json:"data_inicio"`
	EndDate         time.Time  `json:"data_fim"`
	ActualStart     *time.Time `json:"data_inicio_real,omitempty"`
	ActualEnd       *time.Time `json:"data_fim_real,omitempty"`
	PercentComplete int        `json:"percentual_concluido"`
	Owner           string     `json:"responsavel,omitempty"`
	// comma-separated phase identifiers, stored verbatim
	Dependencies string    `json:"dependencias,omitempty"`
	Notes        string    `json:"observacoes,omitempty"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Validate checks required fields, the stored status and both date ranges.
// A planned phase spans at least one day; actual dates may fall on one day.
func (e *ScheduleEntry) Validate() error {
	if strings.TrimSpace(e.ProjectID) == "" {
		return Validationf("projeto_id is required")
	}
	if strings.TrimSpace(e.Phase) == "" {
		return Validationf("fase is required")
	}
	if e.StartDate.IsZero() || e.EndDate.IsZero() {
		return Validationf("data_inicio and data_fim are required")
	}
	if e.PercentComplete < 0 || e.PercentComplete > 100 {
		return Validationf("percentual_concluido must be between 0 and 100, got %d", e.PercentComplete)
	}
	if e.Status == StatusAtrasado {
		return Validationf("status %q is derived and cannot be stored", e.Status)
	}
	if !ValidScheduleStatuses[e.Status] {
		return Validationf("invalid status %q (expected nao_iniciado|em_andamento|concluido|cancelado)", e.Status)
	}
	if !DateOnly(e.EndDate).After(DateOnly(e.StartDate)) {
		return fmt.Errorf("%w: data_fim %s must be after data_inicio %s", ErrInvalidRange,
			e.EndDate.Format(DateLayout), e.StartDate.Format(DateLayout))
	}
	return ValidateRange(e.ActualStart, e.ActualEnd, nil, nil)
}

// ApplyProgress sets the completion percentage and derives status and actual
// dates from it: the first progress stamps ActualStart, 100% stamps ActualEnd.
func (e *ScheduleEntry) ApplyProgress(pct int, now time.Time) error {
	if pct < 0 || pct > 100 {
		return Validationf("percentual must be between 0 and 100, got %d", pct)
	}
	today := DateOnly(now)
	if pct == 100 && e.ActualStart != nil && DateOnly(*e.ActualStart).After(today) {
		return Validationf("data_inicio_real %s is after %s; cannot record completion before the phase started",
			e.ActualStart.Format(DateLayout), today.Format(DateLayout))
	}

	e.PercentComplete = pct
	switch {
	case pct == 0:
		e.Status = StatusNaoIniciado
	case pct == 100:
		e.Status = StatusConcluido
	default:
		e.Status = StatusEmAndamento
	}
	if pct > 0 && e.ActualStart == nil {
		e.ActualStart = &today
	}
	if pct == 100 {
		e.ActualEnd = &today
	}
	e.UpdatedAt = now
	return nil
}
