package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

func validEntry() *ScheduleEntry {
	return &ScheduleEntry{
		ProjectID: "proj",
		Phase:     "Discovery",
		StartDate: *date("2024-01-01"),
		EndDate:   *date("2024-01-10"),
		Status:    StatusNaoIniciado,
	}
}

func TestScheduleEntryValidate_OK(t *testing.T) {
	assert.NoError(t, validEntry().Validate())
}

func TestScheduleEntryValidate_Rejects(t *testing.T) {
	cases := map[string]func(e *ScheduleEntry){
		"missing phase":   func(e *ScheduleEntry) { e.Phase = "" },
		"missing project": func(e *ScheduleEntry) { e.ProjectID = "" },
		"pct over 100":    func(e *ScheduleEntry) { e.PercentComplete = 101 },
		"pct negative":    func(e *ScheduleEntry) { e.PercentComplete = -1 },
		"derived status":  func(e *ScheduleEntry) { e.Status = StatusAtrasado },
		"node status":     func(e *ScheduleEntry) { e.Status = StatusPlanejado },
		"zero end":        func(e *ScheduleEntry) { e.EndDate = time.Time{} },
		"end before start": func(e *ScheduleEntry) {
			e.EndDate = *date("2023-12-31")
		},
		"end on start day": func(e *ScheduleEntry) {
			e.EndDate = e.StartDate
		},
		"actual end before actual start": func(e *ScheduleEntry) {
			e.ActualStart = date("2024-01-05")
			e.ActualEnd = date("2024-01-04")
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			e := validEntry()
			mutate(e)
			assert.ErrorIs(t, e.Validate(), ErrValidation)
		})
	}
}

func TestApplyProgress_DerivesStatus(t *testing.T) {
	cases := []struct {
		pct    int
		status Status
	}{
		{0, StatusNaoIniciado},
		{1, StatusEmAndamento},
		{99, StatusEmAndamento},
		{100, StatusConcluido},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%d%%", tc.pct), func(t *testing.T) {
			e := validEntry()
			require.NoError(t, e.ApplyProgress(tc.pct, testNow))
			assert.Equal(t, tc.status, e.Status)
			assert.Equal(t, tc.pct, e.PercentComplete)
		})
	}
}

func TestApplyProgress_StampsActualDates(t *testing.T) {
	e := validEntry()
	require.NoError(t, e.ApplyProgress(40, testNow))
	require.NotNil(t, e.ActualStart)
	assert.Equal(t, "2024-01-15", e.ActualStart.Format(DateLayout))
	assert.Nil(t, e.ActualEnd)

	later := testNow.AddDate(0, 0, 3)
	require.NoError(t, e.ApplyProgress(100, later))
	assert.Equal(t, "2024-01-15", e.ActualStart.Format(DateLayout), "first start is kept")
	require.NotNil(t, e.ActualEnd)
	assert.Equal(t, "2024-01-18", e.ActualEnd.Format(DateLayout))
}

func TestApplyProgress_OutOfRange(t *testing.T) {
	e := validEntry()
	err := e.ApplyProgress(120, testNow)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, 0, e.PercentComplete, "entry unchanged on error")
}

func TestScheduleEntryValidate_SameDayEndIsInvalidRange(t *testing.T) {
	e := validEntry()
	e.EndDate = e.StartDate
	err := e.Validate()
	assert.ErrorIs(t, err, ErrInvalidRange)
	assert.Contains(t, err.Error(), "2024-01-01")
}

func TestScheduleEntryValidate_ActualDatesMayShareADay(t *testing.T) {
	e := validEntry()
	e.ActualStart, e.ActualEnd = date("2024-01-03"), date("2024-01-03")
	assert.NoError(t, e.Validate())
}

func TestApplyProgress_RejectsCompletionBeforeActualStart(t *testing.T) {
	e := validEntry()
	e.PercentComplete = 40
	e.Status = StatusEmAndamento
	e.ActualStart = date("2024-03-01")

	err := e.ApplyProgress(100, *date("2024-02-01"))
	assert.ErrorIs(t, err, ErrValidation)
	assert.Nil(t, e.ActualEnd)
	assert.Equal(t, 40, e.PercentComplete, "entry unchanged on error")
	assert.Equal(t, StatusEmAndamento, e.Status)
	assert.NoError(t, e.Validate())
}
