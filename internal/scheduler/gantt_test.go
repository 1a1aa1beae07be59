package scheduler

import (
	"testing"

	"github.com/alexanderramin/escopo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDependencies(t *testing.T) {
	assert.Equal(t, []string{"A", "B"}, ParseDependencies("A, B"))
	assert.Equal(t, []string{"Design", "API v2"}, ParseDependencies(" Design ,, API v2 ,"))
	assert.Equal(t, []string{}, ParseDependencies(""))
	assert.Equal(t, []string{}, ParseDependencies(" , "))
}

func TestProjectGantt(t *testing.T) {
	now := d(2024, 1, 15)
	a := entry(d(2024, 1, 1), d(2024, 1, 10), domain.StatusEmAndamento)
	a.ID, a.Phase, a.PercentComplete, a.Owner, a.Description = "a", "Design", 60, "Ana", "Wireframes"
	a.Dependencies = "Discovery"
	b := entry(d(2024, 1, 11), d(2024, 1, 31), domain.StatusNaoIniciado)
	b.ID, b.Phase = "b", "Build"

	records := ProjectGantt([]*domain.ScheduleEntry{a, b}, now)
	require.Len(t, records, 2)

	assert.Equal(t, GanttRecord{
		ID:           "a",
		Name:         "Design",
		Start:        d(2024, 1, 1),
		End:          d(2024, 1, 10),
		Progress:     60,
		Status:       domain.StatusAtrasado,
		Dependencies: []string{"Discovery"},
		Owner:        "Ana",
		Description:  "Wireframes",
	}, records[0])
	assert.Equal(t, "b", records[1].ID, "input order is kept")
	assert.Equal(t, domain.StatusNaoIniciado, records[1].Status)
	assert.NotNil(t, records[1].Dependencies)
}

func TestProjectGantt_CyclicDependenciesAreNotRejected(t *testing.T) {
	a := entry(d(2024, 1, 1), d(2024, 1, 2), domain.StatusNaoIniciado)
	a.Phase, a.Dependencies = "A", "B"
	b := entry(d(2024, 1, 1), d(2024, 1, 2), domain.StatusNaoIniciado)
	b.Phase, b.Dependencies = "B", "A"

	records := ProjectGantt([]*domain.ScheduleEntry{a, b}, d(2024, 1, 1))
	assert.Equal(t, []string{"B"}, records[0].Dependencies)
	assert.Equal(t, []string{"A"}, records[1].Dependencies)
}
