// Package rollup aggregates hierarchy nodes into dashboard summaries.
package rollup

import (
	"sort"

	"github.com/alexanderramin/escopo/internal/domain"
	"github.com/alexanderramin/escopo/internal/scheduler"
)

// Item is one node as seen by the rollup: its status, the category it is
// grouped under and its hours. Missing hours count as zero.
type Item struct {
	Status         domain.Status
	Category       string
	EstimatedHours float64
	WorkedHours    float64
}

// CategoryTotals is the per-category slice of a Summary.
type CategoryTotals struct {
	Count          int     `json:"total"`
	Completed      int     `json:"concluidos"`
	EstimatedHours float64 `json:"horas_estimadas"`
	WorkedHours    float64 `json:"horas_trabalhadas"`
}

type Summary struct {
	Total               int                       `json:"total"`
	ByStatus            map[domain.Status]int     `json:"por_status"`
	ByCategory          map[string]CategoryTotals `json:"por_categoria"`
	EstimatedHoursTotal float64                   `json:"horas_estimadas_total"`
	WorkedHoursTotal    float64                   `json:"horas_trabalhadas_total"`
	// Progress is round(100 * worked / estimated) over all items, 0 when
	// nothing is estimated. It is derived from hours, not from status counts.
	Progress int `json:"progresso_geral"`
}

// Summarize aggregates items in a single pass.
func Summarize(items []Item) Summary {
	s := Summary{
		ByStatus:   map[domain.Status]int{},
		ByCategory: map[string]CategoryTotals{},
	}
	for _, it := range items {
		s.Total++
		s.ByStatus[it.Status]++
		s.EstimatedHoursTotal += it.EstimatedHours
		s.WorkedHoursTotal += it.WorkedHours

		c := s.ByCategory[it.Category]
		c.Count++
		if it.Status == domain.StatusConcluido {
			c.Completed++
		}
		c.EstimatedHours += it.EstimatedHours
		c.WorkedHours += it.WorkedHours
		s.ByCategory[it.Category] = c
	}
	s.Progress = scheduler.ProgressPercent(s.WorkedHoursTotal, s.EstimatedHoursTotal)
	return s
}

// FromNodes converts nodes to items, grouping each under category(n).
func FromNodes(nodes []*domain.Node, category func(*domain.Node) string) []Item {
	items := make([]Item, 0, len(nodes))
	for _, n := range nodes {
		items = append(items, Item{
			Status:         n.Status,
			Category:       category(n),
			EstimatedHours: domain.Float64FromPtrWithDefault(0, n.EstimatedHours),
			WorkedHours:    domain.Float64FromPtrWithDefault(0, n.WorkedHours),
		})
	}
	return items
}

// Categories returns the category labels of s in sorted order.
func (s Summary) Categories() []string {
	keys := make([]string, 0, len(s.ByCategory))
	for k := range s.ByCategory {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
