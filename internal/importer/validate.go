package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/escopo/internal/domain"
)

// ValidateTreeSchema checks the whole tree before anything is written and
// returns every problem found, each prefixed with its path in the file.
// The Level1 type catalog is checked later, against storage.
func ValidateTreeSchema(schema *TreeSchema) []error {
	return validateNode(&schema.Scope, domain.LevelScope, "escopo", nil, nil)
}

func validateNode(n *NodeImport, level domain.Level, path string, parentStart, parentEnd *time.Time) []error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%s: %s", path, fmt.Sprintf(format, args...)))
	}

	if strings.TrimSpace(n.Name) == "" {
		fail("nome is required")
	}
	if n.Status != "" && !domain.ValidNodeStatuses[domain.Status(n.Status)] {
		fail("invalid status %q", n.Status)
	}
	if n.Order != nil && *n.Order < 0 {
		fail("ordem must be non-negative")
	}

	spec := level.Spec()
	if spec.Typed && n.Type == "" {
		fail("tipo is required on %s", level)
	}
	if !spec.Typed && n.Type != "" {
		fail("tipo is only accepted on %s", domain.Level1)
	}
	if !spec.Hours && (n.EstimatedHours != nil || n.WorkedHours != nil) {
		fail("hours are only accepted on %s", domain.Level4)
	}
	if n.EstimatedHours != nil && *n.EstimatedHours < 0 {
		fail("horas_estimadas must be non-negative")
	}
	if n.WorkedHours != nil && *n.WorkedHours < 0 {
		fail("horas_trabalhadas must be non-negative")
	}

	start, startErr := domain.ParseOptionalDate(n.StartDate)
	if startErr != nil {
		fail("data_inicio: invalid date %q (expected YYYY-MM-DD)", n.StartDate)
	}
	end, endErr := domain.ParseOptionalDate(n.TargetDate)
	if endErr != nil {
		fail("data_alvo: invalid date %q (expected YYYY-MM-DD)", n.TargetDate)
	}
	if startErr == nil && endErr == nil {
		ps, pe := parentStart, parentEnd
		if level < domain.Level2 {
			ps, pe = nil, nil
		}
		if err := domain.ValidateRange(start, end, ps, pe); err != nil {
			fail("%v", err)
		}
	}

	child, ok := level.Child()
	if !ok {
		if len(n.Children) > 0 {
			fail("%s is the leaf level and cannot have filhos", level)
		}
		return errs
	}
	for i := range n.Children {
		errs = append(errs, validateNode(&n.Children[i], child, fmt.Sprintf("%s.filhos[%d]", path, i), start, end)...)
	}
	return errs
}
