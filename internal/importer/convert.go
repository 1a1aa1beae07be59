package importer

import (
	"fmt"

	"github.com/alexanderramin/escopo/internal/domain"
)

// ToInput converts a validated node into a create payload. Children are not
// included; callers walk them after the parent has an id.
func ToInput(n *NodeImport) (domain.NodeInput, error) {
	start, err := domain.ParseOptionalDate(n.StartDate)
	if err != nil {
		return domain.NodeInput{}, fmt.Errorf("data_inicio: %w", err)
	}
	end, err := domain.ParseOptionalDate(n.TargetDate)
	if err != nil {
		return domain.NodeInput{}, fmt.Errorf("data_alvo: %w", err)
	}

	in := domain.NodeInput{
		Name:           &n.Name,
		StartDate:      start,
		TargetDate:     end,
		Order:          n.Order,
		EstimatedHours: n.EstimatedHours,
		WorkedHours:    n.WorkedHours,
	}
	if n.Description != "" {
		in.Description = &n.Description
	}
	if n.Status != "" {
		st := domain.Status(n.Status)
		in.Status = &st
	}
	if n.Type != "" {
		in.TypeID = &n.Type
	}
	return in, nil
}
