package domain

import (
	"strings"
	"time"
)

type Project struct {
	ID         string        `json:"id"`
	Name       string        `json:"nome"`
	Client     string        `json:"cliente,omitempty"`
	Status     ProjectStatus `json:"status"`
	StartDate  *time.Time    `json:"data_inicio,omitempty"`
	TargetDate *time.Time    `json:"data_alvo,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// Validate checks required fields, the status value and the date range.
func (p *Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return Validationf("project name is required")
	}
	if !ValidProjectStatuses[p.Status] {
		return Validationf("invalid project status %q", p.Status)
	}
	return ValidateRange(p.StartDate, p.TargetDate, nil, nil)
}

// DisplayID returns the first 8 characters of the project ID.
func (p *Project) DisplayID() string {
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}

// LevelType is an entry of the closed Level1 type catalog (Frontend,
// Backend, DevOps...). The core only reads it.
type LevelType struct {
	ID          string `json:"id"`
	Name        string `json:"nome"`
	Description string `json:"descricao,omitempty"`
	ColorHex    string `json:"cor_hex,omitempty"`
	IconName    string `json:"icon_name,omitempty"`
}
