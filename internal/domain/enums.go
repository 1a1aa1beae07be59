package domain

// Status is the lifecycle state of a hierarchy node or schedule entry.
type Status string

const (
	StatusPlanejado   Status = "planejado"
	StatusNaoIniciado Status = "nao_iniciado"
	StatusEmAndamento Status = "em_andamento"
	StatusConcluido   Status = "concluido"
	StatusCancelado   Status = "cancelado"

	// StatusAtrasado is derived at read time and never persisted.
	StatusAtrasado Status = "atrasado"
)

// ValidNodeStatuses is the canonical set of statuses a hierarchy node may store.
var ValidNodeStatuses = map[Status]bool{
	StatusPlanejado: true, StatusEmAndamento: true,
	StatusConcluido: true, StatusCancelado: true,
}

// ValidScheduleStatuses is the canonical set of statuses a schedule entry may store.
var ValidScheduleStatuses = map[Status]bool{
	StatusNaoIniciado: true, StatusEmAndamento: true,
	StatusConcluido: true, StatusCancelado: true,
}

// IsTerminal reports whether the status can no longer become overdue.
func (s Status) IsTerminal() bool {
	return s == StatusConcluido || s == StatusCancelado
}

type ProjectStatus string

const (
	ProjectNaoIniciado ProjectStatus = "nao_iniciado"
	ProjectEmAndamento ProjectStatus = "em_andamento"
	ProjectConcluido   ProjectStatus = "concluido"
	ProjectPausado     ProjectStatus = "pausado"
	ProjectCancelado   ProjectStatus = "cancelado"
)

// ValidProjectStatuses is the canonical set of accepted project status strings.
var ValidProjectStatuses = map[ProjectStatus]bool{
	ProjectNaoIniciado: true, ProjectEmAndamento: true, ProjectConcluido: true,
	ProjectPausado: true, ProjectCancelado: true,
}

// UpdateMode selects how UpdateNode treats fields absent from the payload.
type UpdateMode string

const (
	// UpdateReplace stores the payload as the full record.
	UpdateReplace UpdateMode = "replace"
	// UpdateMerge keeps stored values for absent fields, then validates.
	UpdateMerge UpdateMode = "merge"
)
