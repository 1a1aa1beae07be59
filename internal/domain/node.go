package domain

import (
	"strings"
	"time"
)

// Node is a functional-scope tree node at any level. Level-specific fields
// are only meaningful where the level's LevelSpec allows them: TypeID on Level1,
// the hour fields on Level4.
type Node struct {
	ID       string `json:"id"`
	Level    Level  `json:"nivel"`
	ParentID string `json:"parent_id"`
	// insertion sequence within the level, assigned by storage
	Seq         int        `json:"-"`
	Name        string     `json:"nome"`
	Description string     `json:"descricao,omitempty"`
	Status      Status     `json:"status"`
	StartDate   *time.Time `json:"data_inicio,omitempty"`
	TargetDate  *time.Time `json:"data_alvo,omitempty"`
	Order       int        `json:"ordem"`

	TypeID string `json:"nivel1_tipo_id,omitempty"`

	EstimatedHours *float64 `json:"horas_estimadas,omitempty"`
	WorkedHours    *float64 `json:"horas_trabalhadas,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks the node's own fields. Date containment against the parent
// is the caller's concern.
func (n *Node) Validate() error {
	if !n.Level.Valid() {
		return Validationf("unknown level %d", int(n.Level))
	}
	if strings.TrimSpace(n.Name) == "" {
		return Validationf("%s name is required", n.Level)
	}
	if strings.TrimSpace(n.ParentID) == "" {
		return Validationf("%s requires %s", n.Level, n.Level.Spec().ParentColumn)
	}
	if !ValidNodeStatuses[n.Status] {
		return Validationf("invalid status %q (expected planejado|em_andamento|concluido|cancelado)", n.Status)
	}
	if n.Order < 0 {
		return Validationf("ordem must be non-negative, got %d", n.Order)
	}
	spec := n.Level.Spec()
	if spec.Typed && strings.TrimSpace(n.TypeID) == "" {
		return Validationf("%s requires nivel1_tipo_id", n.Level)
	}
	if !spec.Typed && n.TypeID != "" {
		return Validationf("nivel1_tipo_id is only accepted on nivel1")
	}
	if !spec.Hours && (n.EstimatedHours != nil || n.WorkedHours != nil) {
		return Validationf("hours are only accepted on nivel4")
	}
	if n.EstimatedHours != nil && *n.EstimatedHours < 0 {
		return Validationf("horas_estimadas must be non-negative")
	}
	if n.WorkedHours != nil && *n.WorkedHours < 0 {
		return Validationf("horas_trabalhadas must be non-negative")
	}
	return ValidateRange(n.StartDate, n.TargetDate, nil, nil)
}

// NodeInput is a create or update payload. Nil fields are absent.
type NodeInput struct {
	Name           *string
	Description    *string
	Status         *Status
	StartDate      *time.Time
	TargetDate     *time.Time
	Order          *int
	TypeID         *string
	EstimatedHours *float64
	WorkedHours    *float64

	// ClearStartDate and ClearTargetDate remove a stored date under merge
	// semantics, where a nil date would otherwise keep the stored value.
	ClearStartDate  bool
	ClearTargetDate bool
}

// NewNode builds a node from a create payload, applying the defaults
// ordem = 0 and status = planejado.
func NewNode(level Level, parentID string, in NodeInput) *Node {
	n := &Node{Level: level, ParentID: parentID, Status: StatusPlanejado}
	in.applyReplace(n)
	return n
}

// Apply returns a copy of current with the payload applied under mode.
// Identity, parent, sequence and timestamps are carried over.
func (in NodeInput) Apply(current *Node, mode UpdateMode) *Node {
	next := *current
	if mode == UpdateMerge {
		in.applyMerge(&next)
		return &next
	}
	next.Status = StatusPlanejado
	in.applyReplace(&next)
	return &next
}

func (in NodeInput) applyReplace(n *Node) {
	n.Name = derefStr(in.Name)
	n.Description = derefStr(in.Description)
	if in.Status != nil {
		n.Status = *in.Status
	}
	n.StartDate = in.StartDate
	n.TargetDate = in.TargetDate
	n.Order = IntFromPtrWithDefault(0, in.Order)
	n.TypeID = derefStr(in.TypeID)
	n.EstimatedHours = in.EstimatedHours
	n.WorkedHours = in.WorkedHours
}

func (in NodeInput) applyMerge(n *Node) {
	if in.Name != nil {
		n.Name = *in.Name
	}
	if in.Description != nil {
		n.Description = *in.Description
	}
	if in.Status != nil {
		n.Status = *in.Status
	}
	if in.StartDate != nil || in.ClearStartDate {
		n.StartDate = in.StartDate
	}
	if in.TargetDate != nil || in.ClearTargetDate {
		n.TargetDate = in.TargetDate
	}
	n.Order = IntFromPtrWithDefault(n.Order, in.Order)
	if in.TypeID != nil {
		n.TypeID = *in.TypeID
	}
	if in.EstimatedHours != nil {
		n.EstimatedHours = in.EstimatedHours
	}
	if in.WorkedHours != nil {
		n.WorkedHours = in.WorkedHours
	}
}

// DatesChanged reports whether next carries a different date range than prev.
func DatesChanged(prev, next *Node) bool {
	return !SameDate(prev.StartDate, next.StartDate) || !SameDate(prev.TargetDate, next.TargetDate)
}

// HasRange reports whether both bounds of the node's range are present.
func (n *Node) HasRange() bool {
	return n.StartDate != nil && n.TargetDate != nil
}

// TreeNode is a node with its ordered children, as assembled by GetTree.
// Level-4 nodes carry an empty, non-nil Children slice.
type TreeNode struct {
	Node     *Node       `json:"node"`
	Children []*TreeNode `json:"filhos"`
}

// Walk visits t and every descendant depth-first in child order.
func (t *TreeNode) Walk(fn func(*TreeNode)) {
	fn(t)
	for _, c := range t.Children {
		c.Walk(fn)
	}
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
