package importer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TreeSchema is a functional scope and its nested levels as written in a
// tree file. JSON files parse too, since YAML is a superset.
type TreeSchema struct {
	Scope NodeImport `yaml:"escopo"`
}

// NodeImport is one node of the tree file. Children sit one level below.
type NodeImport struct {
	Name           string       `yaml:"nome"`
	Description    string       `yaml:"descricao,omitempty"`
	Status         string       `yaml:"status,omitempty"`
	StartDate      string       `yaml:"data_inicio,omitempty"`
	TargetDate     string       `yaml:"data_alvo,omitempty"`
	Order          *int         `yaml:"ordem,omitempty"`
	Type           string       `yaml:"tipo,omitempty"`
	EstimatedHours *float64     `yaml:"horas_estimadas,omitempty"`
	WorkedHours    *float64     `yaml:"horas_trabalhadas,omitempty"`
	Children       []NodeImport `yaml:"filhos,omitempty"`
}

// LoadTreeSchema reads and parses a tree file.
func LoadTreeSchema(path string) (*TreeSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseTreeSchema(data)
}

// ParseTreeSchema parses tree file contents.
func ParseTreeSchema(data []byte) (*TreeSchema, error) {
	var schema TreeSchema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing tree file: %w", err)
	}
	return &schema, nil
}

// Count returns the number of nodes in the tree, root included.
func (s *TreeSchema) Count() int {
	var count func(n NodeImport) int
	count = func(n NodeImport) int {
		c := 1
		for _, ch := range n.Children {
			c += count(ch)
		}
		return c
	}
	return count(s.Scope)
}
