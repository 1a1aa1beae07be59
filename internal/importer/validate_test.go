package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrInt(i int) *int           { return &i }
func ptrFloat(f float64) *float64 { return &f }

const fullTree = `
escopo:
  nome: Portal do Cliente
  data_inicio: 2024-01-01
  data_alvo: 2024-06-30
  filhos:
    - nome: API
      tipo: backend
      data_inicio: 2024-01-15
      data_alvo: 2024-04-30
      filhos:
        - nome: Autenticação
          data_inicio: 2024-02-01
          data_alvo: 2024-03-15
          ordem: 1
          filhos:
            - nome: Login
              filhos:
                - nome: Endpoint POST /login
                  status: em_andamento
                  horas_estimadas: 8
                  horas_trabalhadas: 3
                - nome: Rate limiting
                  horas_estimadas: 4
`

func validMinimalSchema() *TreeSchema {
	return &TreeSchema{Scope: NodeImport{
		Name: "Escopo",
		Children: []NodeImport{{
			Name: "Frontend", Type: "frontend",
			Children: []NodeImport{{
				Name: "Telas",
				Children: []NodeImport{{
					Name:     "Login",
					Children: []NodeImport{{Name: "Formulário", EstimatedHours: ptrFloat(6)}},
				}},
			}},
		}},
	}}
}

func TestParseTreeSchema_Full(t *testing.T) {
	schema, err := ParseTreeSchema([]byte(fullTree))
	require.NoError(t, err)

	assert.Equal(t, "Portal do Cliente", schema.Scope.Name)
	assert.Equal(t, "2024-01-01", schema.Scope.StartDate)
	require.Len(t, schema.Scope.Children, 1)
	api := schema.Scope.Children[0]
	assert.Equal(t, "backend", api.Type)
	leaf := api.Children[0].Children[0].Children[0]
	assert.Equal(t, "em_andamento", leaf.Status)
	require.NotNil(t, leaf.EstimatedHours)
	assert.Equal(t, 8.0, *leaf.EstimatedHours)
	assert.Equal(t, 6, schema.Count())

	assert.Empty(t, ValidateTreeSchema(schema))
}

func TestParseTreeSchema_JSON(t *testing.T) {
	schema, err := ParseTreeSchema([]byte(`{"escopo": {"nome": "E", "filhos": []}}`))
	require.NoError(t, err)
	assert.Equal(t, "E", schema.Scope.Name)
}

func TestValidateTreeSchema_ValidMinimal(t *testing.T) {
	assert.Empty(t, ValidateTreeSchema(validMinimalSchema()))
}

func TestValidateTreeSchema_CollectsAllErrors(t *testing.T) {
	schema := validMinimalSchema()
	schema.Scope.Name = ""
	schema.Scope.Children[0].Type = ""
	schema.Scope.Children[0].Children[0].Order = ptrInt(-2)
	schema.Scope.Children[0].Children[0].Children[0].Status = "atrasado"

	errs := ValidateTreeSchema(schema)
	require.Len(t, errs, 4)
	assert.Contains(t, errs[0].Error(), "escopo: nome is required")
	assert.Contains(t, errs[1].Error(), "escopo.filhos[0]: tipo is required")
	assert.Contains(t, errs[2].Error(), "escopo.filhos[0].filhos[0]: ordem")
	assert.Contains(t, errs[3].Error(), `invalid status "atrasado"`)
}

func TestValidateTreeSchema_LevelSpecificFields(t *testing.T) {
	schema := validMinimalSchema()
	schema.Scope.Type = "backend"
	schema.Scope.Children[0].Children[0].EstimatedHours = ptrFloat(1)
	leaf := &schema.Scope.Children[0].Children[0].Children[0].Children[0]
	leaf.Children = []NodeImport{{Name: "too deep"}}
	leaf.WorkedHours = ptrFloat(-1)

	var msgs []string
	for _, err := range ValidateTreeSchema(schema) {
		msgs = append(msgs, err.Error())
	}
	joined := strings.Join(msgs, "\n")
	assert.Contains(t, joined, "escopo: tipo is only accepted on nivel1")
	assert.Contains(t, joined, "hours are only accepted on nivel4")
	assert.Contains(t, joined, "horas_trabalhadas must be non-negative")
	assert.Contains(t, joined, "leaf level")
}

func TestValidateTreeSchema_Dates(t *testing.T) {
	schema := validMinimalSchema()
	schema.Scope.StartDate = "2024-13-01"
	schema.Scope.Children[0].StartDate = "2024-05-01"
	schema.Scope.Children[0].TargetDate = "2024-04-01"

	errs := ValidateTreeSchema(schema)
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].Error(), "data_inicio: invalid date")
	assert.Contains(t, errs[1].Error(), "escopo.filhos[0]")
}

func TestValidateTreeSchema_ContainmentFromLevel2(t *testing.T) {
	schema := validMinimalSchema()
	// Level1 outside the scope range is allowed; Level2 outside Level1 is not.
	schema.Scope.StartDate, schema.Scope.TargetDate = "2024-01-01", "2024-01-31"
	l1 := &schema.Scope.Children[0]
	l1.StartDate, l1.TargetDate = "2024-03-01", "2024-03-31"
	l1.Children[0].StartDate = "2024-04-02"

	errs := ValidateTreeSchema(schema)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "escopo.filhos[0].filhos[0]")
	assert.Contains(t, errs[0].Error(), "2024-03-01..2024-03-31")
}
