package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/escopo/internal/domain"
)

// resolveProjectID accepts a full project ID or a unique prefix of one,
// such as the 8-character display ID.
func resolveProjectID(ctx context.Context, app *App, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", domain.Validationf("project ID is required")
	}

	projects, err := app.Projects.List(ctx)
	if err != nil {
		return "", err
	}

	var matches []string
	for _, p := range projects {
		if p.ID == input {
			return p.ID, nil
		}
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("project %q: %w", input, domain.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return "", domain.Validationf("project ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveTypeID accepts a Level1 type ID or its name, case-insensitively.
func resolveTypeID(ctx context.Context, app *App, input string) (string, error) {
	types, err := app.Types.List(ctx)
	if err != nil {
		return "", err
	}
	for _, t := range types {
		if t.ID == input || strings.EqualFold(t.Name, input) {
			return t.ID, nil
		}
	}
	return "", domain.Validationf("unknown nivel1 type %q", input)
}

// resolveParentProject is resolveProjectID for commands that create records
// under the project, where a missing project is a missing parent.
func resolveParentProject(ctx context.Context, app *App, input string) (string, error) {
	id, err := resolveProjectID(ctx, app, input)
	if errors.Is(err, domain.ErrNotFound) {
		return "", fmt.Errorf("project %q: %w", input, domain.ErrParentNotFound)
	}
	return id, err
}
