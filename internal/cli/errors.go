package cli

import "github.com/alexanderramin/escopo/internal/domain"

// ExitCode maps an error returned by a command to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch domain.KindOf(err) {
	case domain.KindValidation:
		return 2
	case domain.KindParentNotFound:
		return 3
	case domain.KindNotFound:
		return 4
	default:
		return 1
	}
}
