package cli

import (
	"strings"
	"time"

	"github.com/alexanderramin/escopo/internal/domain"
	"github.com/spf13/pflag"
)

// dateValue is a pflag.Value for YYYY-MM-DD dates that stores into a
// *time.Time, leaving it nil while the flag is unset.
type dateValue struct {
	target **time.Time
}

var _ pflag.Value = (*dateValue)(nil)

func newDateValue(target **time.Time) *dateValue {
	return &dateValue{target: target}
}

func (d *dateValue) String() string {
	if d.target == nil || *d.target == nil {
		return ""
	}
	return (*d.target).Format(domain.DateLayout)
}

func (d *dateValue) Set(s string) error {
	t, err := domain.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	*d.target = &t
	return nil
}

func (d *dateValue) Type() string { return "date" }

func dateVar(fs *pflag.FlagSet, target **time.Time, name, usage string) {
	fs.Var(newDateValue(target), name, usage+" (YYYY-MM-DD)")
}

// statusVar registers a status flag whose value is checked by the service.
func statusVar(fs *pflag.FlagSet, target *string, usage string) {
	fs.StringVar(target, "status", "", usage)
}

func statusPtr(fs *pflag.FlagSet, raw string) *domain.Status {
	if !fs.Changed("status") {
		return nil
	}
	s := domain.Status(raw)
	return &s
}
