package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// wantJSON reports whether cmd should emit JSON: either --json was given or
// stdout is a file or pipe rather than a terminal.
func wantJSON(cmd *cobra.Command) bool {
	if v, err := cmd.Flags().GetBool("json"); err == nil && v {
		return true
	}
	f, ok := cmd.OutOrStdout().(*os.File)
	if !ok {
		return false
	}
	return !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
}

// render writes v as indented JSON or the text produced by human.
func render(cmd *cobra.Command, v any, human func() string) error {
	out := cmd.OutOrStdout()
	if wantJSON(cmd) {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := fmt.Fprintln(out, human())
	return err
}

// report prints a one-line confirmation, or v as JSON.
func report(cmd *cobra.Command, v any, format string, args ...any) error {
	return render(cmd, v, func() string { return fmt.Sprintf(format, args...) })
}
