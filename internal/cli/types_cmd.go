package cli

import (
	"github.com/alexanderramin/escopo/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newTypesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "types",
		Short: "Inspect the nivel1 type catalog",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List nivel1 types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			types, err := app.Types.List(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd, types, func() string { return formatter.FormatLevelTypes(types) })
		},
	})

	return cmd
}
