package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/billie-coop/confed/internal/store"
	"github.com/billie-coop/confed/internal/tui/styles"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the schema and the configuration without editing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := store.New(a.fs)

			root, err := st.LoadSchema(a.cfg.SchemaFile)
			if err != nil {
				return err
			}
			_, defaulted, err := st.LoadConfig(a.cfg.ConfigFile, root)
			if err != nil {
				return err
			}

			s := styles.CurrentTheme().S()
			if defaulted {
				fmt.Fprintln(a.out, s.Warning.Render(fmt.Sprintf("%s %s not found, the schema defaults are valid", styles.WarningIcon, a.cfg.ConfigFile)))
				return nil
			}
			fmt.Fprintln(a.out, s.Success.Render(fmt.Sprintf("%s %s is valid", styles.CheckIcon, a.cfg.ConfigFile)))
			return nil
		},
	}
}
