package cli

import (
	"fmt"

	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/oj"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/billie-coop/confed/internal/schema"
	"github.com/billie-coop/confed/internal/store"
	"github.com/billie-coop/confed/internal/tui/styles"
)

func newDefaultsCmd(a *app) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Print the configuration the schema starts with",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := store.New(a.fs)

			root, err := st.LoadSchema(a.cfg.SchemaFile)
			if err != nil {
				return err
			}
			value := schema.DefaultValue(root)

			if !write {
				fmt.Fprintln(a.out, oj.JSON(value, &ojg.Options{Indent: 2, Sort: true}))
				return nil
			}

			exists, err := afero.Exists(a.fs, a.cfg.ConfigFile)
			if err != nil {
				return fmt.Errorf("failed to check %s: %w", a.cfg.ConfigFile, err)
			}
			if exists {
				return fmt.Errorf("%s already exists", a.cfg.ConfigFile)
			}
			if err := st.Save(a.cfg.ConfigFile, value); err != nil {
				return err
			}
			s := styles.CurrentTheme().S()
			fmt.Fprintln(a.out, s.Success.Render(fmt.Sprintf("%s wrote %s", styles.CheckIcon, a.cfg.ConfigFile)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the defaults to the configuration file if it does not exist")
	return cmd
}
