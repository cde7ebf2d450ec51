package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/billie-coop/confed/internal/navigator"
	"github.com/billie-coop/confed/internal/plugin"
	"github.com/billie-coop/confed/internal/plugin/drives"
	"github.com/billie-coop/confed/internal/store"
	"github.com/billie-coop/confed/internal/tui/styles"
)

func newEditCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit the configuration interactively (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runEdit(cmd.Context())
		},
	}
}

// runEdit loads both files and runs one editing session
func (a *app) runEdit(ctx context.Context) error {
	st := store.New(a.fs)

	root, err := st.LoadSchema(a.cfg.SchemaFile)
	if err != nil {
		return err
	}
	value, defaulted, err := st.LoadConfig(a.cfg.ConfigFile, root)
	if err != nil {
		return err
	}

	s := styles.CurrentTheme().S()
	if defaulted {
		fmt.Fprintln(a.out, s.Muted.Render(fmt.Sprintf("%s not found, starting from the schema defaults", a.cfg.ConfigFile)))
	}

	presenter := a.newPresenter(a.in, a.out)

	plugins := plugin.NewRegistry()
	drives.Register(plugins, drives.New(a.fs, a.cfg.ImportDir, presenter, a.out))

	nav := navigator.New(root, value, navigator.Options{
		Presenter: presenter,
		Plugins:   plugins,
		Save: func(v any) error {
			return st.Save(a.cfg.ConfigFile, v)
		},
		Out:        a.out,
		Document:   a.cfg.ConfigFile,
		LabelWidth: a.cfg.LabelWidth,
	})

	if err := nav.Run(ctx); err != nil {
		if interrupted(err) {
			fmt.Fprintln(a.out, s.Warning.Render(styles.WarningIcon+" Interrupted, nothing was saved"))
			return nil
		}
		return err
	}
	return nil
}
