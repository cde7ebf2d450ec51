package cli

import (
	"fmt"

	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"

	"github.com/billie-coop/confed/internal/store"
	"github.com/billie-coop/confed/internal/tui/styles"
)

const showWidth = 100

func newShowCmd(a *app) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := store.New(a.fs)

			root, err := st.LoadSchema(a.cfg.SchemaFile)
			if err != nil {
				return err
			}
			value, defaulted, err := st.LoadConfig(a.cfg.ConfigFile, root)
			if err != nil {
				return err
			}

			doc := oj.JSON(value, &ojg.Options{Indent: 2, Sort: true})
			if plain {
				fmt.Fprintln(a.out, doc)
				return nil
			}

			title := a.cfg.ConfigFile
			if defaulted {
				title += " (defaults)"
			}

			r, err := styles.GetMarkdownRenderer(showWidth)
			if err != nil {
				return fmt.Errorf("failed to create renderer: %w", err)
			}
			rendered, err := r.Render("```json\n" + doc + "\n```\n")
			if err != nil {
				return fmt.Errorf("failed to render %s: %w", a.cfg.ConfigFile, err)
			}

			fmt.Fprintln(a.out, styles.RenderThemeGradient(title))
			fmt.Fprint(a.out, rendered)
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Print plain JSON without highlighting")
	return cmd
}
