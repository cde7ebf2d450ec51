// Package cli provides the confed command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/billie-coop/confed/internal/config"
	"github.com/billie-coop/confed/internal/logging"
	"github.com/billie-coop/confed/internal/navigator"
	"github.com/billie-coop/confed/internal/tui"
	"github.com/billie-coop/confed/internal/tui/styles"
)

var (
	// Version information set at build time
	Version   = "0.1.0"
	BuildTime = "dev"
)

// app carries what the commands share. Tests swap the filesystem, the
// streams and the presenter.
type app struct {
	fs     afero.Fs
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	newPresenter func(in io.Reader, out io.Writer) navigator.Presenter

	cfg     *config.Config
	flags   flags
	logFile io.Closer
}

// flags mirror config.Config; only flags set on the command line override
// the loaded settings.
type flags struct {
	envFile    string
	schemaFile string
	configFile string
	importDir  string
	labelWidth int
	theme      string
	logLevel   string
	logFile    string
	printLogs  bool
}

func newApp() *app {
	return &app{
		fs:     afero.NewOsFs(),
		in:     os.Stdin,
		out:    os.Stdout,
		errOut: os.Stderr,
		newPresenter: func(in io.Reader, out io.Writer) navigator.Presenter {
			return tui.NewTerminal(in, out)
		},
	}
}

func newRootCmd(a *app) *cobra.Command {
	defaults := config.DefaultConfig()

	root := &cobra.Command{
		Use:   "confed",
		Short: "confed - schema-driven configuration editor",
		Long: `confed edits a JSON configuration file through terminal menus. The
shape of the file is described by a schema file; every edit keeps the
configuration valid against it.

Run 'confed' to start editing, 'confed validate' to check the files without
opening the editor.`,
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runEdit(cmd.Context())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.envFile, "env-file", ".env", "Settings file read before the environment")
	pf.StringVarP(&a.flags.schemaFile, "schema", "s", defaults.SchemaFile, "Path to the schema file")
	pf.StringVarP(&a.flags.configFile, "config", "c", defaults.ConfigFile, "Path to the configuration file")
	pf.StringVar(&a.flags.importDir, "import-dir", defaults.ImportDir, "Directory scanned for Excel workbooks")
	pf.IntVar(&a.flags.labelWidth, "label-width", defaults.LabelWidth, "Maximum width of list rows")
	pf.StringVar(&a.flags.theme, "theme", defaults.Theme, "Color theme")
	pf.StringVar(&a.flags.logLevel, "log-level", defaults.LogLevel, "Log level (DEBUG|INFO|WARN|ERROR)")
	pf.StringVar(&a.flags.logFile, "log-file", "", "Append logs to this file")
	pf.BoolVar(&a.flags.printLogs, "print-logs", false, "Print logs to stderr")

	root.SetVersionTemplate(fmt.Sprintf("confed %s (%s)\n", Version, BuildTime))
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	root.AddCommand(newEditCmd(a))
	root.AddCommand(newValidateCmd(a))
	root.AddCommand(newDefaultsCmd(a))
	root.AddCommand(newShowCmd(a))
	return root
}

// setup resolves the settings and prepares logging and the theme
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.flags.envFile)
	if err != nil {
		return err
	}

	f := cmd.Flags()
	if f.Changed("schema") {
		cfg.SchemaFile = a.flags.schemaFile
	}
	if f.Changed("config") {
		cfg.ConfigFile = a.flags.configFile
	}
	if f.Changed("import-dir") {
		cfg.ImportDir = a.flags.importDir
	}
	if f.Changed("label-width") {
		cfg.LabelWidth = a.flags.labelWidth
	}
	if f.Changed("theme") {
		cfg.Theme = a.flags.theme
	}
	if f.Changed("log-level") {
		cfg.LogLevel = a.flags.logLevel
	}
	if f.Changed("log-file") {
		cfg.LogFile = a.flags.logFile
	}
	if f.Changed("print-logs") {
		cfg.PrintLogs = a.flags.printLogs
	}

	if err := cfg.Finalize(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	if err := styles.SetTheme(cfg.Theme); err != nil {
		return err
	}

	opts := logging.Options{Level: cfg.LogLevel, File: cfg.LogFile}
	if cfg.PrintLogs {
		opts.Console = a.errOut
	}
	closer, err := logging.Setup(opts)
	if err != nil {
		return err
	}
	a.logFile = closer

	a.cfg = cfg
	log := logging.Component("cli")
	log.Debug().
		Str("schema", cfg.SchemaFile).
		Str("config", cfg.ConfigFile).
		Str("theme", cfg.Theme).
		Msg("settings resolved")
	return nil
}

func (a *app) close() {
	if a.logFile != nil {
		a.logFile.Close()
		a.logFile = nil
	}
}

// execute runs the command line and renders a failure in the error style
func (a *app) execute(ctx context.Context, args []string) error {
	defer a.close()

	root := newRootCmd(a)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err != nil {
		s := styles.CurrentTheme().S()
		fmt.Fprintln(a.errOut, s.Error.Render(styles.ErrorIcon+" "+err.Error()))
	}
	return err
}

// Execute runs the confed command line
func Execute() error {
	return newApp().execute(context.Background(), os.Args[1:])
}

// interrupted reports whether err came from the operator aborting a prompt
func interrupted(err error) bool {
	return errors.Is(err, context.Canceled)
}
