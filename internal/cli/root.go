// Package cli implements the assetdesk command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/assetdesk/internal/logging"
	"github.com/mesh-intelligence/assetdesk/internal/paths"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// exitCodeError carries the exit code a command failure maps to.
type exitCodeError struct {
	code int
	err  error
}

func (e *exitCodeError) Error() string { return e.err.Error() }
func (e *exitCodeError) Unwrap() error { return e.err }

// userError marks err as caused by bad input (exit 1).
func userError(err error) error {
	return &exitCodeError{code: exitUserError, err: err}
}

// sysError marks err as an environment or storage failure (exit 2).
func sysError(err error) error {
	return &exitCodeError{code: exitSysError, err: err}
}

// ExitCode maps an error returned by the root command to a process exit code.
// Errors without a code, such as flag parsing errors, are user errors.
func ExitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ce *exitCodeError
	if errors.As(err, &ce) {
		return ce.code
	}
	return exitUserError
}

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	logLevel  string
}

// app is the state shared by one command tree.
type app struct {
	flags     rootFlags
	configDir string
	settings  settings
	logger    *slog.Logger
}

// NewRootCmd creates the top-level "assetdesk" command with global flags
// and all subcommands registered. Each call returns an independent tree.
func NewRootCmd() *cobra.Command {
	a := &app{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	root := &cobra.Command{
		Use:   "assetdesk",
		Short: "Browse and manage the asset catalog",
		Long: "assetdesk lists vehicles and battery packs as searchable, sortable,\n" +
			"paginated tables and manages the catalog behind them.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.preRun,
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $(CWD)/"+paths.DefaultDataDirName+")")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")

	root.AddCommand(
		newVersionCmd(),
		a.newInitCmd(),
		a.newListCmd(),
		a.newGetCmd(),
		a.newCreateCmd(),
		a.newDeleteCmd(),
		a.newSuggestCmd(),
		a.newBrowseCmd(),
		a.newMenuCmd(),
		a.newWhoamiCmd(),
	)
	return root
}

// preRun resolves directories, loads config.yaml and builds the logger.
func (a *app) preRun(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	a.configDir = configDir

	s, err := loadSettings(configDir)
	if err != nil {
		return sysError(err)
	}
	s.DataDir, err = paths.ResolveDataDir(a.flags.dataDir, s.DataDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve data dir: %w", err))
	}
	if a.flags.logLevel != "" {
		s.LogLevel = a.flags.logLevel
	}
	if err := s.catalogConfig().Validate(); err != nil {
		return userError(fmt.Errorf("invalid config: %w", err))
	}
	a.settings = s
	a.logger = logging.New(s.LogLevel, s.LogFormat, cmd.ErrOrStderr())
	a.logger.Debug("config loaded", "config_dir", configDir, "data_dir", s.DataDir)
	return nil
}

// Execute runs the root command against the process arguments and returns
// the exit code.
func Execute() int {
	return run(NewRootCmd(), os.Args[1:], os.Stdout, os.Stderr)
}

func run(root *cobra.Command, args []string, stdout, stderr io.Writer) int {
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.Execute()
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
	}
	return ExitCode(err)
}
