package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/tmsim"
	"github.com/aretw0/tmsim/internal/config"
	"github.com/aretw0/tmsim/internal/logging"
	"github.com/aretw0/tmsim/pkg/domain"
)

// app carries the settings resolved before any subcommand runs.
type app struct {
	cfg    config.Config
	logger *slog.Logger
}

func (a *app) converter(opts ...tmsim.Option) *tmsim.Converter {
	return tmsim.New(append([]tmsim.Option{tmsim.WithLogger(a.logger)}, opts...)...)
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: config.Default(), logger: logging.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "tmsim",
		Short: "tmsim converts Turing machine descriptions into structured documents",
		Long: `tmsim reads the textual description of a Turing machine (alphabet, tape
and transition rules), validates it and emits JSON, YAML, TOML or the legacy layout.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Config file (default: .tmsim.yaml, .tmsim.yml or .tmsim.toml in the working directory)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json")

	rootCmd.AddCommand(
		newConvertCmd(a),
		newValidateCmd(a),
		newGraphCmd(a),
		newInspectCmd(a),
		newServeCmd(a),
		newMCPCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// load resolves the config file, then lets explicit flags override it.
func (a *app) load(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.Discover(".")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	if f := cmd.Flags().Lookup("log-level"); f != nil && f.Changed {
		cfg.LogLevel = f.Value.String()
	}
	if f := cmd.Flags().Lookup("log-format"); f != nil && f.Changed {
		cfg.LogFormat = f.Value.String()
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logging.New(level, cfg.LogFormat)
	a.logger.Debug("configuration loaded", "path", path, "format", cfg.Format)
	return nil
}

// Execute runs the command tree and exits with the code matching the failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		var reported *reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(exitCode(err))
	}
}

// reportedError wraps a failure whose details were already printed.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// Exit codes.
const (
	exitFailure     = 1
	exitSyntax      = 2
	exitDeclaration = 3
	exitUnknown     = 4
	exitConflict    = 5
)

func exitCode(err error) int {
	switch domain.ErrorKind(err) {
	case domain.KindSyntax:
		return exitSyntax
	case domain.KindMissingDeclaration, domain.KindDuplicateDeclaration:
		return exitDeclaration
	case domain.KindUnknownSymbol:
		return exitUnknown
	case domain.KindConflictingRule:
		return exitConflict
	default:
		return exitFailure
	}
}

// readSource reads a description file; "-" reads the command's stdin.
func readSource(cmd *cobra.Command, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return 80
}
