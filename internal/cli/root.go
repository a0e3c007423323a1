// Package cli implements the jolt command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"jolt/internal/config"
	"jolt/internal/layout"
	"jolt/internal/logx"
	"jolt/internal/session"
)

var (
	homeDir string
	verbose bool
)

// getwd is replaced in tests.
var getwd = os.Getwd

// Execute runs the root cobra command and exits with its status.
func Execute(version string) {
	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(handleError),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

func handleError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "jolt",
		Short:         "Pin and run node, npm, yarn and package tools per project",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&homeDir, "home", "", "jolt home directory (default $"+layout.HomeEnv+" or ~/.jolt)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newShimCmd())
	cmd.AddCommand(newWhichCmd())
	cmd.AddCommand(newSetupCmd())
	cmd.AddCommand(newDoctorCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

// runContext carries what a single command invocation needs.
type runContext struct {
	layout  layout.Layout
	config  config.Config
	logger  *log.Logger
	session *session.Session
	closer  io.Closer
}

// openRunContext resolves the home layout, loads the user config and builds
// the session. Callers must Close the result.
func openRunContext(cmd *cobra.Command) (*runContext, error) {
	l, err := layout.Resolve(homeDir)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(l.ConfigFile())
	if err != nil {
		return nil, err
	}
	findings := cfg.Validate()
	level := cfg.Log.Level
	if config.HasErrors(findings) {
		level = ""
	}

	var logDir string
	if cfg.Log.File {
		logDir = l.LogDir()
	}
	logger, closer, err := logx.New(cmd.ErrOrStderr(), logx.Options{Level: level, Verbose: verbose, Dir: logDir})
	if err != nil {
		return nil, err
	}
	for _, f := range findings {
		logger.Warn("config: "+f.Message, "file", l.ConfigFile())
	}

	cwd, err := getwd()
	if err != nil {
		closer.Close()
		return nil, fmt.Errorf("get working directory: %w", err)
	}
	logger.Debug("starting", "command", cmd.CommandPath(), "home", l.Home, "cwd", cwd)

	return &runContext{
		layout:  l,
		config:  cfg,
		logger:  logger,
		session: session.New(l, cwd, logger),
		closer:  closer,
	}, nil
}

func (rc *runContext) Close() error {
	return rc.closer.Close()
}
