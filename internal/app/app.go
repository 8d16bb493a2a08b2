package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/agbru/digitcalc/internal/arith"
	"github.com/agbru/digitcalc/internal/cli"
	"github.com/agbru/digitcalc/internal/config"
	apperrors "github.com/agbru/digitcalc/internal/errors"
	"github.com/agbru/digitcalc/internal/logging"
	"github.com/agbru/digitcalc/internal/server"
	"github.com/agbru/digitcalc/internal/tui"
	"github.com/agbru/digitcalc/internal/ui"
)

// Application is one digitcalc invocation.
type Application struct {
	Config    config.AppConfig
	Factory   arith.CalculatorFactory
	ErrWriter io.Writer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory replaces the global strategy registry.
func WithFactory(f arith.CalculatorFactory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// New parses args (args[0] is the program name) into an Application.
// Usage and configuration errors are written to errWriter.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = arith.GlobalFactory()
	}

	programName := "digitcalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, app.Factory.List())
	if err != nil {
		return nil, err
	}
	app.Config = cfg
	return app, nil
}

// Run dispatches to the configured mode and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if err := logging.Configure(a.Config.LogLevel, a.ErrWriter, true); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	ui.InitTheme(a.Config.NoColor)

	switch {
	case a.Config.ServerMode:
		return a.runServer()
	case a.Config.TUI:
		return a.runTUI(ctx)
	case a.Config.Interactive:
		return a.runREPL()
	default:
		return a.runCalculate(ctx, out)
	}
}

func (a *Application) runServer() int {
	srv := server.NewServer(a.Factory, a.Config)
	if err := srv.Start(); err != nil {
		fmt.Fprintf(a.ErrWriter, "Server error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runTUI bounds each calculation with the timeout inside the TUI, so only
// signals end the program here.
func (a *Application) runTUI(ctx context.Context) int {
	ctx, stop := SetupSignals(ctx)
	defer stop()
	return tui.Run(ctx, a.Factory, a.Config, Version)
}

func (a *Application) runREPL() int {
	repl := cli.NewREPL(a.Factory, cli.REPLConfig{
		DefaultAlgo: a.Config.Algo,
		Timeout:     a.Config.Timeout,
		Options:     a.Config.ToCalculationOptions(),
	})
	repl.Start()
	return apperrors.ExitSuccess
}

// IsHelpError reports whether err comes from -h or --help.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
