package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/agbru/limbcalc/internal/cli"
	"github.com/agbru/limbcalc/internal/config"
	apperrors "github.com/agbru/limbcalc/internal/errors"
	"github.com/agbru/limbcalc/internal/limb"
	"github.com/agbru/limbcalc/internal/logging"
	"github.com/agbru/limbcalc/internal/server"
	"github.com/agbru/limbcalc/internal/ui"
)

// Application represents the limbcalc application instance.
type Application struct {
	Config    config.AppConfig
	Logger    logging.Logger
	ErrWriter io.Writer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithLogger sets the logger used for diagnostics and serve mode.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}

	programName := "limbcalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = cfg

	if app.Logger == nil {
		app.Logger = logging.NewConsoleLogger(errWriter, "limbcalc")
	}
	return app, nil
}

// Run executes the application based on the configured mode and returns the
// process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Version {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}

	if err := logging.SetLevel(a.Config.LogLevel); err != nil {
		fmt.Fprintf(a.ErrWriter, "Configuration error: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	ui.InitTheme(a.Config.NoColor)

	a.Logger.Debug("starting",
		logging.String("mode", a.Config.Mode),
		logging.String("version", Version))

	switch a.Config.Mode {
	case config.ModeVerify:
		return a.runVerify(ctx, out)
	case config.ModeServe:
		return a.runServe(ctx)
	default:
		return a.runDemo(out)
	}
}

// runDemo prints the limb walkthrough of the configured operands.
func (a *Application) runDemo(out io.Writer) int {
	x, y := a.Config.Operands()
	t := limb.NewTrace(x, y, a.Config.LimbWidth())

	if a.Config.Quiet {
		cli.DisplayQuietTrace(t, out)
	} else {
		cli.DisplayDemo(t, a.Config.Verbose, out)
	}

	if a.Config.OutputFile != "" {
		if err := cli.WriteTraceToFile(t, a.Config.OutputFile); err != nil {
			a.Logger.Error("saving trace", err, logging.String("path", a.Config.OutputFile))
			return apperrors.ExitErrorGeneric
		}
		a.reportSaved(out)
	}

	if !t.OK() {
		return apperrors.ExitErrorMismatch
	}
	return apperrors.ExitSuccess
}

// runServe serves the HTTP API until the context is canceled or a
// termination signal arrives.
func (a *Application) runServe(ctx context.Context) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	srv := server.NewServer(server.Config{
		Addr:           a.Config.Addr,
		Workers:        a.Config.Workers,
		RequestTimeout: a.Config.Timeout,
		Security:       server.DefaultSecurityConfig(),
	}, a.Logger)

	if err := srv.Start(ctx); err != nil {
		a.Logger.Error("server failed", err, logging.String("addr", a.Config.Addr))
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

func (a *Application) reportSaved(out io.Writer) {
	if a.Config.Quiet {
		return
	}
	fmt.Fprintf(out, "\n%s✓ Report saved to: %s%s%s\n",
		ui.ColorGreen(), ui.ColorCyan(), a.Config.OutputFile, ui.ColorReset())
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
