package app

import (
	"context"
	"io"

	"github.com/oloBion/retip/internal/pkg/pkgconfig"
	"github.com/oloBion/retip/internal/pkg/pkgmetrics"
	"github.com/oloBion/retip/internal/pkg/pkguid"
	"github.com/oloBion/retip/internal/retip/chem"
	"github.com/oloBion/retip/internal/retip/usecase"
)

// memoStore is a descriptor memo that holds a background resource.
type memoStore interface {
	usecase.Store
	Close(ctx context.Context) error
}

type App struct {
	stdout io.Writer
	stderr io.Writer

	// configuration
	config pkgconfig.Config

	// libraries
	uuid  pkguid.StringID
	seeds pkguid.NumberID

	// resources
	parser     *chem.Parser
	calculator *chem.Calculator
	memo       memoStore
	metrics    *pkgmetrics.Recorder

	//
	closerFn map[string]func(context.Context) error
}

// New loads configuration and prepares every shared resource of a run.
// Resources created before a failure are released.
func New(ctx context.Context, opts pkgconfig.Options, stdout, stderr io.Writer) (*App, error) {
	app := &App{
		stdout: stdout,
		stderr: stderr,
	}

	for _, step := range []func() error{
		func() error { return app.initConfig(opts) },
		app.initLogging,
		app.initLibraries,
		app.initResources,
	} {
		if err := step(); err != nil {
			app.Stop(ctx)
			return nil, err
		}
	}

	return app, nil
}
