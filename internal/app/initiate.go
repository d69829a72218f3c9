package app

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/oloBion/retip/internal/pkg/pkgconfig"
	"github.com/oloBion/retip/internal/pkg/pkgerror"
	"github.com/oloBion/retip/internal/pkg/pkglog"
	"github.com/oloBion/retip/internal/pkg/pkgmetrics"
	"github.com/oloBion/retip/internal/pkg/pkguid"
	"github.com/oloBion/retip/internal/retip/chem"
	"github.com/oloBion/retip/internal/retip/store"
)

// defaults are the lowest-priority configuration values.
func defaults() map[string]any {
	return map[string]any{
		"log.level":                     "info",
		"dataset.sheet":                 "",
		"dataset.test_size":             0.2,
		"descriptors.workers":           runtime.NumCPU(),
		"descriptors.elements":          chem.DefaultConfig().Elements,
		"descriptors.cache_ttl":         "0s",
		"descriptors.max_failure_ratio": 0.0,
		"output.dir":                    ".",
		"output.format":                 "",
		"output.strip_descriptors":      false,
		"output.progress":               false,
		"metrics.file":                  "",
	}
}

func (a *App) initConfig(opts pkgconfig.Options) error {
	if opts.Defaults == nil {
		opts.Defaults = defaults()
	}

	cfg, err := pkgconfig.NewViper(opts)
	if err != nil {
		return pkgerror.NewConfiguration("config", opts.File, err.Error())
	}

	a.config = cfg
	a.addCloser("Config", func(context.Context) error {
		return a.config.Close()
	})

	return nil
}

func (a *App) initLogging() error {
	slog.SetDefault(pkglog.NewLogger(a.stderr, a.config.GetString("log.level")))
	return nil
}

func (a *App) initLibraries() error {
	a.uuid = pkguid.NewUUID()

	seeds, err := pkguid.NewSnowflake()
	if err != nil {
		return pkgerror.NewServer(err)
	}
	a.seeds = seeds

	return nil
}

func (a *App) initResources() error {
	elements := a.config.GetArray("descriptors.elements")
	calc, err := chem.NewCalculator(chem.Config{Elements: elements})
	if err != nil {
		return pkgerror.NewConfiguration("descriptors.elements", elements, err.Error())
	}

	a.parser = chem.NewParser()
	a.calculator = calc
	a.metrics = pkgmetrics.NewRecorder()

	if ttl := a.config.GetDuration("descriptors.cache_ttl"); ttl > 0 {
		a.memo = store.NewTTLStore(ttl)
	} else {
		a.memo = store.NewInMemoryStore()
	}
	a.addCloser("Descriptor Store", a.memo.Close)

	return nil
}

func (a *App) addCloser(name string, fn func(context.Context) error) {
	if a.closerFn == nil {
		a.closerFn = map[string]func(context.Context) error{}
	}
	a.closerFn[name] = fn
}

// Stop releases every resource registered by New.
func (a *App) Stop(ctx context.Context) {
	for name, closer := range a.closerFn {
		if err := closer(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to close resources", "name", name, "error", err)
		}
	}
	a.closerFn = nil
}
