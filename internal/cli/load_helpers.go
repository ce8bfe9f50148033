package cli

import (
	"log/slog"

	"github.com/codex-k8s/attrorder/internal/engine"
	"github.com/codex-k8s/attrorder/internal/host"
	"github.com/codex-k8s/attrorder/internal/logging"
	"github.com/codex-k8s/attrorder/internal/scene"
	"github.com/codex-k8s/attrorder/internal/state"
)

// openScene loads the configured scene file. Command echo goes to the logger at debug level.
func openScene(opts *Options, logger *slog.Logger) (*state.Store, *scene.Scene, error) {
	st, err := state.NewStore(opts.ScenePath, logger)
	if err != nil {
		return nil, nil, err
	}
	sc, err := st.Load(sceneOptions(logger))
	if err != nil {
		return nil, nil, err
	}
	return st, sc, nil
}

func sceneOptions(logger *slog.Logger) scene.Options {
	return scene.Options{Logger: logger, Echo: logging.NewWriter(logger)}
}

// newEngineFromOpts builds an engine from the resolved options.
func newEngineFromOpts(opts *Options, logger *slog.Logger) (*engine.Engine, error) {
	strategy, err := engine.ParseStrategy(opts.Strategy)
	if err != nil {
		return nil, err
	}
	validation, err := engine.ParseValidation(opts.Validation)
	if err != nil {
		return nil, err
	}
	return engine.NewEngine(engine.Options{
		Logger:     logger,
		Strategy:   strategy,
		Validation: validation,
		Quiet:      opts.Quiet,
	}), nil
}

// hostFor returns the scene as a host. The scene only offers direct moves when
// the native strategy is requested, so auto resolves to the delete/undo shuffle.
func hostFor(sc *scene.Scene, strategy string) host.Host {
	if s, err := engine.ParseStrategy(strategy); err == nil && s == engine.StrategyNative {
		return scene.Native{Scene: sc}
	}
	return sc
}
