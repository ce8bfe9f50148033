// Package engine moves user-defined attributes of a host object up or down by
// one position.
//
// Hosts without a move operation are driven with delete and undo only: the
// host re-appends an attribute whose deletion is undone, so deleting and
// undoing the right attributes in the right order rotates the list into the
// wanted shape. Hosts that implement host.Mover can be driven directly.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/codex-k8s/attrorder/internal/host"
)

// Options configures an Engine.
type Options struct {
	// Logger receives progress records. Defaults to slog.Default().
	Logger *slog.Logger
	// Strategy selects the move backend. Defaults to StrategyAuto.
	Strategy Strategy
	// Validation selects how many selected names are checked. Defaults to ValidateFirst.
	Validation Validation
	// Quiet suppresses host command echo while attributes are being moved.
	Quiet bool
	// OnPhase, when set, is called on every state transition.
	OnPhase func(object string, phase Phase)
}

// Engine reorders user-defined attributes. One Engine serves one caller at a time.
type Engine struct {
	logger     *slog.Logger
	strategy   Strategy
	validation Validation
	quiet      bool
	onPhase    func(string, Phase)
}

// Result is the outcome of a successful Reorder.
type Result struct {
	// Object is the reordered object.
	Object string
	// Ordering lists the user-defined attribute names in their final order.
	Ordering []string
	// Strategy is the backend that was used.
	Strategy Strategy
}

// NewEngine constructs an Engine.
func NewEngine(opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	strategy := opts.Strategy
	if strategy == "" {
		strategy = StrategyAuto
	}
	validation := opts.Validation
	if validation == "" {
		validation = ValidateFirst
	}
	return &Engine{
		logger:     logger,
		strategy:   strategy,
		validation: validation,
		quiet:      opts.Quiet,
		onPhase:    opts.OnPhase,
	}
}

// Reorder moves names within object's user-defined attributes by one position
// in direction dir and returns the resulting order.
//
// Precondition failures (ErrNoTargetObjects, ErrNoAttributeSelected,
// ErrAttributeNotMovable) leave the host untouched. A *HostPrimitiveError means
// the host failed after mutation started; nothing further is attempted.
// ctx is only consulted before mutation starts.
func (e *Engine) Reorder(ctx context.Context, attrs host.Attributes, object string, names []string, dir Direction) (Result, error) {
	defer e.enter(object, PhaseIdle)

	e.enter(object, PhaseValidatingSelection)
	strategy, err := e.validate(ctx, attrs, object, names)
	if err != nil {
		return Result{}, err
	}

	r := &run{
		attrs:  attrs,
		object: object,
		logger: e.logger.With("run", uuid.NewString(), "object", object, "direction", dir.String(), "strategy", string(strategy)),
	}
	if strategy == StrategyNative {
		r.mover, _ = attrs.(host.Mover)
	}

	if e.quiet {
		if sup, ok := attrs.(host.InfoSuppressor); ok {
			prev := sup.SuppressInfo(true)
			defer sup.SuppressInfo(prev)
		}
	}

	r.logger.Debug("reordering attributes", "names", names)

	e.enter(object, PhaseUnlockingTargets)
	locked, err := r.unlock()
	if err != nil {
		return Result{}, err
	}

	e.enter(object, PhaseShiftingElements)
	order := names
	if dir == Down && len(names) > 1 {
		order = slices.Clone(names)
		slices.Reverse(order)
	}
	for _, name := range order {
		if err := r.shift(name, dir); err != nil {
			return Result{}, err
		}
	}

	e.enter(object, PhaseRelockingTargets)
	if err := r.relock(locked); err != nil {
		return Result{}, err
	}

	elems, err := r.list("")
	if err != nil {
		return Result{}, err
	}
	ordering := host.Names(elems)
	r.logger.Debug("attributes reordered", "ordering", ordering, "host_calls", r.calls)

	return Result{Object: object, Ordering: ordering, Strategy: strategy}, nil
}

// validate checks every precondition and resolves the strategy. It never mutates.
func (e *Engine) validate(ctx context.Context, attrs host.Attributes, object string, names []string) (Strategy, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return "", err
		}
	}

	elems, err := attrs.ListUserDefined(object)
	if err != nil {
		return "", fmt.Errorf("%w: object %q: %w", ErrNoTargetObjects, object, err)
	}
	if len(elems) == 0 {
		return "", fmt.Errorf("%w: object %q has no user-defined attributes", ErrNoTargetObjects, object)
	}
	if len(names) == 0 {
		return "", ErrNoAttributeSelected
	}

	check := names[:1]
	if e.validation == ValidateAll {
		check = names
	}
	for _, name := range check {
		if host.IndexOf(elems, name) < 0 {
			return "", fmt.Errorf("%w: %s.%s is not a user-defined attribute", ErrAttributeNotMovable, object, name)
		}
	}

	_, canMove := attrs.(host.Mover)
	switch e.strategy {
	case StrategyNative:
		if !canMove {
			return "", ErrNativeUnsupported
		}
		return StrategyNative, nil
	case StrategyShuffle:
		return StrategyShuffle, nil
	default:
		if canMove {
			return StrategyNative, nil
		}
		return StrategyShuffle, nil
	}
}

func (e *Engine) enter(object string, phase Phase) {
	e.logger.Debug("reorder phase", "object", object, "phase", phase.String())
	if e.onPhase != nil {
		e.onPhase(object, phase)
	}
}
