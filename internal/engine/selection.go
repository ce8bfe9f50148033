package engine

import (
	"context"
	"errors"

	"github.com/codex-k8s/attrorder/internal/host"
)

// MoveSelection moves the host's current attribute selection on every
// currently selected object. Failures are reported through h.Warn.
//
// Objects whose first selected attribute is not movable are skipped and the
// remaining objects are still processed. A host primitive failure stops the
// loop. The returned error joins every failure.
func (e *Engine) MoveSelection(ctx context.Context, h host.Host, dir Direction) ([]Result, error) {
	objects := h.CurrentSelection()
	if len(objects) == 0 {
		h.Warn(msgNoObjects)
		return nil, ErrNoTargetObjects
	}
	names := h.CurrentAttributeSelection()
	if len(names) == 0 {
		h.Warn(msgNoAttribute)
		return nil, ErrNoAttributeSelected
	}

	var (
		results []Result
		errs    []error
	)
	for _, object := range objects {
		res, err := e.Reorder(ctx, h, object, names, dir)
		if err == nil {
			results = append(results, res)
			continue
		}

		errs = append(errs, err)
		switch {
		case IsHostPrimitiveFailure(err):
			h.Warn(WarningFor(err))
			return results, errors.Join(errs...)
		case errors.Is(err, ErrNoTargetObjects), errors.Is(err, ErrAttributeNotMovable):
			h.Warn(msgNotMovable)
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return results, errors.Join(errs...)
		default:
			h.Warn(WarningFor(err))
		}
		e.logger.Debug("object skipped", "object", object, "error", err)
	}
	return results, errors.Join(errs...)
}
