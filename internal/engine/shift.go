package engine

import (
	"log/slog"

	"github.com/codex-k8s/attrorder/internal/host"
)

// run holds the state of one Reorder call after validation.
type run struct {
	attrs  host.Attributes
	mover  host.Mover
	object string
	logger *slog.Logger
	calls  int
}

// unlock unlocks every locked attribute and returns their names.
// Direct moves do not touch lock state.
func (r *run) unlock() ([]string, error) {
	if r.mover != nil {
		return nil, nil
	}
	r.calls++
	locked, err := r.attrs.ListLocked(r.object)
	if err != nil {
		return nil, &HostPrimitiveError{Op: "list locked", Object: r.object, Err: err}
	}
	for _, name := range locked {
		r.calls++
		if err := r.attrs.SetLocked(r.object, name, false); err != nil {
			return nil, &HostPrimitiveError{Op: "unlock", Object: r.object, Attribute: name, Err: err}
		}
	}
	if len(locked) > 0 {
		r.logger.Debug("unlocked attributes", "names", locked)
	}
	return locked, nil
}

// relock locks names again, by name.
func (r *run) relock(names []string) error {
	for _, name := range names {
		r.calls++
		if err := r.attrs.SetLocked(r.object, name, true); err != nil {
			return &HostPrimitiveError{Op: "relock", Object: r.object, Attribute: name, Err: err}
		}
	}
	return nil
}

func (r *run) list(attr string) ([]host.Element, error) {
	r.calls++
	elems, err := r.attrs.ListUserDefined(r.object)
	if err != nil {
		return nil, &HostPrimitiveError{Op: "list", Object: r.object, Attribute: attr, Err: err}
	}
	return elems, nil
}

// shift moves name by one position. Names that are no longer present are skipped.
func (r *run) shift(name string, dir Direction) error {
	snap, err := r.list(name)
	if err != nil {
		return err
	}
	p := host.IndexOf(snap, name)
	if p < 0 {
		r.logger.Warn("selected attribute not found, skipping", "attribute", name)
		return nil
	}

	if r.mover != nil {
		return r.move(snap, p, dir)
	}
	if dir == Down {
		return r.shuffleDown(snap, p)
	}
	return r.shuffleUp(snap, p)
}

// shuffleDown sends snap[p] to the end, then every attribute from p+2 on
// after it, which leaves snap[p+1] in front of snap[p].
func (r *run) shuffleDown(snap []host.Element, p int) error {
	if err := r.cycle(snap[p].Name, len(snap)); err != nil {
		return err
	}
	for x := p + 2; x < len(snap); x++ {
		if err := r.cycle(snap[x].Name, len(snap)); err != nil {
			return err
		}
	}
	return nil
}

// shuffleUp sends snap[p-1] to the end, then every attribute after p after
// it, which leaves snap[p] in front of snap[p-1]. The first attribute stays.
func (r *run) shuffleUp(snap []host.Element, p int) error {
	if p == 0 {
		return nil
	}
	if err := r.cycle(snap[p-1].Name, len(snap)); err != nil {
		return err
	}
	for x := p + 1; x < len(snap); x++ {
		if err := r.cycle(snap[x].Name, len(snap)); err != nil {
			return err
		}
	}
	return nil
}

// cycle deletes name, undoes the deletion and checks that it came back.
func (r *run) cycle(name string, want int) error {
	r.calls++
	if err := r.attrs.DeleteElement(r.object, name); err != nil {
		return &HostPrimitiveError{Op: "delete", Object: r.object, Attribute: name, Err: err}
	}
	r.calls++
	if err := r.attrs.Undo(); err != nil {
		return &HostPrimitiveError{Op: "undo", Object: r.object, Attribute: name, Err: err}
	}
	after, err := r.list(name)
	if err != nil {
		return err
	}
	if len(after) != want || host.IndexOf(after, name) < 0 {
		return &HostPrimitiveError{Op: "undo", Object: r.object, Attribute: name, Err: errUndoMismatch}
	}
	return nil
}

func (r *run) move(snap []host.Element, p int, dir Direction) error {
	target := p - 1
	if dir == Down {
		target = p + 1
	}
	if target < 0 || target >= len(snap) {
		return nil
	}
	r.calls++
	if err := r.mover.MoveElement(r.object, snap[p].Name, target); err != nil {
		return &HostPrimitiveError{Op: "move", Object: r.object, Attribute: snap[p].Name, Err: err}
	}
	return nil
}
