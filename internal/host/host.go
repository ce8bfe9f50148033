// Package host declares the capabilities attrorder consumes from the application
// that owns objects and their attributes. The engine never implements them.
package host

// Element is a user-defined attribute of an object as reported by the host.
// Values are opaque to attrorder and are not part of the view.
type Element struct {
	// Name identifies the attribute among the object's user-defined attributes.
	Name string
	// Index is the 0-based position in the user-defined order.
	Index int
	// Locked reports whether the attribute value is currently locked.
	Locked bool
}

// Attributes is the subset of host operations needed to reorder attributes.
//
// Every list call returns a fresh snapshot; callers must re-query after any
// mutating call instead of caching.
type Attributes interface {
	// ListUserDefined returns the object's user-defined attributes in order.
	ListUserDefined(object string) ([]Element, error)
	// ListLocked returns the names of the object's locked user-defined attributes.
	ListLocked(object string) ([]string, error)
	// SetLocked toggles the lock flag of an attribute.
	SetLocked(object, name string, locked bool) error
	// DeleteElement removes an attribute. Locked attributes are refused.
	DeleteElement(object, name string) error
	// Undo reverts the most recent mutating call. Undoing a deletion brings the
	// attribute back with its value and lock state.
	Undo() error
}

// Selector reports what the user currently has selected.
type Selector interface {
	// CurrentSelection returns the selected object names.
	CurrentSelection() []string
	// CurrentAttributeSelection returns the selected attribute names in selection order.
	CurrentAttributeSelection() []string
}

// Warner is the user-visible, non-fatal notification channel.
type Warner interface {
	Warn(message string)
}

// Host bundles everything the selection driver needs.
type Host interface {
	Attributes
	Selector
	Warner
}

// InfoSuppressor is implemented by hosts that echo every command they run and
// can be told to stay quiet.
type InfoSuppressor interface {
	// SuppressInfo sets the suppression flag and returns the previous value.
	SuppressInfo(on bool) (prev bool)
}

// Mover is implemented by hosts that can reposition an attribute directly.
type Mover interface {
	// MoveElement moves name to index within the object's user-defined order.
	MoveElement(object, name string, index int) error
}

// Names returns the element names in index order.
func Names(elems []Element) []string {
	out := make([]string, len(elems))
	for i, e := range elems {
		out[i] = e.Name
	}
	return out
}

// IndexOf returns the index of name in elems or -1.
func IndexOf(elems []Element, name string) int {
	for i, e := range elems {
		if e.Name == name {
			return i
		}
	}
	return -1
}
