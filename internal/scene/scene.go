// Package scene implements an in-memory host: named objects carrying built-in
// and user-defined attributes, a selection, and a linear undo history.
//
// It reproduces the behavior of a 3D application's attribute store that the
// reorder engine relies on: deleting a user-defined attribute and undoing the
// deletion brings the attribute back with its value and lock state, appended
// after the remaining user-defined attributes.
package scene

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/codex-k8s/attrorder/internal/host"
)

var (
	// ErrNotFound is returned when an object or attribute does not exist.
	ErrNotFound = errors.New("not found")
	// ErrExists is returned when creating an object or attribute that already exists.
	ErrExists = errors.New("already exists")
	// ErrLocked is returned when deleting a locked attribute.
	ErrLocked = errors.New("attribute is locked")
	// ErrBuiltin is returned when deleting a built-in attribute.
	ErrBuiltin = errors.New("built-in attribute cannot be deleted")
	// ErrNothingToUndo is returned when the undo history is empty.
	ErrNothingToUndo = errors.New("nothing to undo")
)

// Attribute is a user-defined attribute with an opaque value.
type Attribute struct {
	// Name identifies the attribute within its object.
	Name string `yaml:"name"`
	// Value is carried as-is and never interpreted.
	Value any `yaml:"value,omitempty"`
	// Locked marks the value as immutable.
	Locked bool `yaml:"locked,omitempty"`
}

// Object is a named node with built-in and user-defined attributes.
type Object struct {
	// Name identifies the object within the scene.
	Name string `yaml:"name"`
	// Builtin lists attributes that come with the object's type.
	Builtin []string `yaml:"builtin,omitempty"`
	// Attributes lists user-defined attributes in their display order.
	Attributes []Attribute `yaml:"attributes,omitempty"`
}

// Selection is the current object and attribute selection.
type Selection struct {
	// Objects lists selected object names.
	Objects []string `yaml:"objects,omitempty"`
	// Attributes lists selected attribute names in selection order.
	Attributes []string `yaml:"attributes,omitempty"`
}

// Document is the serializable form of a scene.
type Document struct {
	// Objects lists the scene's objects in creation order.
	Objects []Object `yaml:"objects,omitempty"`
	// Selection is the persisted selection.
	Selection Selection `yaml:"selection,omitempty"`
}

// Options configures a Scene.
type Options struct {
	// Logger receives warnings. Defaults to slog.Default().
	Logger *slog.Logger
	// Echo receives one line per executed command unless info is suppressed.
	Echo io.Writer
}

type actionKind int

const (
	actionDelete actionKind = iota
	actionLock
	actionAdd
	actionMove
)

// action is one undoable step.
type action struct {
	kind   actionKind
	object string
	attr   Attribute
	// index is the position the attribute had before the action.
	index int
}

// Scene is an in-memory host. It is not safe for concurrent use.
type Scene struct {
	objects    []*Object
	selection  Selection
	history    []action
	suppressed bool
	warnings   []string
	logger     *slog.Logger
	echo       io.Writer
}

var _ host.Host = (*Scene)(nil)
var _ host.InfoSuppressor = (*Scene)(nil)

// New constructs an empty scene.
func New(opts Options) *Scene {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Scene{logger: logger, echo: opts.Echo}
}

// FromDocument constructs a scene from its serialized form.
func FromDocument(doc Document, opts Options) (*Scene, error) {
	s := New(opts)
	for _, obj := range doc.Objects {
		if err := s.AddObject(obj.Name, obj.Builtin...); err != nil {
			return nil, err
		}
		o := s.object(obj.Name)
		for _, a := range obj.Attributes {
			if err := checkAttrName(o, a.Name); err != nil {
				return nil, fmt.Errorf("object %q: %w", obj.Name, err)
			}
			o.Attributes = append(o.Attributes, a)
		}
	}
	s.selection = Selection{
		Objects:    slices.Clone(doc.Selection.Objects),
		Attributes: slices.Clone(doc.Selection.Attributes),
	}
	s.history = nil
	return s, nil
}

// Document returns a deep copy of the scene in serializable form.
// The undo history is not part of it.
func (s *Scene) Document() Document {
	doc := Document{
		Selection: Selection{
			Objects:    slices.Clone(s.selection.Objects),
			Attributes: slices.Clone(s.selection.Attributes),
		},
	}
	for _, o := range s.objects {
		doc.Objects = append(doc.Objects, Object{
			Name:       o.Name,
			Builtin:    slices.Clone(o.Builtin),
			Attributes: slices.Clone(o.Attributes),
		})
	}
	return doc
}

// Objects returns the object names in creation order.
func (s *Scene) Objects() []string {
	out := make([]string, len(s.objects))
	for i, o := range s.objects {
		out[i] = o.Name
	}
	return out
}

// AddObject creates an object with the given built-in attribute names.
func (s *Scene) AddObject(name string, builtin ...string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("object name is empty")
	}
	if s.object(name) != nil {
		return fmt.Errorf("object %q: %w", name, ErrExists)
	}
	s.objects = append(s.objects, &Object{Name: name, Builtin: slices.Clone(builtin)})
	return nil
}

// AddAttribute appends a user-defined attribute to an object. The call is undoable.
func (s *Scene) AddAttribute(object string, attr Attribute) error {
	o := s.object(object)
	if o == nil {
		return fmt.Errorf("object %q: %w", object, ErrNotFound)
	}
	if err := checkAttrName(o, attr.Name); err != nil {
		return fmt.Errorf("object %q: %w", object, err)
	}
	o.Attributes = append(o.Attributes, attr)
	s.record(action{kind: actionAdd, object: object, attr: attr, index: len(o.Attributes) - 1})
	s.echof("addAttr -ln %q %s;", attr.Name, object)
	return nil
}

// Attribute returns a copy of a user-defined attribute.
func (s *Scene) Attribute(object, name string) (Attribute, bool) {
	o := s.object(object)
	if o == nil {
		return Attribute{}, false
	}
	i := attrIndex(o, name)
	if i < 0 {
		return Attribute{}, false
	}
	return o.Attributes[i], true
}

// Select replaces the current selection.
func (s *Scene) Select(objects, attributes []string) {
	s.selection = Selection{Objects: slices.Clone(objects), Attributes: slices.Clone(attributes)}
	s.echof("select -r %s;", strings.Join(objects, " "))
}

// CurrentSelection returns the selected objects that exist in the scene.
func (s *Scene) CurrentSelection() []string {
	var out []string
	for _, name := range s.selection.Objects {
		if s.object(name) != nil {
			out = append(out, name)
		}
	}
	return out
}

// CurrentAttributeSelection returns the selected attribute names in selection order.
func (s *Scene) CurrentAttributeSelection() []string {
	return slices.Clone(s.selection.Attributes)
}

// ListUserDefined returns the object's user-defined attributes in order.
func (s *Scene) ListUserDefined(object string) ([]host.Element, error) {
	o := s.object(object)
	if o == nil {
		return nil, fmt.Errorf("object %q: %w", object, ErrNotFound)
	}
	out := make([]host.Element, len(o.Attributes))
	for i, a := range o.Attributes {
		out[i] = host.Element{Name: a.Name, Index: i, Locked: a.Locked}
	}
	return out, nil
}

// ListLocked returns the names of the object's locked user-defined attributes.
func (s *Scene) ListLocked(object string) ([]string, error) {
	o := s.object(object)
	if o == nil {
		return nil, fmt.Errorf("object %q: %w", object, ErrNotFound)
	}
	var out []string
	for _, a := range o.Attributes {
		if a.Locked {
			out = append(out, a.Name)
		}
	}
	return out, nil
}

// SetLocked toggles the lock flag. Unknown objects or attributes are ignored.
func (s *Scene) SetLocked(object, name string, locked bool) error {
	o := s.object(object)
	if o == nil {
		return nil
	}
	i := attrIndex(o, name)
	if i < 0 {
		return nil
	}
	s.record(action{kind: actionLock, object: object, attr: o.Attributes[i], index: i})
	o.Attributes[i].Locked = locked
	s.echof("setAttr -lock %t \"%s.%s\";", locked, object, name)
	return nil
}

// DeleteElement removes a user-defined attribute.
func (s *Scene) DeleteElement(object, name string) error {
	o := s.object(object)
	if o == nil {
		return fmt.Errorf("object %q: %w", object, ErrNotFound)
	}
	i := attrIndex(o, name)
	if i < 0 {
		if slices.Contains(o.Builtin, name) {
			return fmt.Errorf("%s.%s: %w", object, name, ErrBuiltin)
		}
		return fmt.Errorf("%s.%s: %w", object, name, ErrNotFound)
	}
	attr := o.Attributes[i]
	if attr.Locked {
		return fmt.Errorf("%s.%s: %w", object, name, ErrLocked)
	}
	o.Attributes = slices.Delete(o.Attributes, i, i+1)
	s.record(action{kind: actionDelete, object: object, attr: attr, index: i})
	s.echof("deleteAttr -at %q %s;", name, object)
	return nil
}

// Undo reverts the most recent undoable call.
//
// An undone deletion re-appends the attribute after the object's remaining
// user-defined attributes.
func (s *Scene) Undo() error {
	if len(s.history) == 0 {
		return ErrNothingToUndo
	}
	last := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]

	o := s.object(last.object)
	if o == nil {
		return fmt.Errorf("undo on object %q: %w", last.object, ErrNotFound)
	}

	switch last.kind {
	case actionDelete:
		if attrIndex(o, last.attr.Name) >= 0 {
			return fmt.Errorf("undo delete %s.%s: %w", last.object, last.attr.Name, ErrExists)
		}
		o.Attributes = append(o.Attributes, last.attr)
	case actionLock:
		if i := attrIndex(o, last.attr.Name); i >= 0 {
			o.Attributes[i].Locked = last.attr.Locked
		}
	case actionAdd:
		if i := attrIndex(o, last.attr.Name); i >= 0 {
			o.Attributes = slices.Delete(o.Attributes, i, i+1)
		}
	case actionMove:
		if i := attrIndex(o, last.attr.Name); i >= 0 {
			moveWithin(o, i, last.index)
		}
	}
	s.echof("undo; // %s.%s", last.object, last.attr.Name)
	return nil
}

// SuppressInfo sets the echo suppression flag and returns the previous value.
func (s *Scene) SuppressInfo(on bool) bool {
	prev := s.suppressed
	s.suppressed = on
	return prev
}

// InfoSuppressed reports whether command echo is currently suppressed.
func (s *Scene) InfoSuppressed() bool {
	return s.suppressed
}

// Warn records a user-visible warning and logs it.
func (s *Scene) Warn(message string) {
	s.warnings = append(s.warnings, message)
	s.logger.Warn(message)
}

// Warnings returns the warnings issued so far.
func (s *Scene) Warnings() []string {
	return slices.Clone(s.warnings)
}

// HistoryLen returns the number of undoable steps.
func (s *Scene) HistoryLen() int {
	return len(s.history)
}

// Native wraps a Scene and additionally exposes a direct move operation.
type Native struct {
	*Scene
}

var _ host.Mover = Native{}

// MoveElement moves a user-defined attribute to index. The call is undoable.
func (n Native) MoveElement(object, name string, index int) error {
	o := n.object(object)
	if o == nil {
		return fmt.Errorf("object %q: %w", object, ErrNotFound)
	}
	i := attrIndex(o, name)
	if i < 0 {
		return fmt.Errorf("%s.%s: %w", object, name, ErrNotFound)
	}
	if index < 0 || index >= len(o.Attributes) {
		return fmt.Errorf("move %s.%s to %d: index out of range [0,%d)", object, name, index, len(o.Attributes))
	}
	n.record(action{kind: actionMove, object: object, attr: o.Attributes[i], index: i})
	moveWithin(o, i, index)
	n.echof("reorderAttr -at %q -index %d %s;", name, index, object)
	return nil
}

func (s *Scene) object(name string) *Object {
	for _, o := range s.objects {
		if o.Name == name {
			return o
		}
	}
	return nil
}

func (s *Scene) record(a action) {
	s.history = append(s.history, a)
}

func (s *Scene) echof(format string, args ...any) {
	if s.suppressed || s.echo == nil {
		return
	}
	_, _ = fmt.Fprintf(s.echo, format+"\n", args...)
}

func attrIndex(o *Object, name string) int {
	return slices.IndexFunc(o.Attributes, func(a Attribute) bool { return a.Name == name })
}

func checkAttrName(o *Object, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("attribute name is empty")
	}
	if attrIndex(o, name) >= 0 || slices.Contains(o.Builtin, name) {
		return fmt.Errorf("attribute %q: %w", name, ErrExists)
	}
	return nil
}

func moveWithin(o *Object, from, to int) {
	a := o.Attributes[from]
	o.Attributes = slices.Delete(o.Attributes, from, from+1)
	o.Attributes = slices.Insert(o.Attributes, to, a)
}
