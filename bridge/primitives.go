package bridge

import (
	"fmt"

	"github.com/richinsley/elvgl/renderer"
)

// Namespace is the prefix the primitives are registered under.
const Namespace = "c"

// Dispatcher runs f on the thread that owns the GL context and returns once f
// has finished.
type Dispatcher func(f func())

// Direct runs f on the calling goroutine.
func Direct(f func()) {
	f()
}

// Primitive is a zero-argument native function exposed to scripts. Exactly one
// of Action and Query is set: an Action returns nil to the script, a Query
// returns a boolean.
type Primitive struct {
	Name string
	// Doc is a one-line description, logged when the primitive is registered.
	Doc    string
	Action func() error
	Query  func() (bool, error)
}

// Call invokes the primitive and returns its script-visible result.
func (p Primitive) Call() (interface{}, error) {
	if p.Query != nil {
		v, err := p.Query()
		if err != nil {
			return nil, err
		}
		return v, nil
	}
	return nil, p.Action()
}

// Table maps primitive names to their implementations. It is built once and
// not modified afterwards.
type Table struct {
	prims []Primitive
	index map[string]int
}

// NewTable builds a table from prims, rejecting duplicate names and primitives
// that set neither or both of Action and Query.
func NewTable(prims ...Primitive) (*Table, error) {
	t := &Table{index: make(map[string]int, len(prims))}
	for _, p := range prims {
		if _, dup := t.index[p.Name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicate, p.Name)
		}
		if p.Name == "" || (p.Action == nil) == (p.Query == nil) {
			return nil, fmt.Errorf("bridge: malformed primitive %q", p.Name)
		}
		t.index[p.Name] = len(t.prims)
		t.prims = append(t.prims, p)
	}
	return t, nil
}

func (t *Table) Len() int {
	return len(t.prims)
}

// Names returns the primitive names in registration order.
func (t *Table) Names() []string {
	names := make([]string, len(t.prims))
	for i, p := range t.prims {
		names[i] = p.Name
	}
	return names
}

func (t *Table) Lookup(name string) (Primitive, bool) {
	i, ok := t.index[name]
	if !ok {
		return Primitive{}, false
	}
	return t.prims[i], true
}

// Call invokes the named primitive. Every primitive takes zero arguments.
func (t *Table) Call(name string, args ...interface{}) (interface{}, error) {
	p, ok := t.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPrimitive, name)
	}
	if len(args) != 0 {
		return nil, fmt.Errorf("%w: %s takes 0 arguments, got %d", ErrArity, name, len(args))
	}
	return p.Call()
}

// Primitives returns the table of lifecycle primitives bound to r. Every call
// goes through dispatch.
func Primitives(r *renderer.Renderer, dispatch Dispatcher) *Table {
	action := func(f func() error) func() error {
		return func() (err error) {
			dispatch(func() { err = f() })
			return
		}
	}
	query := func(f func() (bool, error)) func() (bool, error) {
		return func() (v bool, err error) {
			dispatch(func() { v, err = f() })
			return
		}
	}

	t, err := NewTable(
		Primitive{Name: "start", Doc: "Open the window and build the triangle pipeline.", Action: action(r.Start)},
		Primitive{Name: "render", Doc: "Draw and present one frame.", Action: action(r.Render)},
		Primitive{Name: "should-close?", Doc: "Report whether the window was asked to close.", Query: query(r.ShouldClose)},
		Primitive{Name: "end", Doc: "Release the pipeline, the device and the window.", Action: action(r.End)},
	)
	if err != nil {
		panic(err)
	}
	return t
}
