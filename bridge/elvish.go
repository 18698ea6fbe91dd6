package bridge

import (
	"fmt"
	"os"
	"strings"

	"src.elv.sh/pkg/diag"
	"src.elv.sh/pkg/eval"
	"src.elv.sh/pkg/parse"
)

const valuePrefix = "▶ "

// Evaluator is an embedded script runtime that primitives can be registered into.
type Evaluator interface {
	// Register installs every primitive of t under the namespace ns.
	Register(ns string, t *Table) error
	// Eval runs code to completion. Errors are reported by the evaluator
	// itself before being returned.
	Eval(name, code string) error
}

// Elvish is an Evaluator backed by the Elvish interpreter.
type Elvish struct {
	ev         *eval.Evaler
	files      [3]*os.File
	registered map[string]bool
}

var _ Evaluator = (*Elvish)(nil)

// NewElvish creates an Elvish evaluator using the given files as its standard
// input, output and error.
func NewElvish(stdin, stdout, stderr *os.File) *Elvish {
	return &Elvish{
		ev:         eval.NewEvaler(),
		files:      [3]*os.File{stdin, stdout, stderr},
		registered: make(map[string]bool),
	}
}

// ElvishName maps a primitive name to the name it is callable as from Elvish.
// A trailing "?" is dropped because Elvish reads "?" as a wildcard.
func ElvishName(name string) string {
	return strings.TrimSuffix(name, "?")
}

func (e *Elvish) Register(ns string, t *Table) error {
	if ns == "" {
		return fmt.Errorf("bridge: empty namespace name")
	}
	if e.registered[ns] {
		return fmt.Errorf("%w: %s", ErrNamespaceTaken, ns)
	}
	if t == nil || t.Len() == 0 {
		return ErrEmptyTable
	}

	fns := make(map[string]interface{}, t.Len())
	for _, p := range t.prims {
		name := ElvishName(p.Name)
		if _, dup := fns[name]; dup {
			return fmt.Errorf("%w: %s:%s", ErrDuplicate, ns, name)
		}
		fns[name] = elvishFn(p)
	}

	e.ev.ExtendGlobal(eval.BuildNs().AddNs(ns, eval.BuildNsNamed(ns).AddGoFns(fns)))
	e.registered[ns] = true
	return nil
}

func elvishFn(p Primitive) interface{} {
	if p.Query != nil {
		return func() (bool, error) { return p.Query() }
	}
	return func() error { return p.Action() }
}

func (e *Elvish) Eval(name, code string) error {
	ports, cleanup := eval.PortsFromFiles(e.files, valuePrefix)
	defer cleanup()

	err := e.ev.Eval(
		parse.Source{Name: name, Code: code, IsFile: true},
		eval.EvalCfg{Ports: ports, Interrupt: eval.ListenInterrupts})
	if err != nil {
		diag.ShowError(e.files[2], err)
	}
	return err
}
