package bridge

import "errors"

var (
	ErrUnknownPrimitive = errors.New("bridge: unknown primitive")
	ErrArity            = errors.New("bridge: arity mismatch")
	ErrDuplicate        = errors.New("bridge: duplicate primitive")
	ErrEmptyTable       = errors.New("bridge: empty primitive table")
	ErrNamespaceTaken   = errors.New("bridge: namespace already registered")
	ErrNoRenderer       = errors.New("bridge: no renderer to bind primitives to")

	ErrScriptMissing = errors.New("bridge: boot script missing")
	ErrScriptEmpty   = errors.New("bridge: boot script is empty")
	ErrScriptNotUTF8 = errors.New("bridge: boot script is not valid UTF-8")
)
