package bridge

import (
	"fmt"
	"io"
	"os"

	"github.com/richinsley/elvgl/log"
	"github.com/richinsley/elvgl/renderer"
)

var logger = log.New("bridge")

// Process exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
)

type RunConfig struct {
	// BootScript defaults to DefaultBootScript.
	BootScript string
	// Renderer is required; Run fails bring-up without one.
	Renderer *renderer.Renderer
	// Dispatch defaults to Direct.
	Dispatch Dispatcher
	// Evaluator defaults to an Elvish evaluator on the process's standard files.
	Evaluator Evaluator
	// Stderr receives bring-up and boot script failures. Defaults to os.Stderr.
	Stderr io.Writer
}

// Run registers the primitives, loads the boot script and evaluates it. It
// returns the process exit code: ExitFailure if the evaluator could not be
// brought up and ExitOK otherwise, including when there is no script to run
// or the script raised an error.
func Run(cfg RunConfig) int {
	if cfg.BootScript == "" {
		cfg.BootScript = DefaultBootScript
	}
	if cfg.Dispatch == nil {
		cfg.Dispatch = Direct
	}
	if cfg.Stderr == nil {
		cfg.Stderr = os.Stderr
	}
	if cfg.Evaluator == nil {
		cfg.Evaluator = NewElvish(os.Stdin, os.Stdout, os.Stderr)
	}

	if cfg.Renderer == nil {
		fmt.Fprintf(cfg.Stderr, "failed to set up script environment: %v\n", ErrNoRenderer)
		return ExitFailure
	}

	table := Primitives(cfg.Renderer, cfg.Dispatch)
	if err := cfg.Evaluator.Register(Namespace, table); err != nil {
		fmt.Fprintf(cfg.Stderr, "failed to set up script environment: %v\n", err)
		return ExitFailure
	}
	for _, name := range table.Names() {
		p, _ := table.Lookup(name)
		logger.Debugf("registered %s:%s: %s", Namespace, ElvishName(name), p.Doc)
	}

	code, err := LoadScript(cfg.BootScript)
	if err != nil {
		fmt.Fprintf(cfg.Stderr, "failed to load boot script: %v\n", err)
		return ExitOK
	}

	logger.Infof("running boot script %s", cfg.BootScript)
	if err := cfg.Evaluator.Eval(cfg.BootScript, code); err != nil {
		logger.Debugf("boot script raised: %v", err)
	}

	var closeErr error
	cfg.Dispatch(func() { closeErr = cfg.Renderer.Close() })
	if closeErr != nil {
		logger.Errorf("failed to release renderer: %v", closeErr)
	}
	return ExitOK
}
