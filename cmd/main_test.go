package main

import (
	"bytes"
	"testing"

	"github.com/richinsley/elvgl/bridge"
	"github.com/urfave/cli"
)

func TestRejectsInvalidWindowSize(t *testing.T) {
	exited := -1
	oldExiter, oldErrWriter := cli.OsExiter, cli.ErrWriter
	cli.OsExiter = func(code int) { exited = code }
	var stderr bytes.Buffer
	cli.ErrWriter = &stderr
	defer func() {
		cli.OsExiter, cli.ErrWriter = oldExiter, oldErrWriter
	}()

	exitCode := bridge.ExitOK
	app := newApp(&exitCode)
	err := app.Run([]string{"elvgl", "--width", "0"})

	coder, ok := err.(cli.ExitCoder)
	if !ok || coder.ExitCode() != bridge.ExitFailure {
		t.Fatalf("expected an exit error with code %d; got %v", bridge.ExitFailure, err)
	}
	if exited != bridge.ExitFailure {
		t.Fatalf("expected exit code %d to be handed to the exiter; got %d", bridge.ExitFailure, exited)
	}
	if exitCode != bridge.ExitOK {
		t.Fatalf("expected the boot script not to run")
	}
}

func TestFlagDefaults(t *testing.T) {
	exitCode := bridge.ExitOK
	app := newApp(&exitCode)

	defaults := map[string]string{}
	for _, f := range app.Flags {
		switch flag := f.(type) {
		case cli.StringFlag:
			defaults[flag.Name] = flag.Value
		}
	}
	if defaults["boot, b"] != "./boot.elv" {
		t.Fatalf("expected default boot script ./boot.elv; got %q", defaults["boot, b"])
	}
	if defaults["title"] != "elvgl" {
		t.Fatalf("expected default title elvgl; got %q", defaults["title"])
	}
}
