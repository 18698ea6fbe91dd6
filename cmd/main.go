package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/richinsley/elvgl/bridge"
	"github.com/richinsley/elvgl/gldevice"
	"github.com/richinsley/elvgl/renderer"
	"github.com/urfave/cli"
	"golang.design/x/mainthread"
)

func init() {
	runtime.LockOSThread()
}

func newApp(exitCode *int) *cli.App {
	defaults := renderer.DefaultOptions()

	app := cli.NewApp()
	app.Name = "elvgl"
	app.Usage = "run an Elvish boot script against an OpenGL window"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "boot, b",
			Value: bridge.DefaultBootScript,
			Usage: "boot script to evaluate",
		},
		cli.StringFlag{
			Name:  "title",
			Value: defaults.Title,
			Usage: "window title",
		},
		cli.IntFlag{
			Name:  "width",
			Value: defaults.Width,
			Usage: "window width",
		},
		cli.IntFlag{
			Name:  "height",
			Value: defaults.Height,
			Usage: "window height",
		},
		cli.BoolFlag{
			Name:  "hidden",
			Usage: "keep the window hidden while rendering",
		},
	}
	app.Action = func(ctx *cli.Context) error {
		setupLogging(ctx)

		opts := renderer.Options{
			Title:  ctx.String("title"),
			Width:  ctx.Int("width"),
			Height: ctx.Int("height"),
		}
		if opts.Width <= 0 || opts.Height <= 0 {
			return cli.NewExitError(fmt.Sprintf("invalid window size %dx%d", opts.Width, opts.Height), bridge.ExitFailure)
		}

		r := renderer.New(&gldevice.Platform{Visible: !ctx.Bool("hidden")}, opts)
		logger.Infof("boot script: %s", ctx.String("boot"))
		*exitCode = bridge.Run(bridge.RunConfig{
			BootScript: ctx.String("boot"),
			Renderer:   r,
			Dispatch:   mainthread.Call,
		})
		return nil
	}
	return app
}

func main() {
	exitCode := bridge.ExitOK
	app := newApp(&exitCode)

	// GLFW and the GL context live on the main thread; the boot script runs on
	// another goroutine and reaches them through mainthread.Call.
	mainthread.Init(func() {
		if err := app.Run(os.Args); err != nil {
			if coder, ok := err.(cli.ExitCoder); ok {
				exitCode = coder.ExitCode()
			} else {
				exitCode = bridge.ExitFailure
			}
			fmt.Fprintln(os.Stderr, err)
		}
	})
	os.Exit(exitCode)
}
