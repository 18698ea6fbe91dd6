package main

import (
	"github.com/richinsley/elvgl/log"
	"github.com/urfave/cli"
)

var logger = log.New("elvgl")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
