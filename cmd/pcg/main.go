package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Demo    DemoCmd          `cmd:"" default:"withargs" help:"Run the interactive demo on stdin/stdout"`
	Tui     TuiCmd           `cmd:"" help:"Run the demo in a terminal UI"`
	Roll    RollCmd          `cmd:"" help:"Print generator output"`
	Serve   ServeCmd         `cmd:"" help:"Serve generator streams over WebSocket"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pcg"),
		kong.Description("PCG 128/64 XSL-RR pseudo-random number generator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
