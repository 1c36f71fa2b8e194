package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Simulate SimulateCmd      `cmd:"" help:"Play a full bracket with a scripted picker and print the top five"`
	Validate ValidateCmd      `cmd:"" help:"Check that a job catalog file can seed a bracket"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("bracketctl"),
		kong.Description("Offline tools for the 128-job double-elimination bracket"),
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
