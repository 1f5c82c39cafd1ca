package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/goliatone/go-confdocs/cmd/confdocs/commands"
	"github.com/goliatone/go-confdocs/internal/logfields"
)

var version = "dev"

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("confdocs"),
		kong.Description("Render reference documentation for configuration records."),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	global := commands.NewGlobal(os.Stdout)
	if err := ctx.Run(global, &cli); err != nil {
		slog.Error("command failed", logfields.Command(ctx.Command()), logfields.Error(err))
		os.Exit(1)
	}
}
