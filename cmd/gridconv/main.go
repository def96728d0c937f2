package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/tacmap/coordconv/internal/cli"
	"github.com/tacmap/coordconv/internal/config"
	"github.com/tacmap/coordconv/internal/logging"
)

type command struct {
	name        string
	description string
	run         func(cli.Env, *flag.FlagSet, []string) error
}

var subCommands []command

func init() {
	subCommands = []command{
		{"grid", "Convert \"lat,lon\" to a grid reference.", cli.Grid},
		{"geo", "Convert a grid reference to latitude and longitude.", cli.Geo},
		{"measure", "Measure distance, bearing, area or perimeter over \"lat,lon\" points.", cli.Measure},
		{"help", "Print this message.", func(cli.Env, *flag.FlagSet, []string) error { printUsage(); return nil }},
	}
}

func printUsage() {
	fmt.Printf("USAGE:\n    %s [SUBCOMMAND] [SUBCOMMAND FLAGS]\n\n", os.Args[0])
	fmt.Print("SUBCOMMANDS: \n")

	for i := 0; i < len(subCommands); i++ {
		name := subCommands[i].name

		fmt.Printf("%12s    %s\n", name, subCommands[i].description)
	}

	fmt.Printf("\nUse -h as SUBCOMMAND FLAG to print help for each subcommand.\n")
	fmt.Printf("Configuration is read from gridconv.yaml, $GRIDCONV_CONFIG and GRIDCONV_* variables.\n\n")
}

func main() {

	if len(os.Args) < 2 {
		fmt.Printf("\nERROR: No subcommand was provided.\n\n")
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load(os.Getenv("GRIDCONV_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	env := cli.Env{Stdout: os.Stdout, Config: cfg, Logger: slog.Default()}
	cmd := os.Args[1]

	for i := 0; i < len(subCommands); i++ {
		if subCommands[i].name == cmd {
			set := flag.NewFlagSet(cmd, flag.ExitOnError)
			if err := subCommands[i].run(env, set, os.Args[2:]); err != nil {
				slog.Error("command failed", "command", cmd, "error", err)
				os.Exit(1)
			}
			return
		}
	}

	fmt.Printf("\nERROR: Subcommand '%s' was not found.\n\n", cmd)
	printUsage()
	os.Exit(1)
}
