package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path"

	"github.com/etnz/holdings/cmd"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// optional .env file carrying ROBINHOOD_TOKEN and GEMINI_API_KEY
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: cannot load .env: %v", err)
	}

	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion installs shell completion for the subcommands and their flags.
// It is a no-op outside of a completion request.
func completion() {
	c := &complete.Command{
		Flags: map[string]complete.Predictor{
			"cache-file":      predict.Files("*.json"),
			"max-age":         predict.Something,
			"robinhood-token": predict.Something,
		},
		Sub: map[string]*complete.Command{
			"snapshot": {Flags: map[string]complete.Predictor{"f": predict.Nothing}},
			"refresh":  {},
			"assist": {Flags: map[string]complete.Predictor{
				"f":     predict.Nothing,
				"model": predict.Something,
			}},
			"topic": {Args: predict.Set{"readme", "snapshot", "cache", "precision", "*"}},
		},
	}
	c.Complete(path.Base(os.Args[0]))
}
