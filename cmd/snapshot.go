package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/holdings/renderer"
	"github.com/google/subcommands"
)

// snapshotCmd holds the flags for the 'snapshot' subcommand.
type snapshotCmd struct {
	force bool
}

func (*snapshotCmd) Name() string     { return "snapshot" }
func (*snapshotCmd) Synopsis() string { return "display the current portfolio snapshot" }
func (*snapshotCmd) Usage() string {
	return `hsnap snapshot [-f]

  Displays the portfolio holdings (equities and crypto) with their market
  value and portfolio weight. Serves the cached snapshot while it is fresh.
`
}

func (c *snapshotCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.force, "f", false, "force a fresh snapshot, bypassing the cache")
}

func (c *snapshotCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := NewLoader().Snapshot(c.force)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building snapshot: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.SnapshotMarkdown(s))

	return subcommands.ExitSuccess
}
