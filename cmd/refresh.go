package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// refreshCmd forces a fresh snapshot and reports what was ingested, without
// rendering the full report.
type refreshCmd struct{}

func (*refreshCmd) Name() string     { return "refresh" }
func (*refreshCmd) Synopsis() string { return "fetch a fresh snapshot and update the cache" }
func (*refreshCmd) Usage() string {
	return `hsnap refresh

  Fetches a fresh snapshot from the brokerage, bypassing the cache, and
  reports the number of positions ingested and any warning met on the way.
`
}

func (*refreshCmd) SetFlags(f *flag.FlagSet) {}

func (c *refreshCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := NewLoader().Snapshot(true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building snapshot: %v\n", err)
		return subcommands.ExitFailure
	}

	if s.Empty() {
		fmt.Fprintln(os.Stderr, "Warning: empty portfolio, nothing was cached.")
	} else {
		fmt.Printf("Refreshed %d holdings, total equity %s.\n", s.Len(), s.TotalEquity())
	}
	for _, w := range s.Warnings() {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}

	return subcommands.ExitSuccess
}
