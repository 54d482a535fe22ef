// Package cmd implements the CLI application to inspect brokerage holdings.
package cmd

import (
	"flag"

	"github.com/etnz/holdings"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&snapshotCmd{}, "portfolio")
	c.Register(&refreshCmd{}, "portfolio")

	c.Register(&assistCmd{}, "assistant")
	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var cacheFile = flag.String("cache-file", "snapshot.json", "Path to the snapshot cache file")
var maxAge = flag.Duration("max-age", holdings.DefaultMaxAge, "Freshness window for the cached snapshot")

// NewLoader assembles the snapshot loader from the app flags: the brokerage
// source and the file cache.
func NewLoader() *holdings.Loader {
	return &holdings.Loader{
		Source: holdings.NewRobinhood(holdings.RobinhoodToken()),
		Cache:  holdings.NewFileCache(*cacheFile),
		MaxAge: *maxAge,
	}
}
