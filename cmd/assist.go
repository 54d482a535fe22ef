package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/holdings/renderer"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// assistCmd asks the AI assistant a question about the portfolio.
type assistCmd struct {
	force bool
	model string
}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "ask the AI assistant about the portfolio" }
func (*assistCmd) Usage() string {
	return `hsnap assist [-f] <question>

  Sends the current snapshot and your question to the AI assistant and
  renders its answer. Requires the GEMINI_API_KEY environment variable.
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.force, "f", false, "force a fresh snapshot before asking")
	f.StringVar(&c.model, "model", "gemini-2.5-flash", "Gemini model to use")
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	question := strings.Join(f.Args(), " ")
	if question == "" {
		question = "How diversified is this portfolio? Point out any concentration risk."
	}

	s, err := NewLoader().Snapshot(c.force)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building snapshot: %v\n", err)
		return subcommands.ExitFailure
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	prompt := "You are a portfolio analysis assistant. Here is the current portfolio snapshot in markdown:\n\n" +
		renderer.SnapshotMarkdown(s) +
		"\n\nQuestion: " + question
	resp, err := client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error querying the assistant:", err)
		return subcommands.ExitFailure
	}

	printMarkdown(resp.Text())

	return subcommands.ExitSuccess
}
