package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
)

// Commands lists every pcs subcommand.
var Commands = []subcommands.Command{
	&snapshotsCmd{},
	&performanceCmd{},
	&detailsCmd{},
	&reportCmd{},
	&exportCmd{},
	&importCmd{},
	&topicCmd{},
}

var rawOutput = flag.Bool("raw", false, "print markdown as is, without terminal styling")

// printMarkdown renders md for the terminal.
func printMarkdown(md string) {
	if *rawOutput {
		fmt.Print(md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering markdown: %v\n", err)
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
