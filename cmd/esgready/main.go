// Command esgready scores emissions datasets for ESG audit readiness and
// CSRD maturity.
package main

import (
	"context"
	"os"

	"github.com/rshade/esgready/internal/cli"
	"github.com/rshade/esgready/pkg/version"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		os.Exit(1)
	}
}

// run executes the root command with args. Cobra has already printed the
// error when one is returned.
func run(ctx context.Context, args []string) error {
	root := cli.NewRootCmd(version.GetVersion())
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}
