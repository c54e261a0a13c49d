// Package version provides the version subcommand.
package version

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// Version is set at build time with -ldflags "-X pktsend/cmd/version.Version=...".
var Version = "unknown"

// GetCommand returns the version subcommand.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print the pktsend version",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			fmt.Printf("pktsend %s\n", Version)
			return nil
		},
		Flags: []cli.Flag{},
	}
}
