package main

import (
	"context"
	"fmt"
	"os"

	"pktsend/cmd/packets"
	"pktsend/cmd/send"
	"pktsend/cmd/shared"
	"pktsend/cmd/version"

	"github.com/urfave/cli/v3"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shared.SetupSignalHandling(cancel)

	status := 0
	cmd := send.GetCommand(&status, nil)
	cmd.Commands = []*cli.Command{
		version.GetCommand(),
		packets.GetCommand(nil),
	}

	if err := cmd.Run(ctx, args); err != nil {
		fmt.Fprintf(os.Stderr, "[!] Error: %s\n", err)
		return -1
	}
	return status
}
