// Package packets provides the packets subcommand for managing saved packets.
package packets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"pktsend/cmd/shared"
	"pktsend/pkg/config"
	"pktsend/pkg/format"
	"pktsend/pkg/packet"
	"pktsend/pkg/store"

	"github.com/urfave/cli/v3"
)

// GetCommand returns the packets subcommand. deps may be nil.
func GetCommand(deps *config.Dependencies) *cli.Command {
	return &cli.Command{
		Name:  "packets",
		Usage: "List or delete saved packets",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     shared.PacketsFileFlag,
				Aliases:  []string{},
				Usage:    "Saved-packet file (default: packets.yaml in the user config directory)",
				Value:    "",
				Required: false,
				Sources:  cli.EnvVars("PKTSEND_PACKETS"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "Print all saved packets",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					st, err := openStore(cmd.String(shared.PacketsFileFlag))
					if err != nil {
						return err
					}
					return List(st, config.GetStdoutFunc(deps)())
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete the saved packet with the given name",
				ArgsUsage: "NAME",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() != 1 {
						return errors.New("delete takes exactly one packet name")
					}
					st, err := openStore(cmd.String(shared.PacketsFileFlag))
					if err != nil {
						return err
					}
					return Delete(st, cmd.Args().First())
				},
			},
		},
	}
}

// List writes one line per saved packet: name, protocol, destination and
// payload hex.
func List(st *store.File, w io.Writer) error {
	pkts, err := st.List()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, p := range pkts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.Name, p.Protocol, format.Addr(p.ToIP, p.Port), p.HexString)
	}
	return tw.Flush()
}

// Delete removes the saved packet called name. A missing packet is an error.
func Delete(st *store.File, name string) error {
	found, err := st.Delete(name)
	if err != nil {
		return &packet.LookupError{Name: name, Err: err}
	}
	if !found {
		return &packet.LookupError{Name: name}
	}
	return nil
}

func openStore(path string) (*store.File, error) {
	if path == "" {
		p, err := store.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return store.NewFile(path), nil
}
