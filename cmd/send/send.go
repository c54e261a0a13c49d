// Package send implements the send command: pktsend's root action, which
// sends one packet and reports the exchange.
package send

import (
	"context"
	"fmt"
	"time"

	"pktsend/cmd/shared"
	"pktsend/pkg/config"
	"pktsend/pkg/dispatch"
	"pktsend/pkg/format"
	"pktsend/pkg/log"
	"pktsend/pkg/packet"
	"pktsend/pkg/pipeio"
	"pktsend/pkg/store"

	"github.com/urfave/cli/v3"
)

// stdinData is the data argument that reads the payload from stdin.
const stdinData = "-"

// Files are the files an invocation reads or writes besides stdio.
// Empty paths select the defaults.
type Files struct {
	Packets  string
	Settings string
	Log      string
	SaveAs   string // save the sent packet under this name
}

// GetCommand returns the send command. The exit code of the invocation is
// stored in status. deps may be nil.
func GetCommand(status *int, deps *config.Dependencies) *cli.Command {
	return &cli.Command{
		Name:        "pktsend",
		Usage:       "Send a TCP or UDP packet and show the reply",
		Description: shared.GetDescription(),
		ArgsUsage:   shared.GetArgsUsage(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			pos, warnings := shared.ParsePositional(cmd.Args().Slice())

			cfg := &config.Send{
				Address:    pos.Address,
				Port:       pos.Port,
				Data:       pos.Data,
				Hex:        cmd.Bool(shared.HexFlag),
				MixedASCII: cmd.Bool(shared.MixedASCIIFlag),
				PureASCII:  cmd.Bool(shared.PureASCIIFlag),
				TCP:        cmd.Bool(shared.TCPFlag),
				UDP:        cmd.Bool(shared.UDPFlag),
				Wait:       time.Duration(cmd.Int(shared.WaitFlag)) * time.Millisecond,
				BindPort:   int(cmd.Int(shared.BindFlag)),
				BindSet:    cmd.IsSet(shared.BindFlag),
				Name:       cmd.String(shared.NameFlag),
				Quiet:      cmd.Bool(shared.QuietFlag),
				Verbose:    cmd.Bool(shared.VerboseFlag),
				Warnings:   warnings,
				Deps:       deps,
			}

			files := Files{
				Packets:  cmd.String(shared.PacketsFileFlag),
				Settings: cmd.String(shared.SettingsFileFlag),
				Log:      cmd.String(shared.LogFileFlag),
				SaveAs:   cmd.String(shared.SaveFlag),
			}

			logger := log.NewLogger(cfg.Verbose)

			if errors := config.Validate(cfg); len(errors) > 0 {
				logger.ErrorMsg("Argument validation errors:\n")
				for _, err := range errors {
					logger.ErrorMsg(" - %s\n", err)
				}
				*status = -1
				return nil
			}

			*status = Run(ctx, cfg, files, logger)
			return nil
		},
		Flags: shared.GetSendFlags(),
	}
}

// Run performs one invocation and returns its exit code.
func Run(ctx context.Context, cfg *config.Send, files Files, logger *log.Logger) int {
	if cfg.Data == stdinData {
		stdin := config.GetStdinFunc(cfg.Deps)()
		if pipeio.IsTerminal(stdin) {
			logger.InfoMsg("Reading payload from stdin, finish with Ctrl-D\n")
		}

		data, err := pipeio.ReadPayload(ctx, stdin)
		if err != nil {
			logger.ErrorMsg("reading payload from stdin: %s\n", err)
			return -1
		}
		cfg.Data = data
	}

	settings, warnings := loadSettings(files.Settings, logger)
	cfg.Warnings = append(cfg.Warnings, warnings...)

	st := openStore(files.Packets, logger)
	var packets packet.Store
	if st != nil {
		packets = st
	}

	d := dispatch.New(cfg.Deps, packets, settings, logger)

	if files.Log != "" {
		traffic, err := log.OpenTrafficLog(files.Log)
		if err != nil {
			logger.ErrorMsg("opening traffic log: %s\n", err)
			return -1
		}
		defer traffic.Close()
		d.Traffic = traffic
	}

	out := d.Dispatch(ctx, cfg)

	stdout := config.GetStdoutFunc(cfg.Deps)()
	if err := format.Transcript(stdout, out, cfg.Quiet); err != nil {
		logger.ErrorMsg("writing transcript: %s\n", err)
	}
	if cfg.Quiet && out.Err != nil {
		logger.ErrorMsg("%s\n", out.Err)
	}

	if files.SaveAs != "" && out.Err == nil {
		save(st, out.Packet(files.SaveAs), logger)
	}

	return out.ExitCode()
}

func loadSettings(path string, logger *log.Logger) (config.Settings, []error) {
	if path == "" {
		p, err := config.DefaultSettingsPath()
		if err != nil {
			logger.VerboseMsg("No settings file: %s", err)
			return config.Settings{}, nil
		}
		path = p
	}

	settings, err := config.LoadSettings(path)
	if err != nil {
		return config.Settings{}, []error{fmt.Errorf("ignoring settings: %w", err)}
	}
	if errors := settings.Validate(); len(errors) > 0 {
		return config.Settings{}, errors
	}

	logger.VerboseMsg("Settings from %s: %+v", path, settings)
	return settings, nil
}

func openStore(path string, logger *log.Logger) *store.File {
	if path == "" {
		p, err := store.DefaultPath()
		if err != nil {
			logger.VerboseMsg("No saved-packet file: %s", err)
			return nil
		}
		path = p
	}

	logger.VerboseMsg("Saved packets in %s", path)
	return store.NewFile(path)
}

func save(st *store.File, p packet.Packet, logger *log.Logger) {
	if st == nil {
		logger.ErrorMsg("cannot save packet %q: no saved-packet file\n", p.Name)
		return
	}

	if err := st.Save(p); err != nil {
		logger.ErrorMsg("saving packet %q: %s\n", p.Name, err)
		return
	}
	logger.VerboseMsg("Saved packet %q to %s", p.Name, st.Path())
}
