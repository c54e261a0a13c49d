// Package shared provides the CLI flag definitions and utility functions
// used by pktsend's command-line interface.
package shared

import (
	"strings"

	"github.com/urfave/cli/v3"
)

const categoryCommon = "common"

// QuietFlag is the name of the flag to print only the reply.
const QuietFlag = "quiet"

// VerboseFlag is the name of the flag to enable verbose diagnostics.
const VerboseFlag = "verbose"

// WaitFlag is the name of the flag to specify how long to wait for a reply, in milliseconds.
const WaitFlag = "wait"

// BindFlag is the name of the flag to specify the local port.
const BindFlag = "bind"

// LogFileFlag is the name of the flag to specify a traffic log file.
const LogFileFlag = "log"

// GetArgsUsage returns the arguments usage string for CLI commands.
func GetArgsUsage() string {
	return strings.Join([]string{
		"[address]",
		"[port]",
		"[data]",
	}, " ")
}

// GetDescription returns the description text of the send command.
func GetDescription() string {
	return strings.Join([]string{
		"Sends data to address:port over TCP or UDP and optionally waits for a reply.",
		"Address, port and data are optional when sending a saved packet with --name.",
		"Use - as data to read it from stdin.",
		"The exit code is the number of bytes sent, or -1 on failure.",
	}, "\n")
}

// GetCommonFlags returns the flags controlling output and the exchange itself.
func GetCommonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:     QuietFlag,
			Aliases:  []string{"q"},
			Usage:    "Quiet mode, only print received data",
			Category: categoryCommon,
			Value:    false,
			Required: false,
		},
		&cli.BoolFlag{
			Name:     VerboseFlag,
			Aliases:  []string{},
			Usage:    "Verbose diagnostics on stderr",
			Category: categoryCommon,
			Value:    false,
			Required: false,
		},
		&cli.IntFlag{
			Name:     WaitFlag,
			Aliases:  []string{"w"},
			Usage:    "Wait up to this many milliseconds for a reply, 0 means do not wait",
			Category: categoryCommon,
			Value:    0,
			Required: false,
		},
		&cli.IntFlag{
			Name:     BindFlag,
			Aliases:  []string{"b"},
			Usage:    "Local port to send from, 0 means dynamic",
			Category: categoryCommon,
			Value:    0,
			Required: false,
		},
		&cli.StringFlag{
			Name:     LogFileFlag,
			Aliases:  []string{},
			Usage:    "Append a hex dump of the exchanged data to this file",
			Category: categoryCommon,
			Value:    "",
			Required: false,
		},
	}
}

const categoryEncoding = "encoding"

// HexFlag is the name of the flag to parse data as hex.
const HexFlag = "hex"

// MixedASCIIFlag is the name of the flag to parse data as ASCII with \xHH escapes.
const MixedASCIIFlag = "ascii"

// PureASCIIFlag is the name of the flag to parse data as plain ASCII.
const PureASCIIFlag = "ASCII"

// GetEncodingFlags returns the flags selecting how data is parsed.
func GetEncodingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:     HexFlag,
			Aliases:  []string{"x"},
			Usage:    "Parse data as hex (default)",
			Category: categoryEncoding,
			Value:    false,
			Required: false,
		},
		&cli.BoolFlag{
			Name:     MixedASCIIFlag,
			Aliases:  []string{"a"},
			Usage:    `Parse data as mixed ASCII, \xHH escapes are translated`,
			Category: categoryEncoding,
			Value:    false,
			Required: false,
		},
		&cli.BoolFlag{
			Name:     PureASCIIFlag,
			Aliases:  []string{"A"},
			Usage:    `Parse data as pure ASCII, no \xHH translation`,
			Category: categoryEncoding,
			Value:    false,
			Required: false,
		},
	}
}

const categoryProtocol = "protocol"

// TCPFlag is the name of the flag to send over TCP.
const TCPFlag = "tcp"

// UDPFlag is the name of the flag to send over UDP.
const UDPFlag = "udp"

// GetProtocolFlags returns the flags selecting the transport.
func GetProtocolFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:     TCPFlag,
			Aliases:  []string{"t"},
			Usage:    "Send over TCP (default)",
			Category: categoryProtocol,
			Value:    false,
			Required: false,
		},
		&cli.BoolFlag{
			Name:     UDPFlag,
			Aliases:  []string{"u"},
			Usage:    "Send over UDP",
			Category: categoryProtocol,
			Value:    false,
			Required: false,
		},
	}
}

const categoryPackets = "saved packets"

// NameFlag is the name of the flag to send a saved packet.
const NameFlag = "name"

// SaveFlag is the name of the flag to save the sent packet.
const SaveFlag = "save"

// PacketsFileFlag is the name of the flag to specify the saved-packet file.
const PacketsFileFlag = "packets"

// SettingsFileFlag is the name of the flag to specify the settings file.
const SettingsFileFlag = "settings"

// GetPacketFlags returns the flags dealing with saved packets and settings.
func GetPacketFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     NameFlag,
			Aliases:  []string{"n"},
			Usage:    "Send the saved packet with this name, other arguments override its fields",
			Category: categoryPackets,
			Value:    "",
			Required: false,
		},
		&cli.StringFlag{
			Name:     SaveFlag,
			Aliases:  []string{},
			Usage:    "Save the sent packet under this name after a successful send",
			Category: categoryPackets,
			Value:    "",
			Required: false,
		},
		&cli.StringFlag{
			Name:     PacketsFileFlag,
			Aliases:  []string{},
			Usage:    "Saved-packet file (default: packets.yaml in the user config directory)",
			Category: categoryPackets,
			Value:    "",
			Required: false,
			Sources:  cli.EnvVars("PKTSEND_PACKETS"),
		},
		&cli.StringFlag{
			Name:     SettingsFileFlag,
			Aliases:  []string{},
			Usage:    "Settings file (default: settings.yaml in the user config directory)",
			Category: categoryPackets,
			Value:    "",
			Required: false,
			Sources:  cli.EnvVars("PKTSEND_SETTINGS"),
		},
	}
}

// GetSendFlags returns all flags of the send command.
func GetSendFlags() []cli.Flag {
	flags := []cli.Flag{}

	flags = append(flags, GetCommonFlags()...)
	flags = append(flags, GetEncodingFlags()...)
	flags = append(flags, GetProtocolFlags()...)
	flags = append(flags, GetPacketFlags()...)

	return flags
}
