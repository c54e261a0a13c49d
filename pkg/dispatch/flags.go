package dispatch

import (
	"pktsend/pkg/codec"
	"pktsend/pkg/config"
	"pktsend/pkg/packet"
)

// UsageWarning is a problem with the invocation that does not stop it.
type UsageWarning struct {
	Msg string
}

func (w *UsageWarning) Error() string { return w.Msg }

func usageWarning(msg string) error {
	return &UsageWarning{Msg: msg}
}

// Flags is the outcome of resolving conflicting command line flags.
type Flags struct {
	Mode     codec.Mode
	Protocol packet.Protocol
	// ProtocolSet is true if --tcp or --udp was given. Only then does the
	// protocol override a saved packet.
	ProtocolSet bool
	Warnings    []error
}

// Normalize picks one encoding and one protocol from cfg. Hex wins over
// pure ASCII, which wins over mixed ASCII; hex is the default. TCP wins over
// UDP and is the default. Every conflict yields a UsageWarning.
func Normalize(cfg *config.Send) Flags {
	var f Flags

	encodings := 0
	for _, set := range []bool{cfg.Hex, cfg.PureASCII, cfg.MixedASCII} {
		if set {
			encodings++
		}
	}

	switch {
	case cfg.Hex || encodings == 0:
		f.Mode = codec.ModeHex
	case cfg.PureASCII:
		f.Mode = codec.ModePureASCII
	default:
		f.Mode = codec.ModeMixedASCII
	}
	if encodings > 1 {
		f.Warnings = append(f.Warnings, usageWarning("More than one encoding given, using "+f.Mode.String()))
	}

	f.ProtocolSet = cfg.TCP || cfg.UDP
	f.Protocol = packet.ProtoTCP
	if cfg.UDP && !cfg.TCP {
		f.Protocol = packet.ProtoUDP
	}
	if cfg.TCP && cfg.UDP {
		f.Warnings = append(f.Warnings, usageWarning("Both TCP and UDP given, using TCP"))
	}

	return f
}

// Overrides turns the command line values into merge overrides for a
// saved packet.
func (f Flags) Overrides(cfg *config.Send) packet.Overrides {
	mode := f.Mode
	ov := packet.Overrides{
		ToIP:    &cfg.Address,
		Port:    &cfg.Port,
		Payload: &cfg.Data,
		Mode:    &mode,
	}
	if f.ProtocolSet {
		proto := f.Protocol
		ov.Protocol = &proto
	}
	return ov
}
