// Package dispatch runs one pktsend invocation from parsed command line to
// finished exchange: saved packet lookup, flag normalization, payload
// encoding, address resolution and the transport exchange itself.
package dispatch

import (
	"context"
	"fmt"
	"net/netip"

	"pktsend/pkg/codec"
	"pktsend/pkg/config"
	"pktsend/pkg/log"
	pnet "pktsend/pkg/net"
	"pktsend/pkg/packet"
	"pktsend/pkg/transport"
	"pktsend/pkg/transport/tcp"
	"pktsend/pkg/transport/udp"
)

// Dispatcher holds what a dispatch needs besides the invocation itself.
type Dispatcher struct {
	Store    packet.Store
	Lookup   config.LookupFunc
	TCP      transport.Exchanger
	UDP      transport.Exchanger
	Settings config.Settings
	Logger   *log.Logger

	// Traffic, if set, receives a hex dump of the payload and reply.
	Traffic *log.TrafficLog
}

// New creates a Dispatcher using the network functions in deps, which may
// be nil. store may be nil if no saved packets are available.
func New(deps *config.Dependencies, store packet.Store, settings config.Settings, logger *log.Logger) *Dispatcher {
	return &Dispatcher{
		Store:    store,
		Lookup:   config.GetLookupFunc(deps),
		TCP:      tcp.NewExchanger(deps, logger),
		UDP:      udp.NewExchanger(deps, logger),
		Settings: settings,
		Logger:   logger,
	}
}

// Dispatch performs the invocation described by cfg. It never returns nil;
// a terminal failure is reported in Outcome.Err and stops all later steps.
func (d *Dispatcher) Dispatch(ctx context.Context, cfg *config.Send) *Outcome {
	out := &Outcome{Warnings: append([]error(nil), cfg.Warnings...)}

	var base packet.Packet
	if cfg.Name != "" {
		p, err := packet.Resolve(d.Store, cfg.Name)
		if err != nil {
			out.Err = err
			return out
		}
		d.Logger.VerboseMsg("Using saved packet %q", p.Name)
		base = p
	}

	flags := Normalize(cfg)
	out.Warnings = append(out.Warnings, flags.Warnings...)

	req := packet.Merge(base, flags.Overrides(cfg))
	if req.Port == 0 && cfg.Name == "" {
		if p := d.Settings.DefaultPort(req.Protocol == packet.ProtoUDP); p != 0 {
			d.Logger.VerboseMsg("No port given, using default %s port %d", req.Protocol, p)
			req.Port = p
		}
	}

	out.Protocol = req.Protocol
	out.Target = req.ToIP
	out.Port = req.Port

	if err := config.ValidatePort(req.Port); err != nil {
		out.Err = fmt.Errorf("invalid destination port: %w", err)
		return out
	}
	if req.Port == 0 {
		out.Warnings = append(out.Warnings, usageWarning("Sending to port zero"))
	}
	if cfg.BindSet && cfg.BindPort == 0 {
		out.Warnings = append(out.Warnings, usageWarning("Bind port 0 lets the system choose a port"))
	}

	out.PayloadHex = codec.Encode(req.Mode, req.Payload)
	payload := codec.HexToBytes(out.PayloadHex)
	if len(payload) == 0 {
		out.Warnings = append(out.Warnings, usageWarning("Sending empty packet"))
	}
	d.Logger.VerboseMsg("Payload is %d bytes (%s input)", len(payload), req.Mode)

	addr, err := pnet.Resolve(ctx, req.ToIP, d.lookup())
	if err != nil {
		out.Err = err
		return out
	}
	out.Destination = netip.AddrPortFrom(addr, uint16(req.Port))
	if addr.String() != req.ToIP {
		d.Logger.VerboseMsg("Resolved %s to %s", req.ToIP, addr)
	}

	ex := d.TCP
	if req.Protocol == packet.ProtoUDP {
		ex = d.UDP
	}

	res, err := ex.Exchange(ctx, transport.Request{
		BindPort: cfg.BindPort,
		Dest:     out.Destination,
		Payload:  payload,
		Wait:     cfg.Wait,
	})
	if res != nil {
		out.LocalPort = res.LocalPort
		out.BytesSent = res.BytesSent
		out.Reply = res.Reply
		out.BytesReceived = len(res.Reply)
		out.Warnings = append(out.Warnings, res.Warnings...)
	}
	if err != nil {
		out.Err = err
		return out
	}
	out.Waited = cfg.Wait > 0

	d.record(out, payload)
	return out
}

func (d *Dispatcher) lookup() config.LookupFunc {
	if d.Lookup != nil {
		return d.Lookup
	}
	return config.GetLookupFunc(nil)
}

func (d *Dispatcher) record(out *Outcome, payload []byte) {
	if d.Traffic == nil {
		return
	}

	peer := out.Destination.String()
	if err := d.Traffic.Record(log.Sent, out.Protocol.String(), peer, payload[:out.BytesSent]); err != nil {
		d.Logger.ErrorMsg("%s\n", err)
	}
	if out.Waited {
		if err := d.Traffic.Record(log.Received, out.Protocol.String(), peer, out.Reply); err != nil {
			d.Logger.ErrorMsg("%s\n", err)
		}
	}
}
