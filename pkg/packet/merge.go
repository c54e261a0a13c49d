package packet

import "pktsend/pkg/codec"

// Overrides holds the values given explicitly for one invocation. A nil
// field was not given.
type Overrides struct {
	ToIP     *string
	Port     *int
	Protocol *Protocol
	Payload  *string
	Mode     *codec.Mode
}

// Request is the effective destination and payload of one invocation.
// Payload is still in the textual form selected by Mode.
type Request struct {
	ToIP     string
	Port     int
	Protocol Protocol
	Payload  string
	Mode     codec.Mode
}

// Merge lays ov over the saved packet base without modifying it.
//
// An explicit payload replaces the stored one and keeps its own mode; the
// stored payload is always hex. Address and port replace the stored values
// only when non-empty and non-zero. Protocol replaces the stored one
// whenever it was given.
func Merge(base Packet, ov Overrides) Request {
	req := Request{
		ToIP:     base.ToIP,
		Port:     base.Port,
		Protocol: base.Protocol,
		Payload:  base.HexString,
		Mode:     codec.ModeHex,
	}

	if ov.Payload != nil && *ov.Payload != "" {
		req.Payload = *ov.Payload
		if ov.Mode != nil {
			req.Mode = *ov.Mode
		}
	}
	if ov.Port != nil && *ov.Port != 0 {
		req.Port = *ov.Port
	}
	if ov.ToIP != nil && *ov.ToIP != "" {
		req.ToIP = *ov.ToIP
	}
	if ov.Protocol != nil {
		req.Protocol = *ov.Protocol
	}
	if req.Protocol != ProtoTCP && req.Protocol != ProtoUDP {
		req.Protocol = ProtoTCP
	}

	return req
}
