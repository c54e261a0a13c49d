// Package store persists saved packets in a YAML file.
//
// The file looks like this:
//
//	packets:
//	  - name: ping
//	    toIP: 10.0.0.1
//	    port: 7
//	    tcpOrUdp: UDP
//	    hexString: FF
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"pktsend/pkg/codec"
	"pktsend/pkg/packet"

	"gopkg.in/yaml.v3"
)

// FileName is the name of the saved-packet file inside the config directory.
const FileName = "packets.yaml"

type record struct {
	Name      string `yaml:"name"`
	ToIP      string `yaml:"toIP"`
	Port      int    `yaml:"port"`
	TCPOrUDP  string `yaml:"tcpOrUdp"`
	HexString string `yaml:"hexString"`
}

type document struct {
	Packets []record `yaml:"packets"`
}

// File is a saved-packet store backed by a single YAML file.
// A missing file is an empty store.
type File struct {
	path string
	mu   sync.Mutex
}

// NewFile returns a store reading and writing path.
func NewFile(path string) *File {
	return &File{path: path}
}

// DefaultPath returns the saved-packet file in the user's config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("os.UserConfigDir(): %w", err)
	}
	return filepath.Join(dir, "pktsend", FileName), nil
}

// Path returns the file backing the store.
func (f *File) Path() string {
	return f.path
}

// Lookup returns the packet called name, or a Packet with an empty Name
// if there is none.
func (f *File) Lookup(name string) (packet.Packet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		return packet.Packet{}, err
	}

	for _, r := range doc.Packets {
		if r.Name == name {
			return r.packet(), nil
		}
	}
	return packet.Packet{}, nil
}

// Save stores p, replacing any packet with the same name. The payload is
// canonicalized to uppercase hex before writing.
func (f *File) Save(p packet.Packet) error {
	if p.Name == "" {
		return errors.New("saved packets need a name")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		return err
	}

	r := newRecord(p)
	replaced := false
	for i := range doc.Packets {
		if doc.Packets[i].Name == p.Name {
			doc.Packets[i] = r
			replaced = true
			break
		}
	}
	if !replaced {
		doc.Packets = append(doc.Packets, r)
	}

	return f.write(doc)
}

// Delete removes the packet called name. It reports whether there was one.
func (f *File) Delete(name string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		return false, err
	}

	for i := range doc.Packets {
		if doc.Packets[i].Name == name {
			doc.Packets = append(doc.Packets[:i], doc.Packets[i+1:]...)
			return true, f.write(doc)
		}
	}
	return false, nil
}

// List returns all saved packets in file order.
func (f *File) List() ([]packet.Packet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		return nil, err
	}

	packets := make([]packet.Packet, 0, len(doc.Packets))
	for _, r := range doc.Packets {
		packets = append(packets, r.packet())
	}
	return packets, nil
}

func (f *File) load() (document, error) {
	var doc document

	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return doc, fmt.Errorf("reading %s: %w", f.path, err)
	}

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("parsing %s: %w", f.path, err)
	}
	return doc, nil
}

func (f *File) write(doc document) error {
	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("yaml.Marshal(): %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", f.path, err)
	}

	// write next to the target and rename so readers never see half a file
	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".packets-*.yaml")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp.Name(), err)
	}

	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("renaming to %s: %w", f.path, err)
	}
	return nil
}

func newRecord(p packet.Packet) record {
	proto := p.Protocol
	if proto != packet.ProtoUDP {
		proto = packet.ProtoTCP
	}
	return record{
		Name:      p.Name,
		ToIP:      p.ToIP,
		Port:      p.Port,
		TCPOrUDP:  proto.String(),
		HexString: codec.BytesToHex(codec.HexToBytes(p.HexString)),
	}
}

func (r record) packet() packet.Packet {
	return packet.Packet{
		Name:      r.Name,
		ToIP:      r.ToIP,
		Port:      r.Port,
		Protocol:  packet.ParseProtocol(r.TCPOrUDP),
		HexString: codec.BytesToHex(codec.HexToBytes(r.HexString)),
	}
}
