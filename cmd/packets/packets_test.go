package packets

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"pktsend/pkg/config"
	"pktsend/pkg/packet"
	"pktsend/pkg/store"
)

func seededStore(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), store.FileName)
	st := store.NewFile(path)
	for _, p := range []packet.Packet{
		{Name: "ping", ToIP: "10.0.0.1", Port: 7, Protocol: packet.ProtoUDP, HexString: "FF"},
		{Name: "http", ToIP: "::1", Port: 80, Protocol: packet.ProtoTCP, HexString: "474554"},
	} {
		if err := st.Save(p); err != nil {
			t.Fatalf("Save(%s) error = %v", p.Name, err)
		}
	}
	return path
}

func TestGetCommand(t *testing.T) {
	t.Parallel()

	cmd := GetCommand(nil)
	if cmd.Name != "packets" {
		t.Errorf("command name = %q; want %q", cmd.Name, "packets")
	}

	names := map[string]bool{}
	for _, sub := range cmd.Commands {
		names[sub.Name] = true
		if sub.Action == nil {
			t.Errorf("subcommand %q has no action", sub.Name)
		}
	}
	for _, want := range []string{"list", "delete"} {
		if !names[want] {
			t.Errorf("missing subcommand %q", want)
		}
	}
}

func TestList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		seed      bool
		wantLines []string
	}{
		{"empty store", false, nil},
		{"two packets", true, []string{"ping", "UDP", "10.0.0.1:7", "FF", "http", "TCP", "[::1]:80", "474554"}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), store.FileName)
			if tc.seed {
				path = seededStore(t)
			}

			var out bytes.Buffer
			if err := List(store.NewFile(path), &out); err != nil {
				t.Fatalf("List() error = %v", err)
			}

			if len(tc.wantLines) == 0 && out.Len() != 0 {
				t.Errorf("output = %q, want nothing", out.String())
			}
			for _, want := range tc.wantLines {
				if !strings.Contains(out.String(), want) {
					t.Errorf("output = %q, want it to contain %q", out.String(), want)
				}
			}
		})
	}
}

func TestDelete(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		target   string
		wantErr  bool
		wantLeft int
	}{
		{"existing packet", "ping", false, 1},
		{"missing packet", "nope", true, 2},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			st := store.NewFile(seededStore(t))
			err := Delete(st, tc.target)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Delete(%q) error = %v, wantErr %v", tc.target, err, tc.wantErr)
			}
			var lookupErr *packet.LookupError
			if err != nil && !errors.As(err, &lookupErr) {
				t.Errorf("Delete() error = %v, want *packet.LookupError", err)
			}

			left, err := st.List()
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if len(left) != tc.wantLeft {
				t.Errorf("%d packets left, want %d", len(left), tc.wantLeft)
			}
		})
	}
}

func TestCommand_Run(t *testing.T) {
	t.Parallel()

	path := seededStore(t)
	var stdout bytes.Buffer
	deps := &config.Dependencies{Stdout: func() io.Writer { return &stdout }}

	cmd := GetCommand(deps)
	if err := cmd.Run(context.Background(), []string{"packets", "--packets", path, "delete", "http"}); err != nil {
		t.Fatalf("delete error = %v", err)
	}

	cmd = GetCommand(deps)
	if err := cmd.Run(context.Background(), []string{"packets", "--packets", path, "list"}); err != nil {
		t.Fatalf("list error = %v", err)
	}
	if !strings.Contains(stdout.String(), "ping") || strings.Contains(stdout.String(), "http") {
		t.Errorf("list output = %q, want only ping", stdout.String())
	}

	cmd = GetCommand(deps)
	if err := cmd.Run(context.Background(), []string{"packets", "--packets", path, "delete"}); err == nil {
		t.Error("delete without a name should fail")
	}
}
