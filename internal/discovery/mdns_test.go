// ABOUTME: Tests for mDNS discovery
// ABOUTME: Tests manager defaults and service entry parsing
package discovery

import (
	"errors"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hashicorp/mdns"
)

func TestNewManager(t *testing.T) {
	mgr := NewManager(Config{ServiceName: "Test Player", Port: 8937})
	if mgr == nil {
		t.Fatal("expected manager to be created")
	}
	if mgr.config.Path != DefaultPath {
		t.Errorf("path = %q, want %q", mgr.config.Path, DefaultPath)
	}
	mgr.Stop()
}

func TestTXTRecords(t *testing.T) {
	txt := txtRecords("/notewave")
	if len(txt) != 2 || txt[0] != "path=/notewave" {
		t.Errorf("txtRecords = %v", txt)
	}
}

func TestEndpointFromEntry(t *testing.T) {
	tests := []struct {
		name  string
		entry *mdns.ServiceEntry
		want  *Endpoint
	}{
		{
			name: "full entry",
			entry: &mdns.ServiceEntry{
				Name:       "studio._notewave._tcp.local.",
				AddrV4:     net.IPv4(192, 168, 1, 20),
				Port:       8937,
				InfoFields: []string{"path=/notes", "version=1.2.3", "junk"},
			},
			want: &Endpoint{Name: "studio", Host: "192.168.1.20", Port: 8937, Path: "/notes", Version: "1.2.3"},
		},
		{
			name: "default path",
			entry: &mdns.ServiceEntry{
				Name:   "den._notewave._tcp.local.",
				AddrV4: net.IPv4(10, 0, 0, 2),
				Port:   9000,
			},
			want: &Endpoint{Name: "den", Host: "10.0.0.2", Port: 9000, Path: DefaultPath},
		},
		{
			name: "other service",
			entry: &mdns.ServiceEntry{
				Name:   "tv._airplay._tcp.local.",
				AddrV4: net.IPv4(10, 0, 0, 3),
			},
		},
		{
			name:  "no address",
			entry: &mdns.ServiceEntry{Name: "x._notewave._tcp.local."},
		},
		{name: "nil"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := endpointFromEntry(tt.entry)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("expected nil, got %+v", got)
				}
				return
			}
			if got == nil || *got != *tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestEndpointURL(t *testing.T) {
	ep := &Endpoint{Host: "192.168.1.20", Port: 8937, Path: "/notewave"}
	if got := ep.URL(); got != "ws://192.168.1.20:8937/notewave" {
		t.Errorf("URL() = %q", got)
	}
}

func TestBrowseWaitsAfterQueryError(t *testing.T) {
	mgr := NewManager(Config{})
	var calls atomic.Int32
	mgr.query = func(*mdns.QueryParam) error {
		calls.Add(1)
		return errors.New("no multicast interface")
	}
	mgr.retryDelay = 50 * time.Millisecond

	mgr.Browse()
	time.Sleep(120 * time.Millisecond)
	mgr.Stop()

	if n := calls.Load(); n < 1 || n > 4 {
		t.Errorf("query ran %d times in 120ms, want a paced retry", n)
	}
}
