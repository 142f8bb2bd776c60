// ABOUTME: mDNS service discovery for notewave players
// ABOUTME: Advertises the remote note endpoint and browses for other players
package discovery

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/Sendspin/notewave/internal/version"
	"github.com/hashicorp/mdns"
	"github.com/rs/zerolog"
)

const (
	// ServiceType is the mDNS service players advertise
	ServiceType = "_notewave._tcp"
	// DefaultPath is the websocket path advertised in TXT records
	DefaultPath = "/notewave"

	browseTimeout = 3 * time.Second
)

// Config holds discovery configuration
type Config struct {
	ServiceName string
	Port        int
	Path        string
	Logger      zerolog.Logger
}

// Manager handles mDNS operations
type Manager struct {
	config    Config
	log       zerolog.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	endpoints chan *Endpoint

	query      func(*mdns.QueryParam) error
	retryDelay time.Duration
}

// Endpoint describes a discovered player
type Endpoint struct {
	Name    string
	Host    string
	Port    int
	Path    string
	Version string
}

// URL returns the websocket URL of the endpoint
func (e *Endpoint) URL() string {
	return fmt.Sprintf("ws://%s%s", net.JoinHostPort(e.Host, fmt.Sprint(e.Port)), e.Path)
}

// NewManager creates a discovery manager
func NewManager(config Config) *Manager {
	if config.Path == "" {
		config.Path = DefaultPath
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &Manager{
		config:     config,
		log:        config.Logger.With().Str("component", "discovery").Logger(),
		ctx:        ctx,
		cancel:     cancel,
		endpoints:  make(chan *Endpoint, 10),
		query:      mdns.Query,
		retryDelay: browseTimeout,
	}
}

// Advertise announces this player until Stop is called
func (m *Manager) Advertise() error {
	ips, err := getLocalIPs()
	if err != nil {
		return fmt.Errorf("failed to get local IPs: %w", err)
	}

	service, err := mdns.NewMDNSService(
		m.config.ServiceName,
		ServiceType,
		"",
		"",
		m.config.Port,
		ips,
		txtRecords(m.config.Path),
	)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return fmt.Errorf("failed to create mdns server: %w", err)
	}

	m.log.Info().
		Str("name", m.config.ServiceName).
		Int("port", m.config.Port).
		Str("type", ServiceType).
		Msg("advertising mDNS service")

	go func() {
		<-m.ctx.Done()
		server.Shutdown()
	}()

	return nil
}

// Browse searches for players in the background
func (m *Manager) Browse() {
	go m.browseLoop()
}

func (m *Manager) browseLoop() {
	for {
		select {
		case <-m.ctx.Done():
			return
		default:
		}

		entries := make(chan *mdns.ServiceEntry, 10)
		done := make(chan struct{})

		go func() {
			defer close(done)
			for entry := range entries {
				ep := endpointFromEntry(entry)
				if ep == nil {
					continue
				}
				m.log.Debug().Str("name", ep.Name).Str("url", ep.URL()).Msg("discovered player")

				select {
				case m.endpoints <- ep:
				case <-m.ctx.Done():
				}
			}
		}()

		params := &mdns.QueryParam{
			Service: ServiceType,
			Domain:  "local",
			Timeout: browseTimeout,
			Entries: entries,
		}

		err := m.query(params)
		close(entries)
		<-done
		if err != nil {
			m.log.Warn().Err(err).Msg("mDNS query failed")
			select {
			case <-time.After(m.retryDelay):
			case <-m.ctx.Done():
				return
			}
		}
	}
}

// Endpoints returns the channel of discovered players
func (m *Manager) Endpoints() <-chan *Endpoint {
	return m.endpoints
}

// Stop stops advertising and browsing
func (m *Manager) Stop() {
	m.cancel()
}

func txtRecords(path string) []string {
	return []string{"path=" + path, "version=" + version.Version}
}

// endpointFromEntry converts an mDNS entry; entries for other services
// or without an IPv4 address are skipped
func endpointFromEntry(entry *mdns.ServiceEntry) *Endpoint {
	if entry == nil || entry.AddrV4 == nil || !strings.Contains(entry.Name, ServiceType) {
		return nil
	}

	ep := &Endpoint{
		Name: strings.TrimSuffix(entry.Name, "."+ServiceType+".local."),
		Host: entry.AddrV4.String(),
		Port: entry.Port,
		Path: DefaultPath,
	}
	for _, field := range entry.InfoFields {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			continue
		}
		switch key {
		case "path":
			ep.Path = value
		case "version":
			ep.Version = value
		}
	}
	return ep
}

// getLocalIPs returns local IP addresses
func getLocalIPs() ([]net.IP, error) {
	var ips []net.IP

	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			if ipnet, ok := addr.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
				if ipnet.IP.To4() != nil {
					ips = append(ips, ipnet.IP)
				}
			}
		}
	}

	return ips, nil
}
