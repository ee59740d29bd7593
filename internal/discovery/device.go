package discovery

import (
	"fmt"
	"time"
)

// Device represents a discovered BoPi box on the network
type Device struct {
	// Name is the box identifier taken from the hostname
	// (e.g., "pool" for "bopi-pool.local", empty for plain "bopi.local")
	Name string

	// Hostname is the mDNS hostname (e.g., "bopi-pool.local")
	Hostname string

	// IP is the IPv4 address (e.g., "192.168.1.26")
	IP string

	// Port is the HTTP port (typically 80)
	Port int

	// Metadata contains additional mDNS TXT record data
	Metadata map[string]string

	// DiscoveredAt is when the box was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the box
func (d *Device) String() string {
	if d.Name == "" {
		return fmt.Sprintf("BoPi box (%s) at %s:%d", d.Hostname, d.IP, d.Port)
	}
	return fmt.Sprintf("BoPi box %s (%s) at %s:%d", d.Name, d.Hostname, d.IP, d.Port)
}

// BaseURL returns the HTTP base URL for the box
func (d *Device) BaseURL() string {
	return fmt.Sprintf("http://%s:%d", d.IP, d.Port)
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (d *Device) GetMetadata(key string) string {
	if d.Metadata == nil {
		return ""
	}
	return d.Metadata[key]
}
