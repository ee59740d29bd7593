package discovery

import (
	"testing"
)

func TestDevice_String(t *testing.T) {
	tests := []struct {
		name     string
		device   *Device
		expected string
	}{
		{
			name: "named box",
			device: &Device{
				Name:     "pool",
				Hostname: "bopi-pool.local",
				IP:       "192.168.1.26",
				Port:     80,
			},
			expected: "BoPi box pool (bopi-pool.local) at 192.168.1.26:80",
		},
		{
			name: "unnamed box",
			device: &Device{
				Hostname: "bopi.local",
				IP:       "192.168.1.26",
				Port:     80,
			},
			expected: "BoPi box (bopi.local) at 192.168.1.26:80",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.device.String(); got != tt.expected {
				t.Errorf("Device.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestDevice_BaseURL(t *testing.T) {
	tests := []struct {
		name     string
		device   *Device
		expected string
	}{
		{
			name:     "standard HTTP port",
			device:   &Device{IP: "192.168.1.26", Port: 80},
			expected: "http://192.168.1.26:80",
		},
		{
			name:     "custom port",
			device:   &Device{IP: "10.0.0.5", Port: 8080},
			expected: "http://10.0.0.5:8080",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.device.BaseURL(); got != tt.expected {
				t.Errorf("Device.BaseURL() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestDevice_GetMetadata(t *testing.T) {
	device := &Device{
		Metadata: map[string]string{
			"path":    "/",
			"version": "2",
		},
	}

	tests := []struct {
		name     string
		key      string
		expected string
	}{
		{name: "existing key", key: "path", expected: "/"},
		{name: "another existing key", key: "version", expected: "2"},
		{name: "non-existent key", key: "missing", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := device.GetMetadata(tt.key); got != tt.expected {
				t.Errorf("GetMetadata(%q) = %v, want %v", tt.key, got, tt.expected)
			}
		})
	}

	var empty Device
	if got := empty.GetMetadata("path"); got != "" {
		t.Errorf("GetMetadata on nil metadata = %v, want empty string", got)
	}
}

func TestHostnamePattern(t *testing.T) {
	tests := []struct {
		hostname string
		match    bool
		name     string
	}{
		{"bopi.local", true, ""},
		{"bopi.local.", true, ""},
		{"BoPi.local", true, ""},
		{"bopi-pool.local", true, "pool"},
		{"bopi-spa2.local.", true, "spa2"},
		{"evalve315260240.local", false, ""},
		{"printer.local", false, ""},
		{"mybopi.local", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.hostname, func(t *testing.T) {
			matches := hostnamePattern.FindStringSubmatch(tt.hostname)
			if (matches != nil) != tt.match {
				t.Fatalf("match(%q) = %v, want %v", tt.hostname, matches != nil, tt.match)
			}
			if tt.match && matches[1] != tt.name {
				t.Errorf("name(%q) = %q, want %q", tt.hostname, matches[1], tt.name)
			}
		})
	}
}
