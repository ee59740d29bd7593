package config

// Settings represents the entire user configuration file.
// It stores CLI defaults so the device address and publisher settings do
// not have to be repeated on every invocation.
type Settings struct {
	Version   int                `yaml:"version"`
	Device    *DeviceSettings    `yaml:"device,omitempty"`
	Discovery *DiscoverySettings `yaml:"discovery,omitempty"`
	MQTT      *MQTTSettings      `yaml:"mqtt,omitempty"`
}

// DeviceSettings holds the default BoPi box to talk to.
type DeviceSettings struct {
	Host           string `yaml:"host,omitempty"`            // Hostname or IP of the box
	Port           int    `yaml:"port,omitempty"`            // HTTP port (default 80)
	RequestTimeout int    `yaml:"request_timeout,omitempty"` // Per-request timeout in seconds
}

// DiscoverySettings holds mDNS discovery preferences.
type DiscoverySettings struct {
	Timeout int `yaml:"timeout,omitempty"` // Scan timeout in seconds
}

// MQTTSettings holds defaults for the sensor publisher.
type MQTTSettings struct {
	Broker      string `yaml:"broker,omitempty"`       // Broker URL (e.g., "tcp://localhost:1883")
	ClientID    string `yaml:"client_id,omitempty"`    // MQTT client identifier
	TopicPrefix string `yaml:"topic_prefix,omitempty"` // Topic prefix (default "bopi")
	Interval    int    `yaml:"interval,omitempty"`     // Poll interval in seconds
}

// NewSettings creates Settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version: 1,
		Device: &DeviceSettings{
			Port:           80,
			RequestTimeout: 8,
		},
		Discovery: &DiscoverySettings{
			Timeout: 10,
		},
		MQTT: &MQTTSettings{
			Broker:      "tcp://localhost:1883",
			ClientID:    "bopi-publisher",
			TopicPrefix: "bopi",
			Interval:    30,
		},
	}
}
