package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	settings, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if settings.Version != 1 {
		t.Errorf("Version = %d, want 1", settings.Version)
	}
	if settings.Device.Port != 80 {
		t.Errorf("Device.Port = %d, want 80", settings.Device.Port)
	}
	if settings.Device.RequestTimeout != 8 {
		t.Errorf("Device.RequestTimeout = %d, want 8", settings.Device.RequestTimeout)
	}
	if settings.MQTT.TopicPrefix != "bopi" {
		t.Errorf("MQTT.TopicPrefix = %q, want bopi", settings.MQTT.TopicPrefix)
	}
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	settings := NewSettings()
	settings.Device.Host = "192.168.1.26"
	settings.Device.Port = 3333
	settings.MQTT.Broker = "tcp://broker.lan:1883"
	settings.MQTT.Interval = 60

	if err := Save(settings); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if loaded.Device.Host != "192.168.1.26" {
		t.Errorf("Device.Host = %q, want 192.168.1.26", loaded.Device.Host)
	}
	if loaded.Device.Port != 3333 {
		t.Errorf("Device.Port = %d, want 3333", loaded.Device.Port)
	}
	if loaded.MQTT.Broker != "tcp://broker.lan:1883" {
		t.Errorf("MQTT.Broker = %q, want tcp://broker.lan:1883", loaded.MQTT.Broker)
	}
	if loaded.MQTT.Interval != 60 {
		t.Errorf("MQTT.Interval = %d, want 60", loaded.MQTT.Interval)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	configDir := filepath.Join(dir, "bopi")
	if err := os.MkdirAll(configDir, 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte("{not yaml"), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := Load()
	if err == nil {
		t.Fatal("Load() should fail on malformed YAML")
	}
	if !strings.Contains(err.Error(), "failed to parse config file") {
		t.Errorf("Load() error = %v, want parse failure", err)
	}
}

func TestGetConfigPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("XDG override not applicable on windows")
	}
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}
	if path != filepath.Join(dir, "bopi", "config.yaml") {
		t.Errorf("GetConfigPath() = %q", path)
	}
}
