// Package config persists user defaults for the bopi CLI in a YAML file
// under the platform configuration directory (~/.config/bopi/config.yaml
// on Linux). A missing file yields defaults, so configuration is entirely
// optional.
package config
