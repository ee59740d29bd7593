package bopi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// SensorsPath is the endpoint returning the full sensor state of the box
const SensorsPath = "/allsensorsv2"

// Permitted domains for the bounded sensor fields
const (
	PhMin = 0.0
	PhMax = 14.0

	RedoxMin = 0.0
	RedoxMax = 1000.0

	HumidityMin = 0.0
	HumidityMax = 100.0
)

// SensorsState is the validated, normalized sensor state of a BoPi box.
//
// The temperature probes use the disconnected-sensor sentinel, so their
// values are optional: nil means the probe is unplugged, not a reading of
// zero.
type SensorsState struct {
	// PhValue is the water pH reading (0-14)
	PhValue float64 `json:"phvalue"`

	// RedoxValue is the redox potential in mV (0-1000 for this box)
	RedoxValue float64 `json:"redoxvalue"`

	// WaterTemperature is the water probe reading in °C, nil when unplugged
	WaterTemperature *float64 `json:"watertemperature,omitempty"`

	// BoxTemperature is the in-box probe reading in °C, nil when unplugged
	BoxTemperature *float64 `json:"boxtemperature,omitempty"`

	// BoxHumidity is the in-box relative humidity percentage (0-100)
	BoxHumidity float64 `json:"boxhumidity"`

	// Uptime is how long the box has been running, in seconds
	Uptime int64 `json:"uptime"`
}

// Summary returns a one-line summary of the sensor state
func (s *SensorsState) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "pH %.2f, redox %.0f mV, humidity %.0f%%", s.PhValue, s.RedoxValue, s.BoxHumidity)
	if s.WaterTemperature != nil {
		fmt.Fprintf(&b, ", water %.1f°C", *s.WaterTemperature)
	}
	if s.BoxTemperature != nil {
		fmt.Fprintf(&b, ", box %.1f°C", *s.BoxTemperature)
	}
	return b.String()
}

// GetSensorsState fetches the sensor endpoint and maps the payload into a
// validated SensorsState. Every field is required: absence fails with a
// missing-field error naming the field, an out-of-domain value fails with
// a validation error. Either the full state or one error comes back.
func (c *Client) GetSensorsState(ctx context.Context) (*SensorsState, error) {
	payload, err := c.Request(ctx, http.MethodGet, SensorsPath, nil, nil)
	if err != nil {
		return nil, err
	}

	ph, err := numericField(payload, "phvalue")
	if err != nil {
		return nil, err
	}
	if err := RequireRange("phvalue", ph, PhMin, PhMax); err != nil {
		return nil, err
	}

	redox, err := numericField(payload, "redoxvalue")
	if err != nil {
		return nil, err
	}
	if err := RequireRange("redoxvalue", redox, RedoxMin, RedoxMax); err != nil {
		return nil, err
	}

	humidity, err := numericField(payload, "boxhumidity")
	if err != nil {
		return nil, err
	}
	if err := RequireRange("boxhumidity", humidity, HumidityMin, HumidityMax); err != nil {
		return nil, err
	}

	uptime, err := numericField(payload, "uptime")
	if err != nil {
		return nil, err
	}
	if err := RequireNonNegative("uptime", uptime); err != nil {
		return nil, err
	}

	waterTemp, err := numericField(payload, "watertemperature")
	if err != nil {
		return nil, err
	}

	boxTemp, err := numericField(payload, "boxtemperature")
	if err != nil {
		return nil, err
	}

	return &SensorsState{
		PhValue:          ph,
		RedoxValue:       redox,
		WaterTemperature: NormalizeSensor(waterTemp),
		BoxTemperature:   NormalizeSensor(boxTemp),
		BoxHumidity:      humidity,
		Uptime:           int64(uptime),
	}, nil
}

// numericField extracts a required numeric field from a generic payload
func numericField(payload map[string]any, field string) (float64, error) {
	raw, ok := payload[field]
	if !ok {
		return 0, NewMissingFieldError(field)
	}

	switch v := raw.(type) {
	case float64:
		return v, nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, NewValidationError(field, fmt.Sprintf("%s is not a number: %v", field, raw))
		}
		return f, nil
	default:
		return 0, NewValidationError(field, fmt.Sprintf("%s is not a number: %v", field, raw))
	}
}
