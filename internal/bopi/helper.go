package bopi

import "fmt"

// DisconnectedSensorValue is reported by the box firmware when a probe is
// unplugged. It must not be confused with a legitimate zero or negative
// reading; keep the constant isolated behind NormalizeSensor.
const DisconnectedSensorValue = -127

// NormalizeSensor converts a raw sensor reading into an optional value.
// The disconnected-sensor sentinel becomes absence (nil); every other
// value, zero and negative readings included, passes through unchanged.
func NormalizeSensor(value float64) *float64 {
	if value == DisconnectedSensorValue {
		return nil
	}
	v := value
	return &v
}

// RequireNonNegative validates that a field value is >= 0. Zero is valid.
func RequireNonNegative(field string, value float64) error {
	if value < 0 {
		return NewValidationError(field, fmt.Sprintf("%s must be non-negative, got %v", field, value))
	}
	return nil
}

// RequireRange validates that a field value lies within [min, max].
// Both boundaries are inclusive.
func RequireRange(field string, value, min, max float64) error {
	if value < min || value > max {
		return NewValidationError(field, fmt.Sprintf("%s must be between %v and %v, got %v", field, min, max, value))
	}
	return nil
}
