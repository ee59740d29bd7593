// Package publisher bridges a BoPi box to an MQTT broker.
//
// It polls the sensor endpoint on a fixed interval and republishes the
// readings: the full validated state as JSON on <prefix>/sensors, and
// each metric as a bare number on <prefix>/sensors/<field>. Polling and
// retrying live here, not in the HTTP client, which stays a
// single-exchange transport.
package publisher
