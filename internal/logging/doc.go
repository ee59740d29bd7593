// Package logging provides structured logging for the bopi tooling.
//
// Logging is silent by default so CLI output stays clean. Set the
// BOPI_LOG_LEVEL environment variable (debug, info, warn, error) to get
// zap console output on stdout. The core HTTP client never logs; only
// the CLI, the discovery scanner, and the MQTT publisher do.
package logging
