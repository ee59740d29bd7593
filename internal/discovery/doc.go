// Package discovery finds BoPi boxes on the local network using mDNS.
//
// The box advertises its HTTP API as a "_http._tcp" service with a
// hostname of the form "bopi.local" or "bopi-<name>.local". The Scanner
// browses for those services and returns Device entries carrying the
// resolved address, port, and TXT record metadata.
package discovery
