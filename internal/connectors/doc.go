// Package connectors holds clients for remote systems. The github connector
// is the only one today; it adapts the GitHub REST API to the content
// source port.
package connectors
