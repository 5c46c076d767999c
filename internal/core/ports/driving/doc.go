// Package driving defines the inbound ports of the hexagon: the use-case
// interfaces the CLI (or any other surface) calls into.
package driving
