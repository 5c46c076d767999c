// Package services implements the driving ports: the content aggregator
// that merges local drafts with remote issue-backed posts, and the
// credentials lifecycle. Services are constructed explicitly and receive
// their stores and the remote source by injection; nothing in here is a
// package-level singleton.
package services
