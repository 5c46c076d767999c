// Package driven defines the outbound ports of the hexagon: interfaces the
// core services depend on and infrastructure adapters implement.
//
//   - ContentSource: the remote issue-backed content repository
//   - DraftStore: local persistence for unpublished drafts
//   - CredentialsStore: persistence for the credential record
package driven
