// Package github implements the remote content source on top of the GitHub
// REST API: issues stand in for published posts, issue comments for
// discussion threads. It owns all network I/O against the content
// repository and knows nothing about merge or sort policy.
package github
