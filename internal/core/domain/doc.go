// Package domain defines the core business entities for inkpost.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ContentItem: A normalised note or blog post, local or remote
//   - Comment: A discussion entry on a published post
//   - Credentials: Remote repository coordinates plus optional token
//   - YearBucket: A year-grouped slice of a merged listing
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
