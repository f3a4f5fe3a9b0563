// Package domain defines the core business entities for chatvault.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Conversation: An exported chat session and its node graph
//   - Transcript: The linear, chronological view of a conversation
//   - Document: A rendered Markdown document bound for disk
//   - Header: The front-matter record that drives sync decisions
//   - SyncResult: The outcome of synchronising one document
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
