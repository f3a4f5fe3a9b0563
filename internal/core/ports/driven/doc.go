// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - ArchiveReader: Decodes the exported conversation archive
//   - FrontMatter: Serialises and parses document headers
//   - FileStore: Reads, writes and moves documents on the target filesystem
//   - DocumentIndexer: Builds the identifier -> path snapshot
//   - JournalStore: Records sync decisions (in-memory or SQLite)
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
