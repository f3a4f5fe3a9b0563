// Package connectors holds the adapters that bind the importer to a concrete
// storage backend. The filesystem subpackage is the only backend: it builds
// the document index, reads and writes notes, and watches the archive.
package connectors
