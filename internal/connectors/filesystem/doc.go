// Package filesystem holds the adapters that touch the local disk: the
// document index builder, the FileStore used by the sync engine, and the
// archive watcher behind watch mode.
package filesystem
