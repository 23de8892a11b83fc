// Package fs provides filesystem abstractions for testability and fault injection.
//
// The package defines two key interfaces:
//
//   - [File]: Represents an open file with read/write/sync capabilities
//   - [FileSystem]: Abstracts filesystem operations (open, remove, rename, etc.)
//
// # Implementations
//
//   - [LocalFS]: Production implementation using standard os package
//   - [FaultyFS]: Test utility for fault injection (simulate I/O errors)
//
// Production code should use fs.Default (which is [LocalFS]). All artifact
// writes go through [WriteFileAtomic] so that a crash mid-write never leaves
// a truncated problem, embedding, or sample-set file at its final location.
//
// # Design Notes
//
// This package intentionally does NOT include context.Context parameters.
// Filesystem operations are typically fast (microseconds for local NVMe) and
// non-interruptible at the syscall level. Cancellation is handled one level
// up, in the pathindex backends.
package fs
