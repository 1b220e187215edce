// Package io provides host I/O channel adapters for the intcode machine.
// A channel is the synchronous boundary the INPUT and OUTPUT instructions
// cross: one signed decimal integer per operation. Console adapts the
// process's standard streams; Queue is a deterministic scripted adapter
// for tests and search drivers.
package io

// Channel defines the interface for host I/O adapters.
type Channel interface {
	// Rewind resets the channel to its initial state for a machine rerun.
	Rewind()
	// ReadInt produces one integer for an INPUT instruction.
	ReadInt() (int32, error)
	// WriteInt consumes one integer from an OUTPUT instruction.
	WriteInt(value int32) error
}
