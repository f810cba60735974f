package syncstream

import "errors"

// Markers written before the values of each stage.
const (
	MarkerBalance              uint8 = 0x10
	MarkerProcessRequests      uint8 = 0x11
	MarkerHandleActiveSupplies uint8 = 0x12
	MarkerCheckImports         uint8 = 0x13
)

// ErrClosed indicates a write after Close.
var ErrClosed = errors.New("syncstream: sink is closed")

// Stream receives typed values. Writes never fail; sinks that can fail keep
// the first error and report it from Close or Err.
type Stream interface {
	Uint8(v uint8)
	Uint32(v uint32)
	Int64(v int64)
}

type discard struct{}

func (discard) Uint8(uint8)   {}
func (discard) Uint32(uint32) {}
func (discard) Int64(int64)   {}

// Discard is a Stream that drops every value.
var Discard Stream = discard{}
