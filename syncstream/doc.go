// Package syncstream is a write-only side channel for divergence detection.
//
// Every instance of a networked session feeds the same command sequence to
// its own simulation. The economy appends typed marker bytes and the values it
// decided on (serials, costs) to a Stream at fixed points of the balancing
// cycle. Comparing stream digests across machines reveals the first pass at
// which two instances disagreed.
//
// Sinks:
//
//   - Digest hashes everything with SHA-256; Sum returns the hex digest.
//   - FileSink writes a zstd-compressed file headed by a run id.
//   - Tee duplicates writes to several sinks.
//   - Discard drops everything.
//
// Encoding is fixed-width big-endian, so identical call sequences produce
// identical bytes on every platform.
package syncstream
