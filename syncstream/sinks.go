package syncstream

import (
	"bufio"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
)

// encoder turns typed values into big-endian bytes on w.
type encoder struct {
	w   io.Writer
	buf [8]byte
	err error
}

func (e *encoder) write(b []byte) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.Write(b)
}

func (e *encoder) Uint8(v uint8) {
	e.buf[0] = v
	e.write(e.buf[:1])
}

func (e *encoder) Uint32(v uint32) {
	binary.BigEndian.PutUint32(e.buf[:4], v)
	e.write(e.buf[:4])
}

func (e *encoder) Int64(v int64) {
	binary.BigEndian.PutUint64(e.buf[:8], uint64(v))
	e.write(e.buf[:8])
}

// Digest hashes the stream with SHA-256.
type Digest struct {
	h hash.Hash
	encoder
}

// NewDigest returns an empty digest.
func NewDigest() *Digest {
	h := sha256.New()

	return &Digest{h: h, encoder: encoder{w: h}}
}

// Write feeds raw stream bytes, as read back with ReadFile.
func (d *Digest) Write(p []byte) (int, error) { return d.h.Write(p) }

// Sum returns the hex digest of everything written so far.
func (d *Digest) Sum() string { return hex.EncodeToString(d.h.Sum(nil)) }

// FileSink writes a zstd-compressed stream to a file. The first 16 bytes of
// the decompressed stream are the run id.
type FileSink struct {
	mu  sync.Mutex
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
	e   encoder
	run uuid.UUID
}

// NewFileSink creates path and writes the run header.
func NewFileSink(path string, run uuid.UUID) (*FileSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("syncstream: create %s: %w", path, err)
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()

		return nil, fmt.Errorf("syncstream: zstd: %w", err)
	}
	s := &FileSink{f: f, enc: enc, run: run}
	s.w = bufio.NewWriterSize(enc, 64*1024)
	s.e.w = s.w
	s.e.write(run[:])

	return s, nil
}

// Run returns the run id in the header.
func (s *FileSink) Run() uuid.UUID { return s.run }

func (s *FileSink) Uint8(v uint8) {
	s.mu.Lock()
	s.e.Uint8(v)
	s.mu.Unlock()
}

func (s *FileSink) Uint32(v uint32) {
	s.mu.Lock()
	s.e.Uint32(v)
	s.mu.Unlock()
}

func (s *FileSink) Int64(v int64) {
	s.mu.Lock()
	s.e.Int64(v)
	s.mu.Unlock()
}

// Err returns the first write error, if any.
func (s *FileSink) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.e.err
}

// Close flushes and closes the file. Later writes are recorded as ErrClosed.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return ErrClosed
	}
	err := s.e.err
	if ferr := s.w.Flush(); err == nil {
		err = ferr
	}
	if cerr := s.enc.Close(); err == nil {
		err = cerr
	}
	if cerr := s.f.Close(); err == nil {
		err = cerr
	}
	s.f = nil
	if s.e.err == nil {
		s.e.err = ErrClosed
	}

	return err
}

// ReadFile decompresses a FileSink file and returns its run id and payload.
func ReadFile(path string) (uuid.UUID, []byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return uuid.Nil, nil, err
	}
	defer f.Close()
	dec, err := zstd.NewReader(f)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("syncstream: zstd: %w", err)
	}
	defer dec.Close()
	raw, err := io.ReadAll(dec)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("syncstream: read %s: %w", path, err)
	}
	if len(raw) < 16 {
		return uuid.Nil, nil, fmt.Errorf("syncstream: %s: short header", path)
	}
	run, err := uuid.FromBytes(raw[:16])
	if err != nil {
		return uuid.Nil, nil, err
	}

	return run, raw[16:], nil
}

type tee []Stream

func (t tee) Uint8(v uint8) {
	for _, s := range t {
		s.Uint8(v)
	}
}

func (t tee) Uint32(v uint32) {
	for _, s := range t {
		s.Uint32(v)
	}
}

func (t tee) Int64(v int64) {
	for _, s := range t {
		s.Int64(v)
	}
}

// Tee returns a Stream writing to every non-nil stream in order.
func Tee(streams ...Stream) Stream {
	var out tee
	for _, s := range streams {
		if s != nil {
			out = append(out, s)
		}
	}

	return out
}
