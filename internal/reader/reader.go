// Package reader implements the uniform byte-cursor abstraction used by
// the JPEG and TIFF/Exif parsers: sequential reads, skips, absolute
// seeks, switchable endianness, and a sticky error model so callers can
// write linear parsing code without checking an error after every step.
package reader

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
)

// Kind identifies the taxonomy of fatal errors a Reader can raise.
// Non-fatal conditions never appear here; they go to Warnings instead.
type Kind int

const (
	KindNone Kind = iota
	KindIoError
	KindReadPastEof
	KindInvalidMarker
	KindExpectedMarker
	KindBadTiffHeader
	KindUnsupportedFeature
	KindHuffmanOverflow
	KindCorruptEntropyStream
	KindUnknownType
)

// Error is a sticky, typed error carrying the Kind so callers can branch
// on failure category without string matching.
type Error struct {
	Kind Kind
	msg  string
	Err  error
}

func (e *Error) Error() string { return e.msg }
func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, msg string, wrapped error) *Error {
	return &Error{Kind: kind, msg: msg, Err: wrapped}
}

// Reader is the interface implemented by FileReader and MemoryReader.
// Both share a sticky-error, switchable-endianness contract: once an
// error is set, further operations become no-ops instead of panicking
// or silently corrupting state.
type Reader interface {
	// Read returns the next n bytes, advancing the offset. On failure
	// it sets the sticky error and returns nil.
	Read(n int) []byte
	// Skip advances the offset by n bytes, bounded by Len().
	Skip(n int)
	// Seek jumps to an absolute offset.
	Seek(abs int64)
	// ReadUint reads n (<=8) bytes and interprets them as an unsigned
	// integer using the current endianness.
	ReadUint(n int) uint64
	// ReadMarker reads two big-endian bytes regardless of the current
	// endianness setting (JPEG markers are always big-endian).
	ReadMarker() (byte, byte)

	Offset() int64
	Len() int64
	SetOrder(order binary.ByteOrder) binary.ByteOrder
	Order() binary.ByteOrder

	// Err returns the first sticky fatal error, or nil.
	Err() error
	// Fail sets the sticky error if none is set yet; used by higher
	// layers (JPEG/TIFF parsers) to report format errors discovered
	// past the point a short Read would have caught them.
	Fail(kind Kind, msg string)

	// Warnf appends a non-fatal warning; it never sets Err.
	Warnf(format string, args ...interface{})
	Warnings() []string
}

// base holds the state shared by both Reader variants.
type base struct {
	offset  int64
	length  int64
	order   binary.ByteOrder
	err     *Error
	warn    []string
}

func (b *base) Offset() int64 { return b.offset }
func (b *base) Len() int64    { return b.length }

func (b *base) SetOrder(order binary.ByteOrder) binary.ByteOrder {
	prev := b.order
	b.order = order
	return prev
}

func (b *base) Order() binary.ByteOrder {
	if b.order == nil {
		return binary.BigEndian
	}
	return b.order
}

func (b *base) Err() error {
	if b.err == nil {
		return nil
	}
	return b.err
}

func (b *base) Fail(kind Kind, msg string) {
	if b.err != nil {
		return
	}
	b.err = newError(kind, msg, nil)
}

func (b *base) failWrap(kind Kind, msg string, wrapped error) {
	if b.err != nil {
		return
	}
	b.err = newError(kind, msg, wrapped)
}

func (b *base) Warnf(format string, args ...interface{}) {
	b.warn = append(b.warn, sprintf(format, args...))
}

func (b *base) Warnings() []string { return b.warn }

func sprintf(format string, args ...interface{}) string {
	return fmt.Sprintf(format, args...)
}

// decodeUint decodes up to 8 bytes per order; shared by both variants.
func decodeUint(order binary.ByteOrder, buf []byte) uint64 {
	var tmp [8]byte
	n := len(buf)
	if order == binary.BigEndian {
		copy(tmp[8-n:], buf)
		return binary.BigEndian.Uint64(tmp[:])
	}
	copy(tmp[:n], buf)
	return binary.LittleEndian.Uint64(tmp[:])
}

// MemoryReader holds the whole source in memory and indexes it directly;
// required for the entropy-coded-segment hot loop, where per-byte
// syscalls would dominate.
type MemoryReader struct {
	base
	data []byte
}

func NewMemoryReader(data []byte) *MemoryReader {
	r := &MemoryReader{data: data}
	r.length = int64(len(data))
	r.order = binary.BigEndian
	return r
}

func (r *MemoryReader) Read(n int) []byte {
	if r.err != nil || n < 0 {
		return nil
	}
	if r.offset+int64(n) > r.length {
		r.Fail(KindReadPastEof, "read past end of buffer")
		return nil
	}
	out := r.data[r.offset : r.offset+int64(n)]
	r.offset += int64(n)
	return out
}

func (r *MemoryReader) Skip(n int) {
	if r.err != nil {
		return
	}
	next := r.offset + int64(n)
	if next > r.length || next < 0 {
		r.Fail(KindReadPastEof, "skip past end of buffer")
		return
	}
	r.offset = next
}

func (r *MemoryReader) Seek(abs int64) {
	if r.err != nil {
		return
	}
	if abs < 0 || abs > r.length {
		r.Fail(KindIoError, "seek out of range")
		return
	}
	r.offset = abs
}

func (r *MemoryReader) ReadUint(n int) uint64 {
	buf := r.Read(n)
	if buf == nil {
		return 0
	}
	return decodeUint(r.Order(), buf)
}

func (r *MemoryReader) ReadMarker() (byte, byte) {
	buf := r.Read(2)
	if buf == nil {
		return 0, 0
	}
	return buf[0], buf[1]
}

// Bytes exposes the raw backing slice at the current offset without
// advancing it, for the ECS scanner's direct-pointer hot loop.
func (r *MemoryReader) Bytes() []byte {
	if r.err != nil {
		return nil
	}
	return r.data[r.offset:]
}

// All returns the entire backing buffer regardless of cursor position.
func (r *MemoryReader) All() []byte { return r.data }

// FileReader is a streamed, syscall-backed reader used when only
// headers/metadata are of interest and loading the whole file is
// wasteful.
type FileReader struct {
	base
	f *os.File
}

func NewFileReader(path string) (*FileReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "stat %s", path)
	}
	r := &FileReader{f: f}
	r.length = info.Size()
	r.order = binary.BigEndian
	return r, nil
}

func (r *FileReader) Close() error { return r.f.Close() }

func (r *FileReader) Read(n int) []byte {
	if r.err != nil || n < 0 {
		return nil
	}
	if r.offset+int64(n) > r.length {
		r.Fail(KindReadPastEof, "read past end of file")
		return nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.f, buf); err != nil {
		r.failWrap(KindIoError, "reading file", err)
		return nil
	}
	r.offset += int64(n)
	return buf
}

func (r *FileReader) Skip(n int) {
	if r.err != nil {
		return
	}
	r.Seek(r.offset + int64(n))
}

func (r *FileReader) Seek(abs int64) {
	if r.err != nil {
		return
	}
	if abs < 0 || abs > r.length {
		r.Fail(KindIoError, "seek out of range")
		return
	}
	if _, err := r.f.Seek(abs, io.SeekStart); err != nil {
		r.failWrap(KindIoError, "seeking file", err)
		return
	}
	r.offset = abs
}

func (r *FileReader) ReadUint(n int) uint64 {
	buf := r.Read(n)
	if buf == nil {
		return 0
	}
	return decodeUint(r.Order(), buf)
}

func (r *FileReader) ReadMarker() (byte, byte) {
	buf := r.Read(2)
	if buf == nil {
		return 0, 0
	}
	return buf[0], buf[1]
}

// IsKind reports whether err (or any error it wraps) carries kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
