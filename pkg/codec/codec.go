// Package codec implements the one canonical byte encoding used both for
// content hashing and for on-disk/wire persistence: little-endian
// integers, length-prefixed strings and byte slices, and count-prefixed
// sequences. Callers are responsible for handing sequences to Writer in
// a fixed, already-deterministic order — the encoding itself does no
// sorting.
package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// Writer accumulates canonical bytes.
type Writer struct {
	buf bytes.Buffer
}

// Bytes returns the accumulated canonical byte sequence.
func (w *Writer) Bytes() []byte { return w.buf.Bytes() }

// PutBytes appends a uint32 length prefix followed by b.
func (w *Writer) PutBytes(b []byte) {
	var n [4]byte
	binary.LittleEndian.PutUint32(n[:], uint32(len(b)))
	w.buf.Write(n[:])
	w.buf.Write(b)
}

// PutString appends s as length-prefixed bytes.
func (w *Writer) PutString(s string) { w.PutBytes([]byte(s)) }

// PutUint32 appends a little-endian uint32.
func (w *Writer) PutUint32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

// PutInt64 appends a little-endian int64.
func (w *Writer) PutInt64(v int64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(v))
	w.buf.Write(b[:])
}

// PutByte appends a single byte, typically a variant tag.
func (w *Writer) PutByte(b byte) { w.buf.WriteByte(b) }

// Reader consumes canonical bytes produced by Writer.
type Reader struct {
	r *bytes.Reader
}

// NewReader wraps data for canonical decoding.
func NewReader(data []byte) *Reader {
	return &Reader{r: bytes.NewReader(data)}
}

// GetBytes reads a length-prefixed byte slice.
func (r *Reader) GetBytes() ([]byte, error) {
	var n [4]byte
	if _, err := io.ReadFull(r.r, n[:]); err != nil {
		return nil, fmt.Errorf("codec: read length: %w", err)
	}
	out := make([]byte, binary.LittleEndian.Uint32(n[:]))
	if _, err := io.ReadFull(r.r, out); err != nil {
		return nil, fmt.Errorf("codec: read %d bytes: %w", len(out), err)
	}
	return out, nil
}

// GetString reads a length-prefixed string.
func (r *Reader) GetString() (string, error) {
	b, err := r.GetBytes()
	return string(b), err
}

// GetUint32 reads a little-endian uint32.
func (r *Reader) GetUint32() (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r.r, b[:]); err != nil {
		return 0, fmt.Errorf("codec: read uint32: %w", err)
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

// GetInt64 reads a little-endian int64.
func (r *Reader) GetInt64() (int64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r.r, b[:]); err != nil {
		return 0, fmt.Errorf("codec: read int64: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// GetByte reads a single byte.
func (r *Reader) GetByte() (byte, error) {
	return r.r.ReadByte()
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int { return r.r.Len() }
