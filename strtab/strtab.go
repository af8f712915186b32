// Package strtab implements the length-prefixed, XOR-masked string
// encoding shared by the database header and the metadata section, plus the
// metadata section's back-reference deduplication scheme.
//
// Every string on disk is masked byte-for-byte with 0x80 (keeps the stream
// free of raw ASCII bytes that could be mistaken for framing). Within the
// metadata region only, the first occurrence of a string is written inline
// as varint(length) || masked bytes with length < 256; every later
// occurrence of the same string instead writes varint(offset + 256), where
// offset is the first occurrence's byte position relative to the start of
// the metadata region. A decoder that lands on a length >= 256 follows
// that one indirection and refuses a second one.
package strtab

import (
	"github.com/geozone/zdgeo/internal/intern"
	"github.com/geozone/zdgeo/varint"
	"github.com/geozone/zdgeo/zderrs"
)

// backrefBias is added to a metadata-relative offset to distinguish a
// back-reference from an inline length in the shared varint slot.
const backrefBias = 256

func mask(b byte) byte { return b ^ 0x80 }

// EncodeInline writes s unconditionally as an inline length-prefixed,
// masked string. Used by the header, where field names and the notice
// string are never deduplicated against each other.
func EncodeInline(dst []byte, s string) ([]byte, error) {
	if len(s) >= backrefBias {
		return nil, zderrs.ErrStringTooLong
	}

	dst = varint.PutRaw(dst, uint64(len(s)))
	for i := 0; i < len(s); i++ {
		dst = append(dst, mask(s[i]))
	}

	return dst, nil
}

// Writer accumulates the metadata section's string bytes, deduplicating
// repeated strings against their first occurrence.
type Writer struct {
	tracker *intern.Tracker
}

// NewWriter returns a Writer ready to build one metadata section. Do not
// reuse a Writer across sections — first-occurrence offsets are relative
// to wherever encoding started.
func NewWriter() *Writer {
	return &Writer{tracker: intern.New()}
}

// WriteString appends the encoding of s to dst: a back-reference if s was
// already written by this Writer, otherwise a fresh inline copy.
func (w *Writer) WriteString(dst []byte, s string) ([]byte, error) {
	if offset, ok := w.tracker.Lookup(s); ok {
		return varint.PutRaw(dst, uint64(offset+backrefBias)), nil
	}

	offset := len(dst)
	dst, err := EncodeInline(dst, s)
	if err != nil {
		return nil, err
	}
	w.tracker.Record(s, offset)

	return dst, nil
}

// ReadString decodes one string from data starting at *offset, advancing
// *offset past the bytes it consumed from the caller's stream (a
// back-reference only consumes its own varint; the inline copy it points
// at lives elsewhere and is not re-walked by the caller).
//
// metadataBase is the absolute offset of the start of the metadata region
// within data; pass 0 when decoding header strings, which never contain
// back-references.
func ReadString(data []byte, offset *int, metadataBase int) (string, error) {
	length, err := varint.DecodeUnsigned(data, offset)
	if err != nil {
		return "", err
	}

	if length < backrefBias {
		s, err := readInline(data, *offset, int(length))
		if err != nil {
			return "", err
		}
		*offset += int(length)

		return s, nil
	}

	remoteOffset := metadataBase + int(length) - backrefBias
	if remoteOffset < metadataBase || remoteOffset > len(data) {
		return "", zderrs.ErrBackrefOutOfBody
	}

	// The outer stream only consumed the back-reference varint; the inline
	// copy it points at is read from remoteOffset and never rewalked here.
	remoteLen, err := varint.DecodeUnsigned(data, &remoteOffset)
	if err != nil {
		return "", err
	}
	if remoteLen >= backrefBias {
		return "", zderrs.ErrBackrefTooDeep
	}

	return readInline(data, remoteOffset, int(remoteLen))
}

func readInline(data []byte, start, length int) (string, error) {
	if length < 0 || start < 0 || start+length > len(data) {
		return "", zderrs.ErrTruncatedString
	}

	out := make([]byte, length)
	for i := 0; i < length; i++ {
		out[i] = mask(data[start+i])
	}

	return string(out), nil
}
