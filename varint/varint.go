// Package varint implements the variable-length integer codec used
// throughout the PLB database format: little-endian base-128 with a
// continuation bit on every byte but the last, plus a zig-zag wrapper for
// signed values.
//
// Every multi-byte field in the format is a varint of one of two flavors:
// unsigned (bbox polygon-offset deltas, section sizes, string lengths) or
// signed via zig-zag (bbox lat/lon bounds, metadata-offset deltas, polygon
// vertex deltas). Both build directly on encoding/binary's Uvarint/PutUvarint,
// the same division of labor the underlying library already uses for its
// own delta-of-delta timestamp codec.
package varint

import (
	"encoding/binary"

	"github.com/geozone/zdgeo/zderrs"
)

// MaxLen is the maximum number of bytes a 64-bit varint can occupy.
const MaxLen = binary.MaxVarintLen64

// PutUnsigned appends the base-128 encoding of u to dst and returns the
// extended slice.
func PutUnsigned(dst []byte, u uint64) []byte {
	var tmp [MaxLen]byte
	n := binary.PutUvarint(tmp[:], u)

	return append(dst, tmp[:n]...)
}

// PutSigned zig-zag encodes v and appends its base-128 form to dst.
//
// Zig-zag mapping: non-negative v -> 2*v, negative v -> 2*|v|-1, so small
// magnitudes of either sign stay in the cheap one- and two-byte range.
func PutSigned(dst []byte, v int64) []byte {
	return PutUnsigned(dst, zigzagEncode(v))
}

// PutRaw appends a non-negative value using the unsigned encoding even
// though it is produced at a call site that otherwise deals with signed
// quantities. This selects the "raw" mode described by the format: it is
// used for section sizes, string lengths and polygon vertex counts, which
// are never negative but are written alongside signed fields.
func PutRaw(dst []byte, u uint64) []byte {
	return PutUnsigned(dst, u)
}

func zigzagEncode(v int64) uint64 {
	return uint64((v << 1) ^ (v >> 63))
}

func zigzagDecode(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}

// DecodeUnsigned reads an unsigned varint from buf starting at *offset,
// advances *offset past it, and returns the decoded value.
//
// It rejects a stream that runs out of bytes before the continuation bit
// clears, and bounds the result to 64 bits (binary.Uvarint itself reports
// overflow as a negative byte count).
func DecodeUnsigned(buf []byte, offset *int) (uint64, error) {
	if *offset < 0 || *offset > len(buf) {
		return 0, zderrs.ErrTruncatedVarint
	}

	u, n := binary.Uvarint(buf[*offset:])
	if n == 0 {
		return 0, zderrs.ErrTruncatedVarint
	}
	if n < 0 {
		return 0, &zderrs.VarintOverflowError{Offset: *offset}
	}

	*offset += n

	return u, nil
}

// DecodeSigned reads a zig-zag encoded signed varint from buf starting at
// *offset, advances *offset past it, and returns the decoded value.
func DecodeSigned(buf []byte, offset *int) (int64, error) {
	u, err := DecodeUnsigned(buf, offset)
	if err != nil {
		return 0, err
	}

	return zigzagDecode(u), nil
}
