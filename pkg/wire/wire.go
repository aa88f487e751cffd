// Package wire implements the fixed on-disk layout of a list snapshot region:
//
//	[int64 payload length][int32 backed count][payload][offset table]
//
// All integers are little-endian. The payload length covers everything after
// the two header fields, offset table included. The offset table holds
// count+1 entries; entry i and i+1 delimit the byte range of backed element i
// relative to the start of the payload.
package wire

import (
	"encoding/binary"
	"io"

	"github.com/cockroachdb/errors"
)

// HeaderSize is the byte size of the two header fields.
const HeaderSize = 8 + 4

// OffsetTableSize returns the byte size of the offset table for count backed
// elements.
func OffsetTableSize(count int) uint64 {
	return 8 * (uint64(count) + 1)
}

// WriteHeader writes the payload length and backed count fields.
func WriteHeader(w io.Writer, payloadLen int64, count int32) error {
	var buf [HeaderSize]byte
	binary.LittleEndian.PutUint64(buf[0:], uint64(payloadLen))
	binary.LittleEndian.PutUint32(buf[8:], uint32(count))
	_, err := w.Write(buf[:])
	return err
}

// ReadHeader reads the payload length and backed count fields.
func ReadHeader(r io.Reader) (payloadLen int64, count int32, err error) {
	var buf [HeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, 0, errors.Wrap(err, "reading snapshot header")
	}
	payloadLen = int64(binary.LittleEndian.Uint64(buf[0:]))
	count = int32(binary.LittleEndian.Uint32(buf[8:]))
	if payloadLen < 0 {
		return 0, 0, errors.Newf("negative payload length %d", payloadLen)
	}
	if count < 0 {
		return 0, 0, errors.Newf("negative backed count %d", count)
	}
	return payloadLen, count, nil
}

// AppendOffsets appends the offset table entries to b.
func AppendOffsets(b []byte, offsets []int64) []byte {
	for _, off := range offsets {
		b = binary.LittleEndian.AppendUint64(b, uint64(off))
	}
	return b
}

// ParseOffsets decodes count+1 offset entries from b and validates that they
// are non-decreasing, start at zero and stay within payloadLen.
func ParseOffsets(b []byte, count int, payloadLen int64) ([]int64, error) {
	want := OffsetTableSize(count)
	if uint64(len(b)) != want {
		return nil, errors.Newf("offset table is %d bytes, want %d", len(b), want)
	}
	offsets := make([]int64, count+1)
	for i := range offsets {
		offsets[i] = int64(binary.LittleEndian.Uint64(b[8*i:]))
	}
	if offsets[0] != 0 {
		return nil, errors.Newf("offset table starts at %d, want 0", offsets[0])
	}
	for i := 1; i < len(offsets); i++ {
		if offsets[i] < offsets[i-1] {
			return nil, errors.Newf("offset table decreases at entry %d", i)
		}
	}
	if last := offsets[count]; last > payloadLen {
		return nil, errors.Newf("offset table ends at %d past payload of %d bytes", last, payloadLen)
	}
	return offsets, nil
}
