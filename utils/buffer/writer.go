package buffer

import (
	"encoding/binary"

	"github.com/Vishalkulkarni45/verifiable-fhe-paper/field"
)

// WriteUint64 writes c to w in little-endian order.
func WriteUint64(w Writer, c uint64) (n int64, err error) {
	var bb [8]byte
	binary.LittleEndian.PutUint64(bb[:], c)
	nint, err := w.Write(bb[:])
	return int64(nint), err
}

// WriteInt writes c to w as an uint64.
func WriteInt(w Writer, c int) (n int64, err error) {
	return WriteUint64(w, uint64(c))
}

// WriteUint64Slice writes c to w, each value in little-endian order.
// The length of c is not written.
func WriteUint64Slice(w Writer, c []uint64) (n int64, err error) {
	var inc int64
	for i := range c {
		if inc, err = WriteUint64(w, c[i]); err != nil {
			return n + inc, err
		}
		n += inc
	}
	return
}

// WriteElements writes the canonical values of c to w.
// The length of c is not written.
func WriteElements(w Writer, c []field.Element) (n int64, err error) {
	var inc int64
	for i := range c {
		if inc, err = WriteUint64(w, c[i].Uint64()); err != nil {
			return n + inc, err
		}
		n += inc
	}
	return
}
