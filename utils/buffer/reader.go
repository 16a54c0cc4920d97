package buffer

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/Vishalkulkarni45/verifiable-fhe-paper/field"
)

// ReadUint64 reads a little-endian uint64 from r into c.
func ReadUint64(r Reader, c *uint64) (n int64, err error) {
	if c == nil {
		return 0, fmt.Errorf("cannot ReadUint64: c is nil")
	}
	var bb [8]byte
	nint, err := io.ReadFull(r, bb[:])
	if err != nil {
		return int64(nint), err
	}
	*c = binary.LittleEndian.Uint64(bb[:])
	return int64(nint), nil
}

// ReadInt reads an uint64 from r into c.
func ReadInt(r Reader, c *int) (n int64, err error) {
	if c == nil {
		return 0, fmt.Errorf("cannot ReadInt: c is nil")
	}
	var v uint64
	if n, err = ReadUint64(r, &v); err != nil {
		return
	}
	*c = int(v)
	return
}

// ReadUint64Slice reads len(c) little-endian uint64 from r into c.
func ReadUint64Slice(r Reader, c []uint64) (n int64, err error) {
	var inc int64
	for i := range c {
		if inc, err = ReadUint64(r, &c[i]); err != nil {
			return n + inc, err
		}
		n += inc
	}
	return
}

// ReadElements reads len(c) canonical field values from r into c.
// Values greater than or equal to the modulus are rejected.
func ReadElements(r Reader, c []field.Element) (n int64, err error) {
	var inc int64
	var v uint64
	for i := range c {
		if inc, err = ReadUint64(r, &v); err != nil {
			return n + inc, err
		}
		n += inc
		if v >= field.Modulus {
			return n, fmt.Errorf("cannot ReadElements: value %d at index %d is not canonical", v, i)
		}
		c[i] = field.NewElement(v)
	}
	return
}
