package keys

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/Vishalkulkarni45/verifiable-fhe-paper/field"
	"github.com/Vishalkulkarni45/verifiable-fhe-paper/glwe"
	"github.com/Vishalkulkarni45/verifiable-fhe-paper/utils/buffer"
	"github.com/google/go-cmp/cmp"
)

// BootstrappingKey is an in-memory set of the keys of a blind rotation: one GGSW
// encryption of every bit of the LWE secret key, and the key-switching GGSW
// applied on the last step.
// It is safe for concurrent reads.
type BootstrappingKey struct {
	params            glwe.Parameters
	BlindRotationKeys []glwe.Ggsw[field.Element]
	KeySwitchingKey   glwe.Ggsw[field.Element]
}

// NewBootstrappingKey allocates a zero BootstrappingKey for an LWE dimension n.
func NewBootstrappingKey(params glwe.Parameters, n int) *BootstrappingKey {
	brk := make([]glwe.Ggsw[field.Element], n)
	for i := range brk {
		brk[i] = glwe.NewGgsw(params)
	}
	return &BootstrappingKey{
		params:            params,
		BlindRotationKeys: brk,
		KeySwitchingKey:   glwe.NewGgsw(params),
	}
}

// GenBootstrappingKeyNew encrypts every bit of skLWE as a GGSW ciphertext under
// the secret key of enc, and a GGSW encryption of one as key-switching key.
func GenBootstrappingKeyNew(params glwe.Parameters, enc *Encryptor, skLWE *LWESecretKey) (bsk *BootstrappingKey, err error) {

	bsk = &BootstrappingKey{
		params:            params,
		BlindRotationKeys: make([]glwe.Ggsw[field.Element], skLWE.Dimension()),
	}

	for i, si := range skLWE.Value {
		if si > 1 {
			return nil, fmt.Errorf("cannot GenBootstrappingKeyNew: LWE secret key is not binary at index %d", i)
		}
		if bsk.BlindRotationKeys[i], err = enc.EncryptGgswScalarNew(int64(si)); err != nil {
			return nil, fmt.Errorf("EncryptGgswScalarNew: %w", err)
		}
	}

	if bsk.KeySwitchingKey, err = enc.EncryptGgswScalarNew(1); err != nil {
		return nil, fmt.Errorf("EncryptGgswScalarNew: %w", err)
	}

	return
}

// LWEDimension returns the number of blind rotation keys.
func (bsk BootstrappingKey) LWEDimension() int {
	return len(bsk.BlindRotationKeys)
}

// GetBlindRotationKey returns the GGSW encryption of the i-th bit of the LWE secret key.
func (bsk BootstrappingKey) GetBlindRotationKey(i int) (glwe.Ggsw[field.Element], error) {
	if i < 0 || i >= len(bsk.BlindRotationKeys) {
		return glwe.Ggsw[field.Element]{}, fmt.Errorf("blind rotation key %d does not exist", i)
	}
	return bsk.BlindRotationKeys[i], nil
}

// GetKeySwitchingKey returns the key-switching GGSW ciphertext.
func (bsk BootstrappingKey) GetKeySwitchingKey() (glwe.Ggsw[field.Element], error) {
	return bsk.KeySwitchingKey, nil
}

// Equal performs a deep equality.
func (bsk BootstrappingKey) Equal(other *BootstrappingKey) bool {
	return bsk.params.Equal(&other.params) &&
		cmp.Equal(bsk.BlindRotationKeys, other.BlindRotationKeys) &&
		cmp.Equal(bsk.KeySwitchingKey, other.KeySwitchingKey)
}

// BinarySize returns the serialized size of the object in bytes.
func (bsk BootstrappingKey) BinarySize() int {
	return 8 + (len(bsk.BlindRotationKeys)+1)*bsk.params.GgswSize()*8
}

// WriteTo writes the object on an [io.Writer]. It implements the [io.WriterTo]
// interface, and will write exactly object.BinarySize() bytes on w.
//
// Unless w implements the [buffer.Writer] interface, it will be wrapped into a [bufio.Writer].
func (bsk BootstrappingKey) WriteTo(w io.Writer) (n int64, err error) {

	switch w := w.(type) {
	case buffer.Writer:

		var inc int64

		if inc, err = buffer.WriteInt(w, len(bsk.BlindRotationKeys)); err != nil {
			return n + inc, err
		}
		n += inc

		for _, ggsw := range bsk.BlindRotationKeys {
			if inc, err = buffer.WriteElements(w, ggsw.Flatten()); err != nil {
				return n + inc, err
			}
			n += inc
		}

		if inc, err = buffer.WriteElements(w, bsk.KeySwitchingKey.Flatten()); err != nil {
			return n + inc, err
		}
		n += inc

		return n, w.Flush()

	default:
		return bsk.WriteTo(bufio.NewWriter(w))
	}
}

// ReadFrom reads on the object from an [io.Reader]. It implements the
// [io.ReaderFrom] interface. The receiver must have been allocated with
// [NewBootstrappingKey] so that its parameters are known.
//
// Unless r implements the [buffer.Reader] interface, it will be wrapped into a [bufio.Reader].
func (bsk *BootstrappingKey) ReadFrom(r io.Reader) (n int64, err error) {

	switch r := r.(type) {
	case buffer.Reader:

		if bsk.params.K() == 0 {
			return 0, fmt.Errorf("cannot ReadFrom: receiver has no parameters")
		}

		var inc int64
		var size int

		if inc, err = buffer.ReadInt(r, &size); err != nil {
			return n + inc, err
		}
		n += inc

		if size < 0 || size > 1<<20 {
			return n, fmt.Errorf("cannot ReadFrom: invalid number of blind rotation keys %d", size)
		}

		ggsws := make([]glwe.Ggsw[field.Element], size+1)
		for i := range ggsws {
			values := make([]field.Element, bsk.params.GgswSize())
			if inc, err = buffer.ReadElements(r, values); err != nil {
				return n + inc, err
			}
			n += inc
			ggsws[i] = glwe.GgswFromSlice(bsk.params, values)
		}

		bsk.BlindRotationKeys = ggsws[:size]
		bsk.KeySwitchingKey = ggsws[size]

		return n, nil

	default:
		return bsk.ReadFrom(bufio.NewReader(r))
	}
}

// MarshalBinary encodes the object into a binary form on a newly allocated slice of bytes.
func (bsk BootstrappingKey) MarshalBinary() (data []byte, err error) {
	buf := bytes.NewBuffer(make([]byte, 0, bsk.BinarySize()))
	_, err = bsk.WriteTo(buf)
	return buf.Bytes(), err
}

// UnmarshalBinary decodes a slice of bytes generated by
// [BootstrappingKey.MarshalBinary] or [BootstrappingKey.WriteTo] on the object.
func (bsk *BootstrappingKey) UnmarshalBinary(p []byte) (err error) {
	_, err = bsk.ReadFrom(bytes.NewReader(p))
	return
}
