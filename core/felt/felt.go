package felt

import (
	"errors"
	"math/big"
	"strings"
	"sync"

	"github.com/consensys/gnark-crypto/ecc/stark-curve/fp"
	"github.com/fxamacker/cbor/v2"
)

const (
	Limbs = fp.Limbs // number of 64 bits words needed to represent a Element
	Bits  = fp.Bits  // number of bits needed to represent a Element
	Bytes = fp.Bytes // number of bytes needed to represent a Element
)

// Felt is a Starknet field element.
type Felt struct {
	val fp.Element
}

// zero felt constant
var Zero = Felt{}

var bigIntPool = sync.Pool{
	New: func() any {
		return new(big.Int)
	},
}

// Impl returns the underlying field element type
func (z *Felt) Impl() *fp.Element {
	return &z.val
}

// UnmarshalJSON accepts numbers and strings as input.
// See Element.SetString for valid prefixes (0x, 0b, ...).
// If there is an error, we try to explicitly unmarshal from hex before
// returning an error. This implementation is taken from [gnark-crypto].
//
// [gnark-crypto]: https://github.com/ConsenSys/gnark-crypto/blob/9fd0a7de2044f088a29cfac373da73d868230148/ecc/stark-curve/fp/element.go#L1028-L1056
func (z *Felt) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) > fp.Bits*3 {
		return errors.New("value too large (max = Element.Bits * 3)")
	}

	// we accept numbers and strings, remove leading and trailing quotes if any
	if len(s) > 0 && s[0] == '"' {
		s = s[1:]
	}
	if len(s) > 0 && s[len(s)-1] == '"' {
		s = s[:len(s)-1]
	}

	// get temporary big int from the pool
	vv := bigIntPool.Get().(*big.Int)
	defer bigIntPool.Put(vv)

	if _, ok := vv.SetString(s, 0); !ok {
		if _, ok := vv.SetString(s, 16); !ok {
			return errors.New("can't parse into a big.Int: " + s)
		}
	}

	if vv.Sign() < 0 || vv.Cmp(fp.Modulus()) >= 0 {
		return errors.New("value out of range for a field element: " + s)
	}

	z.val.SetBigInt(vv)
	return nil
}

// MarshalJSON encodes the felt as a quoted hex string
func (z *Felt) MarshalJSON() ([]byte, error) {
	return []byte(`"` + z.String() + `"`), nil
}

// MarshalCBOR encodes the felt in its canonical big-endian byte form
func (z *Felt) MarshalCBOR() ([]byte, error) {
	b := z.val.Bytes()
	return cbor.Marshal(b[:])
}

// UnmarshalCBOR is the inverse of MarshalCBOR
func (z *Felt) UnmarshalCBOR(data []byte) error {
	var b []byte
	if err := cbor.Unmarshal(data, &b); err != nil {
		return err
	}
	return z.val.SetBytesCanonical(b)
}

// SetBytes forwards the call to underlying field element implementation
func (z *Felt) SetBytes(e []byte) *Felt {
	z.val.SetBytes(e)
	return z
}

// SetBytesCanonical forwards the call to underlying field element implementation
func (z *Felt) SetBytesCanonical(data []byte) error {
	return z.val.SetBytesCanonical(data)
}

// SetString forwards the call to underlying field element implementation
func (z *Felt) SetString(number string) (*Felt, error) {
	_, err := z.val.SetString(number)
	return z, err
}

// SetUint64 forwards the call to underlying field element implementation
func (z *Felt) SetUint64(v uint64) *Felt {
	z.val.SetUint64(v)
	return z
}

// SetRandom forwards the call to underlying field element implementation
func (z *Felt) SetRandom() (*Felt, error) {
	_, err := z.val.SetRandom()
	return z, err
}

// String returns the 0x-prefixed lower-case hex representation
func (z *Felt) String() string {
	return "0x" + z.val.Text(16)
}

// ShortString is String with the middle of long values elided, for logs
func (z *Felt) ShortString() string {
	hex := z.val.Text(16)
	if len(hex) <= 8 {
		return "0x" + hex
	}
	return "0x" + hex[:4] + "..." + hex[len(hex)-4:]
}

// Text forwards the call to underlying field element implementation
func (z *Felt) Text(base int) string {
	return z.val.Text(base)
}

// Equal forwards the call to underlying field element implementation
func (z *Felt) Equal(x *Felt) bool {
	return z.val.Equal(&x.val)
}

// Marshal forwards the call to underlying field element implementation
func (z *Felt) Marshal() []byte {
	return z.val.Marshal()
}

// Bytes forwards the call to underlying field element implementation
func (z *Felt) Bytes() [32]byte {
	return z.val.Bytes()
}

// IsZero forwards the call to underlying field element implementation
func (z *Felt) IsZero() bool {
	return z.val.IsZero()
}

// Cmp forwards the call to underlying field element implementation
func (z *Felt) Cmp(x *Felt) int {
	return z.val.Cmp(&x.val)
}

// UnmarshalText lets felts be used as flag and config values
func (z *Felt) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	return z.UnmarshalJSON([]byte(s))
}
