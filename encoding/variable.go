package encoding

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/arloliu/tcoll/endian"
	"github.com/arloliu/tcoll/errs"
	"github.com/arloliu/tcoll/format"
)

// VarCodec encodes one value of a variable-length element kind.
//
// The collection engine owns the length prefix; a VarCodec only produces and
// consumes the payload bytes that follow it.
type VarCodec[T any] interface {
	TextCodec[T]

	// Kind returns the element kind tag of the codec.
	Kind() format.Kind
	// Size returns the payload length of v in bytes.
	Size(v T) int
	// Append appends the payload of v to dst.
	Append(engine endian.EndianEngine, dst []byte, v T) []byte
	// Decode decodes a payload. The result never aliases b.
	Decode(engine endian.EndianEngine, b []byte) T
	// Equal reports whether two values are the same element.
	Equal(a, b T) bool
}

var (
	_ VarCodec[string]   = StringCodec{}
	_ VarCodec[[]byte]   = BinaryCodec{}
	_ VarCodec[*big.Int] = BigIntCodec{}
)

// StringCodec stores strings as their raw UTF-8 bytes.
type StringCodec struct{}

// String returns the string codec.
func String() StringCodec { return StringCodec{} }

func (StringCodec) Kind() format.Kind { return format.KindString }

func (StringCodec) Size(v string) int { return len(v) }

func (StringCodec) Append(_ endian.EndianEngine, dst []byte, v string) []byte {
	return append(dst, v...)
}

func (StringCodec) Decode(_ endian.EndianEngine, b []byte) string { return string(b) }

func (StringCodec) Equal(a, b string) bool { return a == b }

// FormatText quotes v with Go string syntax so delimiters and quotes inside
// the value survive a round trip.
func (StringCodec) FormatText(v string) string { return strconv.Quote(v) }

func (StringCodec) ParseText(token string) (string, error) {
	if len(token) < 2 || token[0] != '"' {
		return "", errs.NewFormatError(token, fmt.Errorf("string literal must be quoted"))
	}

	s, err := strconv.Unquote(token)
	if err != nil {
		return "", errs.NewFormatError(token, err)
	}

	return s, nil
}

// BinaryCodec stores arbitrary byte blobs.
type BinaryCodec struct{}

// Binary returns the binary codec.
func Binary() BinaryCodec { return BinaryCodec{} }

func (BinaryCodec) Kind() format.Kind { return format.KindBinary }

func (BinaryCodec) Size(v []byte) int { return len(v) }

func (BinaryCodec) Append(_ endian.EndianEngine, dst []byte, v []byte) []byte {
	return append(dst, v...)
}

func (BinaryCodec) Decode(_ endian.EndianEngine, b []byte) []byte {
	return bytes.Clone(b)
}

func (BinaryCodec) Equal(a, b []byte) bool { return bytes.Equal(a, b) }

// FormatText renders v as 0x-prefixed upper-case hex.
func (BinaryCodec) FormatText(v []byte) string {
	return "0x" + strings.ToUpper(hex.EncodeToString(v))
}

func (BinaryCodec) ParseText(token string) ([]byte, error) {
	if len(token) < 2 || token[0] != '0' || (token[1] != 'x' && token[1] != 'X') {
		return nil, errs.NewFormatError(token, fmt.Errorf("binary literal must start with 0x"))
	}

	b, err := hex.DecodeString(token[2:])
	if err != nil {
		return nil, errs.NewFormatError(token, err)
	}
	if b == nil {
		b = []byte{}
	}

	return b, nil
}

// BigIntCodec stores arbitrary-precision integers as their minimal
// two's-complement bytes, least significant byte first under a little-endian
// engine and most significant first under a big-endian engine. Zero encodes
// as a single 0x00 byte.
type BigIntCodec struct{}

// BigInt returns the big integer codec.
func BigInt() BigIntCodec { return BigIntCodec{} }

func (BigIntCodec) Kind() format.Kind { return format.KindBigInt }

func (c BigIntCodec) Size(v *big.Int) int {
	return len(twosComplement(v))
}

func (BigIntCodec) Append(engine endian.EndianEngine, dst []byte, v *big.Int) []byte {
	b := twosComplement(v)
	if !endian.IsBigEndian(engine) {
		reverse(b)
	}

	return append(dst, b...)
}

func (BigIntCodec) Decode(engine endian.EndianEngine, b []byte) *big.Int {
	be := bytes.Clone(b)
	if !endian.IsBigEndian(engine) {
		reverse(be)
	}

	return fromTwosComplement(be)
}

func (BigIntCodec) Equal(a, b *big.Int) bool {
	return bigOrZero(a).Cmp(bigOrZero(b)) == 0
}

func (BigIntCodec) FormatText(v *big.Int) string {
	return bigOrZero(v).String()
}

func (BigIntCodec) ParseText(token string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(token, 10)
	if !ok {
		return nil, errs.NewFormatError(token, fmt.Errorf("invalid integer"))
	}

	return v, nil
}

var bigZero = new(big.Int)

func bigOrZero(v *big.Int) *big.Int {
	if v == nil {
		return bigZero
	}

	return v
}

// twosComplement returns the minimal big-endian two's-complement bytes of v.
func twosComplement(v *big.Int) []byte {
	v = bigOrZero(v)
	if v.Sign() >= 0 {
		b := v.Bytes()
		if len(b) == 0 || b[0]&0x80 != 0 {
			b = append([]byte{0x00}, b...)
		}

		return b
	}

	// -v - 1 has the same bits as v, inverted.
	m := new(big.Int).Neg(v)
	m.Sub(m, big.NewInt(1))
	b := m.Bytes()
	for i := range b {
		b[i] = ^b[i]
	}
	if len(b) == 0 || b[0]&0x80 == 0 {
		b = append([]byte{0xFF}, b...)
	}

	return b
}

func fromTwosComplement(b []byte) *big.Int {
	if len(b) == 0 || b[0]&0x80 == 0 {
		return new(big.Int).SetBytes(b)
	}

	inv := make([]byte, len(b))
	for i := range b {
		inv[i] = ^b[i]
	}
	v := new(big.Int).SetBytes(inv)
	v.Add(v, big.NewInt(1))

	return v.Neg(v)
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
