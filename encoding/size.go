package encoding

import (
	"github.com/cockroachdb/errors"

	"github.com/arloliu/tcoll/endian"
	"github.com/arloliu/tcoll/errs"
	"github.com/arloliu/tcoll/format"
)

// ReadSize decodes an unsigned integer stored with the given size encoding
// at the start of b.
//
// The caller guarantees len(b) >= enc.Width().
func ReadSize(engine endian.EndianEngine, b []byte, enc format.SizeEncoding) uint64 {
	switch enc {
	case format.Size8:
		return uint64(b[0])
	case format.Size16:
		return uint64(engine.Uint16(b))
	case format.Size32:
		return uint64(engine.Uint32(b))
	default:
		return engine.Uint64(b)
	}
}

// PutSize encodes v with the given size encoding at the start of b.
//
// Returns:
//   - error: ErrSizeOverflow if v does not fit the encoding width
func PutSize(engine endian.EndianEngine, b []byte, enc format.SizeEncoding, v uint64) error {
	if v > enc.Max() {
		return errors.Wrapf(errs.ErrSizeOverflow, "value %d exceeds %s maximum %d", v, enc, enc.Max())
	}

	switch enc {
	case format.Size8:
		b[0] = byte(v)
	case format.Size16:
		engine.PutUint16(b, uint16(v))
	case format.Size32:
		engine.PutUint32(b, uint32(v))
	default:
		engine.PutUint64(b, v)
	}

	return nil
}

// AppendSize appends v encoded with the given size encoding to b.
func AppendSize(engine endian.EndianEngine, b []byte, enc format.SizeEncoding, v uint64) ([]byte, error) {
	if v > enc.Max() {
		return b, errors.Wrapf(errs.ErrSizeOverflow, "value %d exceeds %s maximum %d", v, enc, enc.Max())
	}

	switch enc {
	case format.Size8:
		return append(b, byte(v)), nil
	case format.Size16:
		return engine.AppendUint16(b, uint16(v)), nil
	case format.Size32:
		return engine.AppendUint32(b, uint32(v)), nil
	default:
		return engine.AppendUint64(b, v), nil
	}
}
