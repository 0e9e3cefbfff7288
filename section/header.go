package section

import (
	"github.com/cockroachdb/errors"

	"github.com/arloliu/tcoll/encoding"
	"github.com/arloliu/tcoll/endian"
	"github.com/arloliu/tcoll/errs"
	"github.com/arloliu/tcoll/format"
)

// Header describes the count header at the start of every collection buffer.
//
// The header is a single unsigned integer holding the number of logical
// slots, stored with CountSize bytes in the Engine byte order. It carries no
// magic number or version: the layout parameters are known out of band.
type Header struct {
	CountSize format.SizeEncoding
	Engine    endian.EndianEngine
}

// Size returns the header size in bytes.
func (h Header) Size() int {
	return h.CountSize.Width()
}

// Count reads the slot count from buf.
//
// Returns:
//   - int: Number of logical slots
//   - error: ErrNilBuffer for a nil buffer, ErrCorrupted if the header is truncated
//     or the count does not fit an int
func (h Header) Count(buf []byte) (int, error) {
	if buf == nil {
		return 0, errs.ErrNilBuffer
	}
	if len(buf) < h.Size() {
		return 0, errors.Wrapf(errs.ErrCorrupted, "buffer of %d bytes is shorter than the %d-byte count header", len(buf), h.Size())
	}

	n := encoding.ReadSize(h.Engine, buf, h.CountSize)
	if n > uint64(maxInt) {
		return 0, errors.Wrapf(errs.ErrCorrupted, "count %d does not fit in int", n)
	}

	return int(n), nil
}

// CheckCount reports whether count can be stored in the header.
func (h Header) CheckCount(count int) error {
	if count < 0 {
		return errors.Wrapf(errs.ErrInvalidCount, "negative count %d", count)
	}
	if uint64(count) > h.CountSize.Max() {
		return errors.Wrapf(errs.ErrSizeOverflow, "count %d exceeds %s header maximum %d", count, h.CountSize, h.CountSize.Max())
	}

	return nil
}

// SetCount writes count into the header of buf.
func (h Header) SetCount(buf []byte, count int) error {
	if err := h.CheckCount(count); err != nil {
		return err
	}

	return encoding.PutSize(h.Engine, buf, h.CountSize, uint64(count))
}

// Append appends an empty header (count 0) to buf.
func (h Header) Append(buf []byte) []byte {
	out, _ := encoding.AppendSize(h.Engine, buf, h.CountSize, 0)
	return out
}

const maxInt = int(^uint(0) >> 1)
