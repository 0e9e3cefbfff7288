package section

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

// bitsOf expands the first count bits of b.
func bitsOf(b Bitmap, count int) []bool {
	out := make([]bool, count)
	for i := range out {
		out[i] = b.Present(i)
	}

	return out
}

func fromBits(bits []bool, extra int) Bitmap {
	b := make(Bitmap, BitmapSize(len(bits)+extra))
	for i, v := range bits {
		b.Set(i, v)
	}

	return b
}

func requirePaddingZero(t *testing.T, b Bitmap, count int) {
	t.Helper()
	for i := count; i < len(b)*8; i++ {
		require.False(t, b.Present(i), "padding bit %d must be zero", i)
	}
}

func TestBitmapSize(t *testing.T) {
	require.Equal(t, 0, BitmapSize(0))
	require.Equal(t, 1, BitmapSize(1))
	require.Equal(t, 1, BitmapSize(8))
	require.Equal(t, 2, BitmapSize(9))
	require.Equal(t, 125, BitmapSize(1000))
}

func TestBitmap_SetAndPresent(t *testing.T) {
	b := make(Bitmap, 2)
	b.Set(0, true)
	b.Set(9, true)
	require.Equal(t, Bitmap{0x01, 0x02}, b)
	require.True(t, b.Present(9))
	require.True(t, b.IsNull(8))

	b.Set(0, false)
	require.Equal(t, Bitmap{0x00, 0x02}, b)

	b.SetRange(2, 4, true)
	require.Equal(t, Bitmap{0x3C, 0x02}, b)
}

func TestBitmap_Rank(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2)) //nolint:gosec
	bits := make([]bool, 300)
	for i := range bits {
		bits[i] = r.IntN(3) > 0
	}
	b := fromBits(bits, 0)

	present := 0
	for i, v := range bits {
		require.Equal(t, present, b.PresentBefore(i))
		require.Equal(t, i-present, b.Rank0(i))
		if v {
			present++
		}
	}
	require.Equal(t, present, b.PresentCount(len(bits)))
}

func TestBitmap_ClearFrom(t *testing.T) {
	b := Bitmap{0xFF, 0xFF, 0xFF}
	b.ClearFrom(10)
	require.Equal(t, Bitmap{0xFF, 0x03, 0x00}, b)

	b = Bitmap{0xFF, 0xFF}
	b.ClearFrom(8)
	require.Equal(t, Bitmap{0xFF, 0x00}, b)
}

func TestBitmap_InsertRemove(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4)) //nolint:gosec

	for range 500 {
		count := r.IntN(70)
		bits := make([]bool, count)
		for i := range bits {
			bits[i] = r.IntN(2) == 0
		}
		at := r.IntN(count + 1)
		n := r.IntN(20)
		if r.IntN(3) == 0 {
			at &^= 7
			n &^= 7
		}

		// Insert into a bitmap whose new bytes hold garbage.
		b := fromBits(bits, n)
		for i := BitmapSize(count); i < len(b); i++ {
			b[i] = 0xA5
		}
		b.InsertBits(count, at, n)

		want := make([]bool, 0, count+n)
		want = append(want, bits[:at]...)
		want = append(want, make([]bool, n)...)
		want = append(want, bits[at:]...)
		require.Equal(t, want, bitsOf(b, count+n), "insert count=%d at=%d n=%d", count, at, n)
		requirePaddingZero(t, b, count+n)

		// Removing the inserted slots restores the original bits.
		b.RemoveBits(count+n, at, n)
		require.Equal(t, bits, bitsOf(b, count))
		requirePaddingZero(t, b, count)
	}
}

func TestBitmap_RemoveAligned(t *testing.T) {
	b := Bitmap{0x01, 0xFF, 0x80}
	b.RemoveBits(24, 8, 8)
	require.Equal(t, Bitmap{0x01, 0x80, 0x00}, b)
}

func BenchmarkBitmap_PresentBefore(b *testing.B) {
	bm := make(Bitmap, 1024)
	for i := range bm {
		bm[i] = byte(i)
	}
	for b.Loop() {
		_ = bm.PresentBefore(8191)
	}
}
