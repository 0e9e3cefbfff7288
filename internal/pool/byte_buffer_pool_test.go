package pool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// ByteBuffer Tests
// =============================================================================

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(1024)

	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len(), "new buffer should have zero length")
	assert.Equal(t, 1024, bb.Cap(), "new buffer should have specified capacity")
}

func TestWrap_SharesBackingArray(t *testing.T) {
	b := []byte("hello")
	bb := Wrap(b)

	bb.Bytes()[0] = 'j'
	require.Equal(t, "jello", string(b))
}

func TestByteBuffer_Grow(t *testing.T) {
	t.Run("sufficient capacity", func(t *testing.T) {
		bb := NewByteBuffer(16)
		bb.Grow(8)
		require.Equal(t, 16, bb.Cap())
	})

	t.Run("small buffer doubles", func(t *testing.T) {
		bb := NewByteBuffer(16)
		bb.MustWrite(make([]byte, 16))
		bb.Grow(1)
		require.Equal(t, 32, bb.Cap())
	})

	t.Run("required bytes win over doubling", func(t *testing.T) {
		bb := NewByteBuffer(4)
		bb.MustWrite([]byte("abcd"))
		bb.Grow(100)
		require.GreaterOrEqual(t, bb.Cap(), 104)
		require.Equal(t, "abcd", string(bb.Bytes()))
	})

	t.Run("large buffer grows by a quarter", func(t *testing.T) {
		bb := NewByteBuffer(smallBufferLimit * 2)
		bb.ExtendOrGrow(bb.Cap())
		bb.Grow(1)
		require.Equal(t, smallBufferLimit*2+smallBufferLimit/2, bb.Cap())
	})
}

func TestByteBuffer_ExtendOrGrow(t *testing.T) {
	bb := NewByteBuffer(2)
	bb.MustWrite([]byte("ab"))
	bb.ExtendOrGrow(3)

	require.Equal(t, 5, bb.Len())
	require.Equal(t, "ab", string(bb.Bytes()[:2]))
}

func TestByteBuffer_Splice(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		off    int
		oldLen int
		newLen int
		fill   string
		want   string
	}{
		{"insert middle", "abcdef", 2, 0, 3, "XYZ", "abXYZcdef"},
		{"insert front", "abc", 0, 0, 2, "XY", "XYabc"},
		{"append", "abc", 3, 0, 2, "XY", "abcXY"},
		{"remove middle", "abcdef", 1, 3, 0, "", "aef"},
		{"remove tail", "abcdef", 4, 2, 0, "", "abcd"},
		{"replace grow", "abcdef", 2, 1, 3, "XYZ", "abXYZdef"},
		{"replace shrink", "abcdef", 1, 4, 1, "X", "aXf"},
		{"replace same", "abcdef", 1, 2, 2, "XY", "aXYdef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bb := Wrap([]byte(tt.input))
			bb.Splice(tt.off, tt.oldLen, tt.newLen)
			copy(bb.B[tt.off:tt.off+tt.newLen], tt.fill)
			require.Equal(t, tt.want, string(bb.Bytes()))
		})
	}
}

func TestByteBuffer_Reshape(t *testing.T) {
	// Layout under test: [hh][HHH][mm][TTT]; the head is "HHH" at offset 2.
	t.Run("grow head and middle", func(t *testing.T) {
		bb := Wrap([]byte("hhHHHmmTTT"))
		bb.Reshape(2, 3, 1, 2, 4)
		bb.B[2] = '_'
		copy(bb.B[6:10], "MMMM")
		require.Equal(t, "hh_HHHMMMMTTT", string(bb.Bytes()))
	})

	t.Run("shrink head and middle", func(t *testing.T) {
		bb := Wrap([]byte("hhxHHHmmTTT"))
		bb.Reshape(3, 3, -1, 2, 0)
		require.Equal(t, "hhHHHTTT", string(bb.Bytes()))
	})

	t.Run("middle only", func(t *testing.T) {
		bb := Wrap([]byte("hhHHHmmTTT"))
		bb.Reshape(2, 3, 0, 2, 1)
		bb.B[5] = 'M'
		require.Equal(t, "hhHHHMTTT", string(bb.Bytes()))
	})

	t.Run("opposite directions", func(t *testing.T) {
		bb := Wrap([]byte("hhHHHmmmmTTT"))
		bb.Reshape(2, 3, 1, 4, 1)
		bb.B[2] = '_'
		bb.B[6] = 'M'
		require.Equal(t, "hh_HHHMTTT", string(bb.Bytes()))
	})

	t.Run("grow reallocates", func(t *testing.T) {
		b := make([]byte, 4, 4)
		copy(b, "HHTT")
		bb := Wrap(b)
		bb.Reshape(0, 2, 0, 0, 6)
		copy(bb.B[2:8], "MMMMMM")
		require.Equal(t, "HHMMMMMMTT", string(bb.Bytes()))
	})
}

func TestByteBuffer_Clone(t *testing.T) {
	bb := NewByteBuffer(64)
	bb.MustWrite([]byte("data"))

	out := bb.Clone()
	require.Equal(t, []byte("data"), out)
	require.Equal(t, 4, cap(out))

	out[0] = 'D'
	require.Equal(t, "data", string(bb.Bytes()))
}

func TestByteBuffer_Writers(t *testing.T) {
	bb := NewByteBuffer(0)
	_, _ = bb.WriteString("ab")
	_ = bb.WriteByte('c')
	n, err := bb.Write([]byte("de"))
	require.NoError(t, err)
	require.Equal(t, 2, n)

	require.Equal(t, "abcde", string(bb.Bytes()))
	require.Equal(t, 5, bb.Len())
}

// =============================================================================
// Pool Tests
// =============================================================================

func TestScratchPool_ReturnsEmptyBuffer(t *testing.T) {
	bb := GetScratchBuffer()
	require.NotNil(t, bb)
	bb.MustWrite([]byte("leftover"))
	PutScratchBuffer(bb)

	again := GetScratchBuffer()
	defer PutScratchBuffer(again)
	require.Equal(t, 0, again.Len())
}

func TestPutScratchBuffer_Nil(t *testing.T) {
	require.NotPanics(t, func() { PutScratchBuffer(nil) })
}

func TestByteBufferPool_MaxThreshold(t *testing.T) {
	p := NewByteBufferPool(8, 16)

	big := NewByteBuffer(32)
	p.Put(big)

	got := p.Get()
	require.LessOrEqual(t, got.Cap(), 16, "oversized buffers must not be retained")
}

func TestPool_ConcurrentAccess(t *testing.T) {
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for range 100 {
				bb := GetScratchBuffer()
				bb.MustWrite([]byte{byte(id)})
				PutScratchBuffer(bb)
			}
		}(i)
	}
	wg.Wait()
}

func BenchmarkByteBuffer_Splice(b *testing.B) {
	data := make([]byte, 64*1024)
	for b.Loop() {
		bb := Wrap(data)
		bb.Splice(1024, 0, 16)
		bb.Splice(1024, 16, 0)
		data = bb.B
	}
}
