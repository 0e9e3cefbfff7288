package collection

import (
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tcoll/encoding"
)

var insertRepeatSizes = []int{16, 256, 4096}

func benchInsertRepeat[T any](b *testing.B, l Layout[T], base []byte, v Nullable[T]) {
	for _, n := range insertRepeatSizes {
		b.Run(fmt.Sprintf("n=%d/repeat", n), func(b *testing.B) {
			for b.Loop() {
				_, err := l.InsertRepeat(slices.Clone(base), Some(1), v, n)
				require.NoError(b, err)
			}
		})

		b.Run(fmt.Sprintf("n=%d/insert-at", n), func(b *testing.B) {
			for b.Loop() {
				buf := slices.Clone(base)
				var err error
				for range n {
					buf, err = l.InsertAt(buf, 1, v)
					require.NoError(b, err)
				}
			}
		})
	}
}

func BenchmarkInsertRepeat(b *testing.B) {
	b.Run("int32", func(b *testing.B) {
		l := mustFixed(b, encoding.Int32())
		vals := make([]Nullable[int32], 1024)
		for i := range vals {
			if i%7 != 0 {
				vals[i] = Some(int32(i))
			}
		}
		benchInsertRepeat(b, l, mustBuild(b, l, vals), Some[int32](42))
	})

	b.Run("string", func(b *testing.B) {
		l := mustVariable(b, encoding.String())
		vals := make([]Nullable[string], 1024)
		for i := range vals {
			if i%7 != 0 {
				vals[i] = Some(fmt.Sprintf("item-%d", i))
			}
		}
		benchInsertRepeat(b, l, mustBuild(b, l, vals), Some("repeated"))
	})
}
