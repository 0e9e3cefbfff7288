package literal

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tcoll/errs"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Token
	}{
		{name: "empty", text: "{}", want: []Token{}},
		{name: "empty with spaces", text: " {  } ", want: []Token{}},
		{name: "single", text: "{1}", want: []Token{{Text: "1"}}},
		{
			name: "nulls",
			text: "{NULL, null, Null}",
			want: []Token{{Text: "NULL", Null: true}, {Text: "null", Null: true}, {Text: "Null", Null: true}},
		},
		{
			name: "whitespace",
			text: "{ 1 ,\t2,3 }",
			want: []Token{{Text: "1"}, {Text: "2"}, {Text: "3"}},
		},
		{
			name: "quoted",
			text: `{"a, b", "{}", "say \"hi\"", NULL}`,
			want: []Token{{Text: `"a, b"`}, {Text: `"{}"`}, {Text: `"say \"hi\""`}, {Text: "NULL", Null: true}},
		},
		{
			name: "quoted null is a value",
			text: `{"NULL"}`,
			want: []Token{{Text: `"NULL"`}},
		},
		{
			name: "ranges and complex",
			text: "{-1..5, (1+2i)}",
			want: []Token{{Text: "-1..5"}, {Text: "(1+2i)"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Split(tt.text)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestSplit_Errors(t *testing.T) {
	for _, text := range []string{
		"",
		"1, 2",
		"{1, 2",
		"1, 2}",
		"{1,}",
		"{,}",
		"{1,,2}",
		`{"a" "b"}`,
		`{"unterminated}`,
		"{a{b}",
		`{a"b}`,
	} {
		t.Run(text, func(t *testing.T) {
			_, err := Split(text)
			require.ErrorIs(t, err, errs.ErrFormat)

			var fe *errs.FormatError
			require.ErrorAs(t, err, &fe)
		})
	}
}

func TestBuilder(t *testing.T) {
	b := NewBuilder()
	require.Equal(t, "{}", b.String())
	b.Release()

	b = NewBuilder()
	defer b.Release()
	b.Add("1")
	b.AddNull()
	b.Add(`"x"`)
	require.Equal(t, 3, b.Len())
	require.Equal(t, `{1, NULL, "x"}`, b.String())
}

func TestBuilder_SplitRoundTrip(t *testing.T) {
	b := NewBuilder()
	defer b.Release()
	b.Add(`"a, {b}"`)
	b.AddNull()
	b.Add("-3")

	tokens, err := Split(b.String())
	require.NoError(t, err)
	require.Equal(t, []Token{{Text: `"a, {b}"`}, {Text: NullToken, Null: true}, {Text: "-3"}}, tokens)
}
