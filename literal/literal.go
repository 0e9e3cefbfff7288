// Package literal implements the textual list form of a collection.
//
// A list is written as
//
//	{lit, lit, ...}
//
// with "{}" for an empty list. Literals are separated by commas and may be
// surrounded by whitespace. The reserved token NULL (matched
// case-insensitively) stands for a null element. A literal starting with a
// double quote is a Go-syntax quoted string and may contain commas, braces
// and escaped quotes; any other literal runs up to the next comma or the
// closing brace.
//
// The package only splits and joins literals. Converting a literal to an
// element value is the job of the element codec.
package literal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arloliu/tcoll/errs"
	"github.com/arloliu/tcoll/internal/pool"
)

// NullToken is the literal written for a null element.
const NullToken = "NULL"

const (
	openBrace  = '{'
	closeBrace = '}'
	delimiter  = ','
	quote      = '"'
)

// Token is one literal of a list.
type Token struct {
	// Text is the literal exactly as written, quotes included.
	Text string
	// Null is set when the literal is the null token.
	Null bool
}

// Split parses a list into its literals.
//
// Returns:
//   - []Token: Literals in order
//   - error: *errs.FormatError naming the offending text when the list is malformed
func Split(text string) ([]Token, error) {
	s := strings.TrimSpace(text)
	if len(s) < 2 || s[0] != openBrace || s[len(s)-1] != closeBrace {
		return nil, errs.NewFormatError(text, fmt.Errorf("list must be enclosed in %c%c", openBrace, closeBrace))
	}

	body := s[1 : len(s)-1]
	if strings.TrimSpace(body) == "" {
		return []Token{}, nil
	}

	var tokens []Token
	for {
		body = strings.TrimLeft(body, " \t\r\n")

		var raw string
		if body != "" && body[0] == quote {
			q, err := strconv.QuotedPrefix(body)
			if err != nil {
				return nil, errs.NewFormatError(body, err)
			}
			raw = q
			body = body[len(q):]
		} else {
			end := strings.IndexByte(body, delimiter)
			if end < 0 {
				end = len(body)
			}
			raw = strings.TrimRight(body[:end], " \t\r\n")
			body = body[end:]
			if raw == "" {
				return nil, errs.NewFormatError(s, fmt.Errorf("empty literal at element %d", len(tokens)))
			}
			if strings.ContainsAny(raw, "{}\"") {
				return nil, errs.NewFormatError(raw, fmt.Errorf("unexpected character in literal"))
			}
		}

		tokens = append(tokens, Token{Text: raw, Null: strings.EqualFold(raw, NullToken)})

		body = strings.TrimLeft(body, " \t\r\n")
		if body == "" {
			return tokens, nil
		}
		if body[0] != delimiter {
			return nil, errs.NewFormatError(body, fmt.Errorf("expected %q after literal %q", delimiter, raw))
		}
		body = body[1:]
		if strings.TrimSpace(body) == "" {
			return nil, errs.NewFormatError(s, fmt.Errorf("trailing %q", delimiter))
		}
	}
}

// Builder accumulates literals into a list.
//
// The zero value is not usable; create builders with NewBuilder and release
// them with Release.
type Builder struct {
	buf   *pool.ByteBuffer
	count int
}

// NewBuilder returns a Builder backed by a pooled buffer.
func NewBuilder() *Builder {
	b := &Builder{buf: pool.GetScratchBuffer()}
	_ = b.buf.WriteByte(openBrace)

	return b
}

// Add appends a literal.
func (b *Builder) Add(lit string) {
	if b.count > 0 {
		_, _ = b.buf.WriteString(", ")
	}
	_, _ = b.buf.WriteString(lit)
	b.count++
}

// AddNull appends the null token.
func (b *Builder) AddNull() {
	b.Add(NullToken)
}

// Len returns the number of literals added.
func (b *Builder) Len() int {
	return b.count
}

// String closes the list and returns its text. The builder must not be
// used afterwards except for Release.
func (b *Builder) String() string {
	_ = b.buf.WriteByte(closeBrace)
	return string(b.buf.Bytes())
}

// Release returns the builder's buffer to the pool.
func (b *Builder) Release() {
	pool.PutScratchBuffer(b.buf)
	b.buf = nil
}
