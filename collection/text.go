package collection

import "github.com/arloliu/tcoll/literal"

// Format renders the collection as a literal list, for example
// {1, NULL, 3}.
func (b *base[T]) Format(buf []byte) (string, error) {
	count, err := b.impl.count(buf)
	if err != nil {
		return "", err
	}

	lb := literal.NewBuilder()
	defer lb.Release()

	b.impl.scan(buf, count, 0, count, func(_ int, v Nullable[T]) bool {
		if v.Valid {
			lb.Add(b.text.FormatText(v.Value))
		} else {
			lb.AddNull()
		}

		return true
	})

	return lb.String(), nil
}

// Parse builds a new exact-size collection buffer from a literal list.
// Malformed input fails with a *errs.FormatError naming the offending token.
func (b *base[T]) Parse(text string) ([]byte, error) {
	tokens, err := literal.Split(text)
	if err != nil {
		return nil, err
	}

	values := make([]Nullable[T], len(tokens))
	for i, tok := range tokens {
		if tok.Null {
			continue
		}
		v, err := b.text.ParseText(tok.Text)
		if err != nil {
			return nil, err
		}
		values[i] = Some(v)
	}

	return b.Build(values)
}
