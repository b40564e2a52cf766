package grid

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Kind identifies the runtime type of a cell Value.
type Kind int

// Value kinds. The order is the sort order across kinds: numbers sort
// before strings, and nulls always sort last.
const (
	KindNumber Kind = iota
	KindString
	KindNull
)

// Value is a scalar cell value read from a row by a column accessor.
// The zero Value is null.
type Value struct {
	kind Kind
	str  string
	num  float64
	set  bool
}

// String returns a string Value. Date-like values are strings too.
func String(s string) Value {
	return Value{kind: KindString, str: s, set: true}
}

// Number returns a numeric Value.
func Number(n float64) Value {
	return Value{kind: KindNumber, num: n, set: true}
}

// Int returns a numeric Value for an integer.
func Int(n int) Value {
	return Number(float64(n))
}

// Null returns the null Value.
func Null() Value {
	return Value{}
}

// NullableString returns a string Value, or null when p is nil.
func NullableString(p *string) Value {
	if p == nil {
		return Null()
	}
	return String(*p)
}

// Kind returns the kind of v.
func (v Value) Kind() Kind {
	if !v.set {
		return KindNull
	}
	return v.kind
}

// IsNull reports whether v is null.
func (v Value) IsNull() bool {
	return v.Kind() == KindNull
}

// Text returns the stringified value. Null stringifies to "".
func (v Value) Text() string {
	switch v.Kind() {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	default:
		return ""
	}
}

// Any returns the value as nil, a string or a float64, the shapes
// encoding/json produces for it.
func (v Value) Any() any {
	switch v.Kind() {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	default:
		return nil
	}
}

// MarshalJSON encodes v as null, a JSON string or a JSON number.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Any())
}

// compareValues orders two non-null values. Numbers compare numerically,
// strings lexically, and a number sorts before a string.
func compareValues(a, b Value) int {
	ka, kb := a.Kind(), b.Kind()
	if ka != kb {
		if ka < kb {
			return -1
		}
		return 1
	}
	if ka == KindNumber {
		switch {
		case a.num < b.num:
			return -1
		case a.num > b.num:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a.str, b.str)
}
