package bencode

import (
	"bytes"
	"fmt"
	"math/big"
	"sort"
	"strings"
)

// --------------------------------------------------------------------------
// Value Type Definition
// --------------------------------------------------------------------------

// Kind identifies which variant a Value holds.
// A Value is a closed union over the four bencode types, no other
// variants exist on the wire.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindInteger      // arbitrary precision integer
	KindBytes        // raw byte string
	KindList         // ordered list of values
	KindDict         // string-keyed dictionary of values
)

// String returns the string representation of a Kind.
func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindBytes:
		return "bytes"
	case KindList:
		return "list"
	case KindDict:
		return "dict"
	default:
		return "invalid"
	}
}

// Value is a single bencode value. The zero Value is invalid and is
// rejected by Encode. Values form trees, never cycles.
type Value struct {
	kind Kind
	num  *big.Int
	raw  []byte
	list []Value
	dict *Dict
}

// --------------------------------------------------------------------------
// Value Factory Functions
// --------------------------------------------------------------------------

// Integer creates an integer value from an int64
func Integer(v int64) Value {
	return Value{kind: KindInteger, num: big.NewInt(v)}
}

// BigInteger creates an integer value from a big.Int.
// The argument is copied, the caller keeps ownership.
func BigInteger(v *big.Int) Value {
	return Value{kind: KindInteger, num: new(big.Int).Set(v)}
}

// Bytes creates a byte string value. The argument is not copied.
func Bytes(v []byte) Value {
	return Value{kind: KindBytes, raw: v}
}

// String creates a byte string value from the UTF-8 bytes of a Go string
func String(v string) Value {
	return Value{kind: KindBytes, raw: []byte(v)}
}

// List creates a list value from the given items
func List(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindList, list: items}
}

// DictValue wraps a Dict as a Value
func DictValue(d *Dict) Value {
	return Value{kind: KindDict, dict: d}
}

// --------------------------------------------------------------------------
// Value Accessors
// --------------------------------------------------------------------------

// Kind returns the variant tag of the value
func (v Value) Kind() Kind {
	return v.kind
}

// Integer returns the integer variant. The result must not be mutated.
// It returns nil if the value is not an integer.
func (v Value) Integer() *big.Int {
	return v.num
}

// Int64 returns the integer variant as an int64.
// The second return value reports whether the value is an integer that
// fits into 64 bit.
func (v Value) Int64() (int64, bool) {
	if v.kind != KindInteger || !v.num.IsInt64() {
		return 0, false
	}
	return v.num.Int64(), true
}

// Bytes returns the byte string variant, nil for other variants
func (v Value) Bytes() []byte {
	return v.raw
}

// Text returns the byte string variant as a Go string
func (v Value) Text() string {
	return string(v.raw)
}

// List returns the list variant, nil for other variants
func (v Value) List() []Value {
	return v.list
}

// Dict returns the dictionary variant, nil for other variants
func (v Value) Dict() *Dict {
	return v.dict
}

// Equal reports whether two values are content-equal. Dictionaries
// compare as key/value mappings independent of iteration order, since
// encode normalizes key order while decode preserves stream order.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindInteger:
		return v.num.Cmp(o.num) == 0
	case KindBytes:
		return bytes.Equal(v.raw, o.raw)
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}
		return true
	case KindDict:
		if v.dict.Len() != o.dict.Len() {
			return false
		}
		for _, key := range v.dict.Keys() {
			other, ok := o.dict.Get(key)
			if !ok {
				return false
			}
			val, _ := v.dict.Get(key)
			if !val.Equal(other) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// String returns a human-readable representation for logging and debugging
func (v Value) String() string {
	switch v.kind {
	case KindInteger:
		return v.num.String()
	case KindBytes:
		return fmt.Sprintf("%q", v.raw)
	case KindList:
		parts := make([]string, len(v.list))
		for i, item := range v.list {
			parts[i] = item.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindDict:
		parts := make([]string, 0, v.dict.Len())
		for _, key := range v.dict.Keys() {
			val, _ := v.dict.Get(key)
			parts = append(parts, fmt.Sprintf("%q: %s", key, val.String()))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return "<invalid>"
	}
}

// --------------------------------------------------------------------------
// Dict Type Definition
// --------------------------------------------------------------------------

// Dict is an insertion-ordered mapping from byte-string keys to values.
// Decoding fills it in stream order and iteration follows that order,
// while Encode always emits keys in ascending byte order. Keys are Go
// strings but may hold arbitrary bytes.
type Dict struct {
	keys   []string
	values map[string]Value
}

// NewDict creates an empty dictionary
func NewDict() *Dict {
	return &Dict{values: map[string]Value{}}
}

// Set inserts or replaces the value for a key. A new key is appended to
// the iteration order, replacing keeps the original position.
func (d *Dict) Set(key string, v Value) {
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = v
}

// Get returns the value for a key and whether the key is present
func (d *Dict) Get(key string) (Value, bool) {
	v, ok := d.values[key]
	return v, ok
}

// Len returns the number of entries
func (d *Dict) Len() int {
	return len(d.keys)
}

// Keys returns the keys in iteration (insertion/stream) order.
// The returned slice must not be mutated.
func (d *Dict) Keys() []string {
	return d.keys
}

// sortedKeys returns a copy of the keys in ascending byte order.
// Used by Encode to produce canonical output.
func (d *Dict) sortedKeys() []string {
	keys := make([]string, len(d.keys))
	copy(keys, d.keys)
	sort.Strings(keys)
	return keys
}
