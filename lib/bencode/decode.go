package bencode

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"
	"math/big"
	"os"
)

// --------------------------------------------------------------------------
// Error Type
// --------------------------------------------------------------------------

// SyntaxError describes malformed bencode input. Offset is the byte
// position in the stream at which the error was detected, counted from
// the start of the decoder's input.
type SyntaxError struct {
	Offset int64
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("bencode: %s at offset %d", e.Msg, e.Offset)
}

// --------------------------------------------------------------------------
// Decoder
// --------------------------------------------------------------------------

// Decoder reads bencode values from a stream. Decoding is single-pass
// recursive descent: each call to Decode consumes exactly one
// well-formed value and leaves the cursor positioned immediately past
// its terminator, so consecutive values can be read with repeated
// calls and composite values decode their children with the same
// routine.
type Decoder struct {
	r      *bufio.Reader
	offset int64
}

// NewDecoder creates a decoder reading from r
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

// Offset returns the number of bytes consumed so far
func (d *Decoder) Offset() int64 {
	return d.offset
}

// Decode reads the next value from the stream
func (d *Decoder) Decode() (Value, error) {
	b, err := d.readByte()
	if err != nil {
		return Value{}, d.syntaxErr("unexpected end of input")
	}

	switch {
	case b == 'i':
		return d.decodeInteger()
	case b == 'l':
		return d.decodeList()
	case b == 'd':
		return d.decodeDict()
	case b >= '0' && b <= '9':
		return d.decodeBytes(b)
	default:
		return Value{}, &SyntaxError{Offset: d.offset - 1, Msg: fmt.Sprintf("invalid marker byte %q", b)}
	}
}

// --------------------------------------------------------------------------
// Per-Variant Decoding
// --------------------------------------------------------------------------

// decodeInteger reads the digits of an i...e integer, the marker byte
// has already been consumed
func (d *Decoder) decodeInteger() (Value, error) {
	var digits []byte
	for {
		b, err := d.readByte()
		if err != nil {
			return Value{}, d.syntaxErr("unterminated integer")
		}
		if b == 'e' {
			break
		}
		digits = append(digits, b)
	}

	if len(digits) == 0 {
		return Value{}, d.syntaxErr("empty integer")
	}
	if digits[0] == '+' {
		return Value{}, d.syntaxErr("integer with leading '+'")
	}

	num, ok := new(big.Int).SetString(string(digits), 10)
	if !ok {
		return Value{}, d.syntaxErr(fmt.Sprintf("invalid integer %q", digits))
	}
	return Value{kind: KindInteger, num: num}, nil
}

// decodeBytes reads a <length>:<raw> byte string, first is the already
// consumed first digit of the length prefix
func (d *Decoder) decodeBytes(first byte) (Value, error) {
	digits := []byte{first}
	for {
		b, err := d.readByte()
		if err != nil {
			return Value{}, d.syntaxErr("unterminated length prefix")
		}
		if b == ':' {
			break
		}
		if b < '0' || b > '9' {
			return Value{}, &SyntaxError{Offset: d.offset - 1, Msg: fmt.Sprintf("invalid length prefix byte %q", b)}
		}
		digits = append(digits, b)
	}

	// lengths are unbounded precision on the wire, but a declared
	// length beyond addressable memory can never be satisfied by the
	// remaining stream
	length, ok := new(big.Int).SetString(string(digits), 10)
	if !ok || !length.IsInt64() || length.Int64() > math.MaxInt {
		return Value{}, d.syntaxErr(fmt.Sprintf("unsatisfiable length %s", digits))
	}

	raw := make([]byte, length.Int64())
	n, err := io.ReadFull(d.r, raw)
	d.offset += int64(n)
	if err != nil {
		return Value{}, d.syntaxErr(fmt.Sprintf("stream exhausted, declared length %s", digits))
	}
	return Value{kind: KindBytes, raw: raw}, nil
}

// decodeList reads list items until the 'e' terminator
func (d *Decoder) decodeList() (Value, error) {
	items := []Value{}
	for {
		done, err := d.consumeTerminator()
		if err != nil {
			return Value{}, d.syntaxErr("unterminated list")
		}
		if done {
			return Value{kind: KindList, list: items}, nil
		}
		item, err := d.Decode()
		if err != nil {
			return Value{}, err
		}
		items = append(items, item)
	}
}

// decodeDict reads key/value pairs until the 'e' terminator. Keys must
// be byte strings, the only key shape the grammar produces. Stream
// order becomes the iteration order of the resulting Dict.
func (d *Decoder) decodeDict() (Value, error) {
	dict := NewDict()
	for {
		done, err := d.consumeTerminator()
		if err != nil {
			return Value{}, d.syntaxErr("unterminated dictionary")
		}
		if done {
			return Value{kind: KindDict, dict: dict}, nil
		}

		key, err := d.Decode()
		if err != nil {
			return Value{}, err
		}
		if key.Kind() != KindBytes {
			return Value{}, d.syntaxErr(fmt.Sprintf("dictionary key must be a byte string, got %s", key.Kind()))
		}

		val, err := d.Decode()
		if err != nil {
			return Value{}, err
		}
		dict.Set(key.Text(), val)
	}
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// consumeTerminator reports whether the next byte is the 'e' terminator
// of a composite value, consuming it only if so
func (d *Decoder) consumeTerminator() (bool, error) {
	b, err := d.readByte()
	if err != nil {
		return false, err
	}
	if b == 'e' {
		return true, nil
	}
	d.offset--
	if err := d.r.UnreadByte(); err != nil {
		return false, err
	}
	return false, nil
}

func (d *Decoder) readByte() (byte, error) {
	b, err := d.r.ReadByte()
	if err != nil {
		return 0, err
	}
	d.offset++
	return b, nil
}

func (d *Decoder) syntaxErr(msg string) *SyntaxError {
	return &SyntaxError{Offset: d.offset, Msg: msg}
}

// --------------------------------------------------------------------------
// Convenience Entry Points
// --------------------------------------------------------------------------

// Decode decodes exactly one value from data
func Decode(data []byte) (Value, error) {
	return NewDecoder(bytes.NewReader(data)).Decode()
}

// DecodeDict decodes one value from data and requires it to be a
// dictionary, the top-level shape of every KRPC datagram
func DecodeDict(data []byte) (*Dict, error) {
	v, err := Decode(data)
	if err != nil {
		return nil, err
	}
	if v.Kind() != KindDict {
		return nil, fmt.Errorf("bencode: expected dictionary, got %s", v.Kind())
	}
	return v.Dict(), nil
}

// DecodeFile reads a torrent metadata file as a single top-level
// bencoded dictionary via the streaming decoder
func DecodeFile(path string) (*Dict, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	v, err := NewDecoder(f).Decode()
	if err != nil {
		return nil, err
	}
	if v.Kind() != KindDict {
		return nil, fmt.Errorf("bencode: torrent file must contain a dictionary, got %s", v.Kind())
	}
	return v.Dict(), nil
}
