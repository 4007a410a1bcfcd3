package bencode

import (
	"bytes"
	"errors"
	"math/big"
	"os"
	"path/filepath"
	"testing"
)

// TestDecodeIntegers tests integer decoding including negative values
func TestDecodeIntegers(t *testing.T) {
	cases := map[string]struct {
		data string
		want int64
	}{
		"zero":     {"i0e", 0},
		"positive": {"i42e", 42},
		"negative": {"i-5e", -5},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			v, err := Decode([]byte(tc.data))
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			got, ok := v.Int64()
			if !ok {
				t.Fatalf("expected integer, got %s", v.Kind())
			}
			if got != tc.want {
				t.Errorf("Decode = %d, want %d", got, tc.want)
			}
		})
	}
}

// TestDecodeBigInteger tests that integers beyond 64-bit magnitude round-trip
func TestDecodeBigInteger(t *testing.T) {
	huge, _ := new(big.Int).SetString("-340282366920938463463374607431768211456", 10)

	data, err := Encode(BigInteger(huge))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	v, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if v.Kind() != KindInteger || v.Integer().Cmp(huge) != 0 {
		t.Errorf("round trip = %s, want %s", v, huge)
	}
}

// TestDecodeBytes tests byte string decoding including the empty string
func TestDecodeBytes(t *testing.T) {
	v, err := Decode([]byte("0:"))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if v.Kind() != KindBytes || len(v.Bytes()) != 0 {
		t.Errorf("Decode(\"0:\") = %s", v)
	}

	v, err = Decode([]byte("4:spam"))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(v.Bytes(), []byte("spam")) {
		t.Errorf("Decode = %q", v.Bytes())
	}
}

// TestDecodeNested tests a nested composite value and that decode
// preserves stream order as dictionary iteration order
func TestDecodeNested(t *testing.T) {
	v, err := Decode([]byte("d3:keyl1:a1:bee"))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	want := NewDict()
	want.Set("key", List(String("a"), String("b")))
	if !v.Equal(DictValue(want)) {
		t.Errorf("Decode = %s", v)
	}

	// keys out of canonical order must be preserved in stream order
	v, err = Decode([]byte("d1:bi1e1:ai2ee"))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	keys := v.Dict().Keys()
	if len(keys) != 2 || keys[0] != "b" || keys[1] != "a" {
		t.Errorf("iteration order = %v, want stream order [b a]", keys)
	}
}

// TestDecodeMalformed tests that malformed input is rejected with a
// SyntaxError carrying a byte offset
func TestDecodeMalformed(t *testing.T) {
	cases := map[string]string{
		"missing integer terminator": "i10",
		"empty integer":              "ie",
		"integer leading plus":       "i+5e",
		"integer garbage":            "iabce",
		"length exceeds input":       "5:abc",
		"unknown marker":             "x",
		"unterminated length":        "12",
		"unterminated list":          "li1e",
		"unterminated dict":          "d3:key",
		"non-string dict key":        "di1ei2ee",
		"empty input":                "",
	}

	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(data))
			if err == nil {
				t.Fatalf("Decode(%q) succeeded, expected error", data)
			}
			var syntaxErr *SyntaxError
			if !errors.As(err, &syntaxErr) {
				t.Fatalf("expected *SyntaxError, got %T: %v", err, err)
			}
			if syntaxErr.Offset < 0 || syntaxErr.Offset > int64(len(data)) {
				t.Errorf("offset %d out of range for input of %d bytes", syntaxErr.Offset, len(data))
			}
		})
	}
}

// TestDecoderCursorPosition tests that each Decode call consumes exactly
// one value, leaving the cursor past its terminator
func TestDecoderCursorPosition(t *testing.T) {
	dec := NewDecoder(bytes.NewReader([]byte("i1e4:spamle")))

	v, err := dec.Decode()
	if err != nil {
		t.Fatalf("first Decode failed: %v", err)
	}
	if got, _ := v.Int64(); got != 1 {
		t.Errorf("first value = %s", v)
	}
	if dec.Offset() != 3 {
		t.Errorf("offset after first value = %d, want 3", dec.Offset())
	}

	v, err = dec.Decode()
	if err != nil {
		t.Fatalf("second Decode failed: %v", err)
	}
	if !bytes.Equal(v.Bytes(), []byte("spam")) {
		t.Errorf("second value = %s", v)
	}

	v, err = dec.Decode()
	if err != nil {
		t.Fatalf("third Decode failed: %v", err)
	}
	if v.Kind() != KindList || len(v.List()) != 0 {
		t.Errorf("third value = %s", v)
	}

	// stream is exhausted now
	if _, err := dec.Decode(); err == nil {
		t.Error("expected error decoding past end of stream")
	}
}

// TestRoundTrip tests content equality of decode(encode(v)) for
// representative values of every variant
func TestRoundTrip(t *testing.T) {
	unsorted := NewDict()
	unsorted.Set("z", Integer(1))
	unsorted.Set("a", List(String("nested"), Integer(-7)))

	values := []Value{
		Integer(0),
		Integer(-123456789),
		Bytes([]byte{}),
		Bytes([]byte{0xde, 0xad, 0xbe, 0xef}),
		String("hello"),
		List(),
		List(Integer(1), String("two"), List(Integer(3))),
		DictValue(NewDict()),
		DictValue(unsorted),
	}

	for i, v := range values {
		data, err := Encode(v)
		if err != nil {
			t.Errorf("value %d: Encode failed: %v", i, err)
			continue
		}
		back, err := Decode(data)
		if err != nil {
			t.Errorf("value %d: Decode failed: %v", i, err)
			continue
		}
		if !back.Equal(v) {
			t.Errorf("value %d: round trip mismatch:\noriginal: %s\nresult:   %s", i, v, back)
		}
	}
}

// TestDecodeDict tests the top-level dictionary requirement
func TestDecodeDict(t *testing.T) {
	if _, err := DecodeDict([]byte("i1e")); err == nil {
		t.Error("expected error for non-dictionary top level")
	}

	d, err := DecodeDict([]byte("d1:ti0ee"))
	if err != nil {
		t.Fatalf("DecodeDict failed: %v", err)
	}
	if d.Len() != 1 {
		t.Errorf("Len = %d, want 1", d.Len())
	}
}

// TestDecodeFile tests the whole-file torrent metadata entry point
func TestDecodeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.torrent")
	content := "d8:announce20:udp://tracker.test:14:infod4:name4:test6:lengthi1024eee"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	d, err := DecodeFile(path)
	if err != nil {
		t.Fatalf("DecodeFile failed: %v", err)
	}
	announce, ok := d.Get("announce")
	if !ok || announce.Text() != "udp://tracker.test:1" {
		t.Errorf("announce = %v", announce)
	}
	info, ok := d.Get("info")
	if !ok || info.Kind() != KindDict {
		t.Fatalf("info = %v", info)
	}
	length, _ := info.Dict().Get("length")
	if got, _ := length.Int64(); got != 1024 {
		t.Errorf("info.length = %s", length)
	}

	if _, err := DecodeFile(filepath.Join(t.TempDir(), "missing.torrent")); err == nil {
		t.Error("expected error for missing file")
	}
}
