package bencode

import (
	"math/big"
	"testing"
)

// TestEncodeIntegers tests the exact wire form of integer boundaries
func TestEncodeIntegers(t *testing.T) {
	cases := map[string]struct {
		value Value
		want  string
	}{
		"zero":     {Integer(0), "i0e"},
		"positive": {Integer(42), "i42e"},
		"negative": {Integer(-5), "i-5e"},
		"max64":    {Integer(9223372036854775807), "i9223372036854775807e"},
		"min64":    {Integer(-9223372036854775808), "i-9223372036854775808e"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			data, err := Encode(tc.value)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if string(data) != tc.want {
				t.Errorf("Encode = %q, want %q", data, tc.want)
			}
		})
	}
}

// TestEncodeBigInteger tests that integers beyond 64-bit magnitude encode exactly
func TestEncodeBigInteger(t *testing.T) {
	huge, ok := new(big.Int).SetString("123456789012345678901234567890", 10)
	if !ok {
		t.Fatal("failed to construct big integer")
	}

	data, err := Encode(BigInteger(huge))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if string(data) != "i123456789012345678901234567890e" {
		t.Errorf("Encode = %q", data)
	}
}

// TestEncodeBytes tests byte string encoding including the empty string
func TestEncodeBytes(t *testing.T) {
	cases := map[string]struct {
		value Value
		want  string
	}{
		"empty":  {Bytes([]byte{}), "0:"},
		"text":   {String("spam"), "4:spam"},
		"binary": {Bytes([]byte{0x00, 0xff}), "2:\x00\xff"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			data, err := Encode(tc.value)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if string(data) != tc.want {
				t.Errorf("Encode = %q, want %q", data, tc.want)
			}
		})
	}
}

// TestEncodeList tests list encoding
func TestEncodeList(t *testing.T) {
	data, err := Encode(List(String("spam"), Integer(42)))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if string(data) != "l4:spami42ee" {
		t.Errorf("Encode = %q", data)
	}

	// empty list
	data, err = Encode(List())
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if string(data) != "le" {
		t.Errorf("Encode = %q", data)
	}
}

// TestEncodeDictCanonicalOrder tests that keys are emitted in ascending
// byte order regardless of insertion order
func TestEncodeDictCanonicalOrder(t *testing.T) {
	d := NewDict()
	d.Set("zebra", Integer(1))
	d.Set("apple", Integer(2))
	d.Set("mango", Integer(3))

	data, err := EncodeDict(d)
	if err != nil {
		t.Fatalf("EncodeDict failed: %v", err)
	}
	want := "d5:applei2e5:mangoi3e5:zebrai1ee"
	if string(data) != want {
		t.Errorf("EncodeDict = %q, want %q", data, want)
	}

	// insertion order must stay untouched by encoding
	keys := d.Keys()
	if keys[0] != "zebra" || keys[1] != "apple" || keys[2] != "mango" {
		t.Errorf("encoding changed iteration order: %v", keys)
	}
}

// TestEncodeNested tests a nested composite value
func TestEncodeNested(t *testing.T) {
	inner := NewDict()
	inner.Set("id", String("abc"))

	d := NewDict()
	d.Set("a", DictValue(inner))
	d.Set("l", List(String("x"), List()))

	data, err := EncodeDict(d)
	if err != nil {
		t.Fatalf("EncodeDict failed: %v", err)
	}
	want := "d1:ad2:id3:abce1:ll1:xleee"
	if string(data) != want {
		t.Errorf("EncodeDict = %q, want %q", data, want)
	}
}

// TestEncodeInvalidValue tests that the zero Value is rejected
func TestEncodeInvalidValue(t *testing.T) {
	if _, err := Encode(Value{}); err == nil {
		t.Error("expected error encoding invalid value")
	}

	// nested invalid values must be rejected as well
	if _, err := Encode(List(Integer(1), Value{})); err == nil {
		t.Error("expected error encoding list with invalid item")
	}
}
