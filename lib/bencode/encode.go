package bencode

import (
	"fmt"
	"strconv"
)

// Encode serializes a value into its bencode wire representation.
// Dictionary keys are emitted in ascending byte order independent of
// insertion order. Encoding the zero (invalid) Value is a contract
// violation and returns an error.
func Encode(v Value) ([]byte, error) {
	return appendValue(nil, v)
}

// appendValue appends the wire form of one value to buf
func appendValue(buf []byte, v Value) ([]byte, error) {
	switch v.kind {
	case KindInteger:
		// i<decimal>e - big.Int formats without leading zeros or '+'
		buf = append(buf, 'i')
		buf = append(buf, v.num.String()...)
		return append(buf, 'e'), nil

	case KindBytes:
		// <length>:<raw bytes>
		buf = strconv.AppendInt(buf, int64(len(v.raw)), 10)
		buf = append(buf, ':')
		return append(buf, v.raw...), nil

	case KindList:
		buf = append(buf, 'l')
		for i, item := range v.list {
			var err error
			if buf, err = appendValue(buf, item); err != nil {
				return nil, fmt.Errorf("list item %d: %w", i, err)
			}
		}
		return append(buf, 'e'), nil

	case KindDict:
		buf = append(buf, 'd')
		for _, key := range v.dict.sortedKeys() {
			var err error
			if buf, err = appendValue(buf, String(key)); err != nil {
				return nil, err
			}
			val, _ := v.dict.Get(key)
			if buf, err = appendValue(buf, val); err != nil {
				return nil, fmt.Errorf("dict key %q: %w", key, err)
			}
		}
		return append(buf, 'e'), nil

	default:
		return nil, fmt.Errorf("bencode: cannot encode invalid value")
	}
}

// EncodeDict serializes a dictionary, the usual top-level shape of
// every KRPC datagram and torrent metadata file
func EncodeDict(d *Dict) ([]byte, error) {
	return Encode(DictValue(d))
}
