// Package bencode implements the bencode serialization format used by
// the BitTorrent protocol family: integers, byte strings, lists and
// dictionaries over a length-prefixed wire encoding.
//
// The package focuses on:
//   - Bit-exact interoperability with other bencode implementations
//   - A closed tagged-union value model with exhaustive per-variant handling
//   - Streaming single-pass decoding with byte-offset error reporting
//   - Arbitrary precision integers without an artificial bit-width limit
//
// Key Components:
//
//   - Value: immutable union over the four wire variants. Constructed via
//     the factory functions (Integer, Bytes, String, List, DictValue) and
//     inspected via Kind plus the per-variant accessors.
//
//   - Dict: insertion-ordered dictionary. Encoding always emits keys in
//     ascending byte order regardless of insertion order, while decoding
//     preserves stream order as iteration order. This asymmetry matches
//     the format's canonical form and is relied upon by protocol code.
//
//   - Decoder: recursive-descent stream decoder. Each Decode call consumes
//     exactly one well-formed value and leaves the cursor immediately past
//     its terminator. Malformed input is reported as a *SyntaxError
//     carrying the byte offset for diagnosis.
//
// Byte strings are always decoded as opaque byte sequences. Bencode has
// no native text/bytes distinction, so interpretation of specific fields
// (peer ids, transaction ids, compact node info) is left to the caller.
//
// Thread Safety:
//
//	Values and Dicts are not synchronized. A Decoder must not be shared
//	across goroutines. Encoding is a pure function of its input.
package bencode
