// Package identity generates the random identifiers used by the DHT
// protocol: 160-bit node identifiers and 4-byte transaction identifiers.
//
// Node identifiers are derived by hashing a cryptographically random
// seed together with a wall-clock timestamp through SHA-1, matching the
// 160-bit identifier space of the surrounding protocol. They are plain
// immutable values: components that need an identity receive it
// explicitly at construction time.
package identity
