package identity

import (
	"crypto/rand"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"
)

// NodeIDSize is the length of a node identifier in bytes (160 bit)
const NodeIDSize = 20

// TransactionIDSize is the length of a transaction identifier in bytes
const TransactionIDSize = 4

// NodeID is a 160-bit node identifier. It is an immutable value type,
// scoped to one node's lifetime, and always passed explicitly rather
// than read from ambient state.
type NodeID [NodeIDSize]byte

// String returns the hex representation of the identifier
func (id NodeID) String() string {
	return hex.EncodeToString(id[:])
}

// Bytes returns the identifier as a byte slice
func (id NodeID) Bytes() []byte {
	return id[:]
}

// NodeIDFromBytes converts a raw 20-byte slice into a NodeID
func NodeIDFromBytes(b []byte) (NodeID, error) {
	var id NodeID
	if len(b) != NodeIDSize {
		return id, fmt.Errorf("identity: node id must be %d bytes, got %d", NodeIDSize, len(b))
	}
	copy(id[:], b)
	return id, nil
}

// ParseNodeID parses a hex-encoded node identifier
func ParseNodeID(s string) (NodeID, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return NodeID{}, fmt.Errorf("identity: invalid hex node id: %w", err)
	}
	return NodeIDFromBytes(b)
}

// GenerateNodeID produces a fresh node identifier by hashing a
// cryptographically random seed concatenated with the current wall-clock
// time through SHA-1. There is no determinism requirement, collision
// probability is negligible.
func GenerateNodeID() (NodeID, error) {
	seed := make([]byte, 32)
	if _, err := rand.Read(seed); err != nil {
		return NodeID{}, fmt.Errorf("identity: failed to read random seed: %w", err)
	}

	data := fmt.Sprintf("%s-%d", hex.EncodeToString(seed), time.Now().UnixNano())
	return NodeID(sha1.Sum([]byte(data))), nil
}

// GenerateTransactionID produces 4 cryptographically random bytes used
// to correlate one outgoing query with its response. Uniqueness among
// concurrently outstanding transactions is the caller's obligation.
func GenerateTransactionID() ([]byte, error) {
	t := make([]byte, TransactionIDSize)
	if _, err := rand.Read(t); err != nil {
		return nil, fmt.Errorf("identity: failed to read random transaction id: %w", err)
	}
	return t, nil
}
