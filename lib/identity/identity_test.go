package identity

import (
	"testing"
)

// TestGenerateNodeID tests length and pairwise distinctness
func TestGenerateNodeID(t *testing.T) {
	seen := map[NodeID]bool{}
	for i := 0; i < 100; i++ {
		id, err := GenerateNodeID()
		if err != nil {
			t.Fatalf("GenerateNodeID failed: %v", err)
		}
		if len(id.Bytes()) != NodeIDSize {
			t.Fatalf("node id has %d bytes, want %d", len(id.Bytes()), NodeIDSize)
		}
		if seen[id] {
			t.Fatalf("duplicate node id generated: %s", id)
		}
		seen[id] = true
	}
}

// TestGenerateTransactionID tests the 4-byte shape
func TestGenerateTransactionID(t *testing.T) {
	tid, err := GenerateTransactionID()
	if err != nil {
		t.Fatalf("GenerateTransactionID failed: %v", err)
	}
	if len(tid) != TransactionIDSize {
		t.Errorf("transaction id has %d bytes, want %d", len(tid), TransactionIDSize)
	}
}

// TestNodeIDRoundTrip tests hex parse/format round trip
func TestNodeIDRoundTrip(t *testing.T) {
	id, err := GenerateNodeID()
	if err != nil {
		t.Fatalf("GenerateNodeID failed: %v", err)
	}

	parsed, err := ParseNodeID(id.String())
	if err != nil {
		t.Fatalf("ParseNodeID failed: %v", err)
	}
	if parsed != id {
		t.Errorf("round trip mismatch: %s != %s", parsed, id)
	}

	if _, err := ParseNodeID("zz"); err == nil {
		t.Error("expected error for invalid hex")
	}
	if _, err := ParseNodeID("abcd"); err == nil {
		t.Error("expected error for short id")
	}
}
