package payment

import (
	"crypto/sha512"
	"encoding/hex"
	"testing"
)

func TestSignature(t *testing.T) {
	got := Signature("ORDER-1700000000000-42", "200", "82000.00", "SB-Mid-server-abc")

	sum := sha512.Sum512([]byte("ORDER-1700000000000-42" + "200" + "82000.00" + "SB-Mid-server-abc"))
	want := hex.EncodeToString(sum[:])

	if got != want {
		t.Fatalf("signature mismatch:\n got=%s\nwant=%s", got, want)
	}
	if len(got) != 128 {
		t.Fatalf("expected 128 hex chars, got %d", len(got))
	}
}

func TestSignature_KeyChangesDigest(t *testing.T) {
	a := Signature("o", "200", "100", "key-a")
	b := Signature("o", "200", "100", "key-b")
	if a == b {
		t.Fatal("different server keys must produce different signatures")
	}
}
