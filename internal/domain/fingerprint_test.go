package domain

import (
	"strings"
	"testing"
)

func TestFingerprintDeterministic(t *testing.T) {
	a := Fingerprint("QmTest", 1700000000000, "photo.jpg")
	b := Fingerprint("QmTest", 1700000000000, "photo.jpg")
	if a != b {
		t.Fatalf("fingerprint must be deterministic: %s != %s", a, b)
	}
	if !strings.HasPrefix(a, "proof-") {
		t.Fatalf("expected proof- prefix got %s", a)
	}
}

func TestFingerprintVariesWithInput(t *testing.T) {
	base := Fingerprint("QmTest", 1700000000000, "photo.jpg")
	if Fingerprint("QmOther", 1700000000000, "photo.jpg") == base {
		t.Fatalf("fingerprint must depend on the cid")
	}
	if Fingerprint("QmTest", 1700000000001, "photo.jpg") == base {
		t.Fatalf("fingerprint must depend on the timestamp")
	}
	if Fingerprint("QmTest", 1700000000000, "other.jpg") == base {
		t.Fatalf("fingerprint must depend on the filename")
	}
}
