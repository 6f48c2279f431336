package model

import (
	"testing"
)

func TestStatusString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status Status
		want   string
	}{
		{StatusSubmitted, "Submitted"},
		{StatusApproved, "Approved"},
		{StatusRejected, "Rejected"},
		{Status(3), "Unknown"},
		{Status(200), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Fatalf("Status(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestStatusValidAndTerminal(t *testing.T) {
	t.Parallel()

	if !StatusSubmitted.Valid() || !StatusApproved.Valid() || !StatusRejected.Valid() {
		t.Fatal("defined statuses must be valid")
	}
	if Status(3).Valid() {
		t.Fatal("status code 3 must be invalid")
	}
	if StatusSubmitted.Terminal() {
		t.Fatal("Submitted must not be terminal")
	}
	if !StatusApproved.Terminal() || !StatusRejected.Terminal() {
		t.Fatal("Approved and Rejected must be terminal")
	}
}

func TestParseStatus(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"Submitted", "Approved", "Rejected"} {
		status, err := ParseStatus(name)
		if err != nil {
			t.Fatalf("ParseStatus(%q) error: %v", name, err)
		}
		if status.String() != name {
			t.Fatalf("round trip mismatch: %q -> %q", name, status.String())
		}
	}

	if _, err := ParseStatus("approved"); err == nil {
		t.Fatal("expected error for lowercase status name")
	}
	if _, err := ParseStatus(""); err == nil {
		t.Fatal("expected error for empty status name")
	}
}

func TestHashCustomerID(t *testing.T) {
	t.Parallel()

	h := HashCustomerID("USER123")
	const want = "0xd4a45a225e0f0e11e0f940a412a0caaa13549ba42a559a5bd0892ba482c7cae6"
	if h.Hex() != want {
		t.Fatalf("unexpected digest: %s", h.Hex())
	}

	if HashCustomerID("USER123") != h {
		t.Fatal("hashing must be deterministic")
	}
	if HashCustomerID("USER124") == h {
		t.Fatal("distinct identifiers must not collide on trivial input")
	}
}

func TestParseCustomerHash(t *testing.T) {
	t.Parallel()

	h := HashCustomerID("alice")

	parsed, err := ParseCustomerHash(h.Hex())
	if err != nil {
		t.Fatalf("ParseCustomerHash error: %v", err)
	}
	if parsed != h {
		t.Fatal("prefixed round trip mismatch")
	}

	parsed, err = ParseCustomerHash(h.Hex()[2:])
	if err != nil {
		t.Fatalf("ParseCustomerHash without prefix error: %v", err)
	}
	if parsed != h {
		t.Fatal("bare round trip mismatch")
	}

	if _, err := ParseCustomerHash("0xzz"); err == nil {
		t.Fatal("expected error for non-hex input")
	}
	if _, err := ParseCustomerHash("0xabcd"); err == nil {
		t.Fatal("expected error for short input")
	}
}
