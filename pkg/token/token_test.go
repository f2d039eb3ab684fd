package token

import (
	"testing"
	"time"
)

func TestIssueAndParse(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)

	signed, err := issuer.Issue("user-123")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	userID, err := issuer.Parse(signed)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if userID != "user-123" {
		t.Errorf("subject = %q, want %q", userID, "user-123")
	}
}

func TestParse_WrongSecret(t *testing.T) {
	signed, err := NewIssuer("secret-a", time.Hour).Issue("user-123")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := NewIssuer("secret-b", time.Hour).Parse(signed); err == nil {
		t.Fatal("expected error for token signed with a different secret")
	}
}

func TestParse_Expired(t *testing.T) {
	signed, err := NewIssuer("test-secret", -time.Minute).Issue("user-123")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := NewIssuer("test-secret", -time.Minute).Parse(signed); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestParse_Garbage(t *testing.T) {
	if _, err := NewIssuer("test-secret", time.Hour).Parse("not-a-token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
