package jwt

import (
	"strings"
	"testing"
	"time"
)

func TestSignAndParse(t *testing.T) {
	SetSecret("test-secret")

	token, err := Sign(42, "sess-abc", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	claims, err := Parse(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.SessionID != "sess-abc" {
		t.Errorf("SessionID = %q, want sess-abc", claims.SessionID)
	}
	if claims.Subject != "42" {
		t.Errorf("Subject = %q, want 42", claims.Subject)
	}
}

func TestParseRejectsExpired(t *testing.T) {
	SetSecret("test-secret")

	token, err := Sign(1, "sess", -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Parse(token); err == nil {
		t.Error("expired token accepted")
	}
}

func TestParseRejectsTampered(t *testing.T) {
	SetSecret("test-secret")

	token, err := Sign(1, "sess", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}
	tampered := parts[0] + "." + parts[1] + ".AAAA" + parts[2][4:]
	if _, err := Parse(tampered); err == nil {
		t.Error("tampered signature accepted")
	}
}

func TestParseRejectsForeignSecret(t *testing.T) {
	SetSecret("secret-one")
	token, err := Sign(1, "sess", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	SetSecret("secret-two")
	defer SetSecret("secret-one")
	if _, err := Parse(token); err == nil {
		t.Error("token signed with another secret accepted")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	SetSecret("test-secret")
	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := Parse(tok); err == nil {
			t.Errorf("Parse(%q) accepted", tok)
		}
	}
}
