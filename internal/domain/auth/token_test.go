package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("secret", Claims{UserID: 42, Email: "jo@example.com", Role: "employee"}, TokenTTL)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ParseToken("secret", token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("expected user 42, got %d", claims.UserID)
	}
	if claims.Email != "jo@example.com" {
		t.Fatalf("unexpected email %q", claims.Email)
	}
	if claims.Role != "employee" {
		t.Fatalf("unexpected role %q", claims.Role)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret", Claims{UserID: 1}, TokenTTL)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := ParseToken("other", token); err == nil {
		t.Fatal("expected verification failure with the wrong secret")
	}
}

func TestParseTokenExpired(t *testing.T) {
	token, err := GenerateToken("secret", Claims{UserID: 1}, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := ParseToken("secret", token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "hunter22" {
		t.Fatal("hash must not equal the plaintext")
	}
	if err := CheckPassword(hash, "hunter22"); err != nil {
		t.Fatalf("CheckPassword: %v", err)
	}
	if err := CheckPassword(hash, "wrong"); err == nil {
		t.Fatal("expected mismatch for wrong password")
	}
}

func TestIsAdminRole(t *testing.T) {
	cases := []struct {
		role string
		want bool
	}{
		{"admin", true},
		{"Admin", true},
		{" HR Manager ", true},
		{"hr manager", true},
		{"employee", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := IsAdminRole(tc.role); got != tc.want {
			t.Fatalf("IsAdminRole(%q) = %v, want %v", tc.role, got, tc.want)
		}
	}
}
