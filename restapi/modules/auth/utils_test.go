package auth

import "testing"

func TestPasswordHashRoundtrip(t *testing.T) {
	hash, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !CheckPasswordHash("secret1", hash) {
		t.Error("correct password rejected")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Error("wrong password accepted")
	}
}

func TestJWTRoundtrip(t *testing.T) {
	token, err := GenerateJWT("acct-1", "publisher")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ValidateJWT(token)
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}
	if claims.Subject != "acct-1" {
		t.Errorf("subject = %q, want acct-1", claims.Subject)
	}
	if claims.Role != "publisher" {
		t.Errorf("role = %q, want publisher", claims.Role)
	}
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	if _, err := ValidateJWT("not.a.token"); err == nil {
		t.Error("expected error for malformed token")
	}
}

func TestResetTokenHashing(t *testing.T) {
	token, hash := GenerateResetToken()
	if token == "" || hash == "" {
		t.Fatal("empty token or hash")
	}
	if token == hash {
		t.Error("raw token must not equal its stored hash")
	}
	if HashToken(token) != hash {
		t.Error("hash must be reproducible from the raw token")
	}

	_, other := GenerateResetToken()
	if other == hash {
		t.Error("two tokens produced the same hash")
	}
}
