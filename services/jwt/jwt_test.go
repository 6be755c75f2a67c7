package jwt

import "testing"

const testSecret = "test-secret"

func TestTokenPairRoundTrip(t *testing.T) {
	access, refresh, err := GenerateTokenPair("user@example.com", testSecret, false, 42, "User")
	if err != nil {
		t.Fatal(err)
	}
	if access == "" || refresh == "" || access == refresh {
		t.Fatalf("unexpected tokens: access=%q refresh=%q", access, refresh)
	}

	claims, err := ValidateAndGetClaims(access, testSecret)
	if err != nil {
		t.Fatal(err)
	}
	if claims["email"] != "user@example.com" || claims["role"] != "User" {
		t.Errorf("claims = %v", claims)
	}
	if id, ok := claims["id"].(float64); !ok || uint(id) != 42 {
		t.Errorf("id claim = %v", claims["id"])
	}

	if _, err := ValidateAndGetClaims(access, "wrong-secret"); err == nil {
		t.Error("token accepted with wrong secret")
	}
}

func TestPasswordResetTokenRoundTrip(t *testing.T) {
	token, err := GeneratePasswordResetToken(7, testSecret)
	if err != nil {
		t.Fatal(err)
	}

	id, err := ValidatePasswordResetToken(token, testSecret)
	if err != nil {
		t.Fatal(err)
	}
	if id != 7 {
		t.Errorf("id = %d, want 7", id)
	}

	// A reset validator must not accept other token types.
	access, _, err := GenerateTokenPair("user@example.com", testSecret, false, 7, "User")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ValidatePasswordResetToken(access, testSecret); err == nil {
		t.Error("access token accepted as reset token")
	}
}

func TestVerificationTokenRoundTrip(t *testing.T) {
	token, err := GenerateVerificationToken("user@example.com", testSecret)
	if err != nil {
		t.Fatal(err)
	}

	email, err := ValidateVerificationToken(token, testSecret)
	if err != nil {
		t.Fatal(err)
	}
	if email != "user@example.com" {
		t.Errorf("email = %q", email)
	}

	reset, err := GeneratePasswordResetToken(7, testSecret)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ValidateVerificationToken(reset, testSecret); err == nil {
		t.Error("reset token accepted as verification token")
	}
}
