package utils

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	tok, err := GenerateToken(42, "customer", "s3cret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	claims, err := ParseToken(tok, "s3cret")
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != 42 || claims.Role != "customer" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestParseToken_Rejects(t *testing.T) {
	good, _ := GenerateToken(1, "admin", "s3cret", time.Hour)
	expired, _ := GenerateToken(1, "admin", "s3cret", -time.Minute)

	cases := map[string]struct{ token, secret string }{
		"wrong secret": {good, "other"},
		"expired":      {expired, "s3cret"},
		"garbage":      {"not.a.token", "s3cret"},
	}
	for name, tc := range cases {
		if _, err := ParseToken(tc.token, tc.secret); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}
