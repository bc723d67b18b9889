package cognito

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"testing"

	"go.uber.org/zap"
)

func TestSecretHash(t *testing.T) {
	c := &Client{
		clientID:     "client-id",
		clientSecret: "client-secret",
		logger:       zap.NewNop(),
	}

	hash := c.secretHash("user@example.com")
	if hash == "" {
		t.Fatal("expected non-empty hash")
	}
	if _, err := base64.StdEncoding.DecodeString(hash); err != nil {
		t.Errorf("hash must be standard base64: %v", err)
	}

	// Same input, same hash; different username, different hash.
	if c.secretHash("user@example.com") != hash {
		t.Error("hash must be deterministic")
	}
	if c.secretHash("other@example.com") == hash {
		t.Error("hash must depend on the username")
	}
}

func TestParseRSAKey(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	k := jwk{
		Kid: "test-key",
		Kty: "RSA",
		N:   base64.RawURLEncoding.EncodeToString(priv.PublicKey.N.Bytes()),
		E:   base64.RawURLEncoding.EncodeToString([]byte{0x01, 0x00, 0x01}),
	}

	pub, err := parseRSAKey(k)
	if err != nil {
		t.Fatalf("parse key: %v", err)
	}
	if pub.N.Cmp(priv.PublicKey.N) != 0 {
		t.Error("modulus mismatch")
	}
	if pub.E != priv.PublicKey.E {
		t.Errorf("exponent mismatch: got %d, want %d", pub.E, priv.PublicKey.E)
	}
}

func TestParseRSAKey_BadEncoding(t *testing.T) {
	_, err := parseRSAKey(jwk{Kid: "bad", Kty: "RSA", N: "!!!", E: "AQAB"})
	if err == nil {
		t.Fatal("expected error for invalid base64 modulus")
	}
}
