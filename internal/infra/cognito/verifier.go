package cognito

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"sync"

	"github.com/golang-jwt/jwt/v5"

	"github.com/thetajwar2003/SpendWiseApi/internal/domain"
)

// jwk is a single RSA key from the user pool's JWKS document.
type jwk struct {
	Kid string `json:"kid"`
	Kty string `json:"kty"`
	N   string `json:"n"`
	E   string `json:"e"`
}

type jwksDocument struct {
	Keys []jwk `json:"keys"`
}

// Verifier validates Cognito access tokens against the user pool's JWKS.
// Keys are fetched lazily and cached for the process lifetime; Cognito
// rotates signing keys rarely enough that a restart suffices.
type Verifier struct {
	httpClient *http.Client
	issuer     string
	clientID   string

	mu   sync.RWMutex
	keys map[string]*rsa.PublicKey
}

// NewVerifier creates a token verifier for the given user pool.
func NewVerifier(httpClient *http.Client, region, userPoolID, clientID string) *Verifier {
	return &Verifier{
		httpClient: httpClient,
		issuer:     fmt.Sprintf("https://cognito-idp.%s.amazonaws.com/%s", region, userPoolID),
		clientID:   clientID,
		keys:       make(map[string]*rsa.PublicKey),
	}
}

// Verify checks the token's signature and claims and returns the subject
// (the Cognito user id).
func (v *Verifier) Verify(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, v.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(v.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", &domain.ErrUnauthorized{Message: "invalid access token"}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", &domain.ErrUnauthorized{Message: "invalid access token"}
	}
	if use, _ := claims["token_use"].(string); use != "access" {
		return "", &domain.ErrUnauthorized{Message: "token is not an access token"}
	}
	if clientID, _ := claims["client_id"].(string); clientID != v.clientID {
		return "", &domain.ErrUnauthorized{Message: "token issued for another client"}
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", &domain.ErrUnauthorized{Message: "token has no subject"}
	}
	return sub, nil
}

func (v *Verifier) keyFunc(token *jwt.Token) (any, error) {
	kid, _ := token.Header["kid"].(string)
	if kid == "" {
		return nil, fmt.Errorf("token header has no kid")
	}

	v.mu.RLock()
	key, ok := v.keys[kid]
	v.mu.RUnlock()
	if ok {
		return key, nil
	}

	if err := v.refreshKeys(context.Background()); err != nil {
		return nil, err
	}

	v.mu.RLock()
	key, ok = v.keys[kid]
	v.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("signing key %s not found in JWKS", kid)
	}
	return key, nil
}

// refreshKeys fetches the pool's JWKS document and rebuilds the key cache.
func (v *Verifier) refreshKeys(ctx context.Context) error {
	url := v.issuer + "/.well-known/jwks.json"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetching JWKS: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetching JWKS: unexpected status %d", resp.StatusCode)
	}

	var doc jwksDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return fmt.Errorf("decoding JWKS: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(doc.Keys))
	for _, k := range doc.Keys {
		if k.Kty != "RSA" {
			continue
		}
		pub, err := parseRSAKey(k)
		if err != nil {
			return fmt.Errorf("parsing JWKS key %s: %w", k.Kid, err)
		}
		keys[k.Kid] = pub
	}

	v.mu.Lock()
	v.keys = keys
	v.mu.Unlock()
	return nil
}

func parseRSAKey(k jwk) (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(k.N)
	if err != nil {
		return nil, fmt.Errorf("modulus: %w", err)
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(k.E)
	if err != nil {
		return nil, fmt.Errorf("exponent: %w", err)
	}

	e := 0
	for _, b := range eBytes {
		e = e<<8 | int(b)
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: e,
	}, nil
}
