package middleware

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// FetchPublicKey fetches the PEM encoded RSA public key served by the SSO at url.
func FetchPublicKey(url string) (*rsa.PublicKey, error) {
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch public key: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	// The response is a JSON object with a "key" field.
	keyResponse := struct {
		Key string `json:"key"`
	}{}
	if err := json.Unmarshal(body, &keyResponse); err != nil {
		return nil, fmt.Errorf("failed to unmarshal public key response: %w", err)
	}
	return ParsePublicKey([]byte(keyResponse.Key))
}

// ParsePublicKey decodes a PEM "PUBLIC KEY" block holding an RSA key.
func ParsePublicKey(pemBytes []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil || block.Type != "PUBLIC KEY" {
		return nil, fmt.Errorf("failed to decode PEM block containing public key")
	}

	pubKey, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}

	rsaPubKey, ok := pubKey.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("not an RSA public key")
	}
	return rsaPubKey, nil
}

// Verifier checks access tokens. Tokens are HS256 when a shared secret is
// configured, otherwise RS256 against the SSO public key.
type Verifier struct {
	secret []byte
	keyURL string

	mu     sync.Mutex
	rsaKey *rsa.PublicKey
}

func NewVerifier(secret, publicKeyURL string) *Verifier {
	return &Verifier{secret: []byte(secret), keyURL: publicKeyURL}
}

// NewRSAVerifier verifies with a key that is already known.
func NewRSAVerifier(key *rsa.PublicKey) *Verifier {
	return &Verifier{rsaKey: key}
}

func (v *Verifier) publicKey() (*rsa.PublicKey, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.rsaKey != nil {
		return v.rsaKey, nil
	}
	if v.keyURL == "" {
		return nil, errors.New("neither JWT_SECRET nor PUBLIC_KEY_URL is configured")
	}
	key, err := FetchPublicKey(v.keyURL)
	if err != nil {
		return nil, err
	}
	v.rsaKey = key
	return key, nil
}

func (v *Verifier) keyFunc(token *jwt.Token) (interface{}, error) {
	if len(v.secret) > 0 {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	}
	if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return v.publicKey()
}

// Verify parses tokenString and returns its claims when the signature and the
// registered claims (exp, nbf) are valid.
func (v *Verifier) Verify(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, v.keyFunc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse JWT: %w", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid JWT token")
	}
	return claims, nil
}
