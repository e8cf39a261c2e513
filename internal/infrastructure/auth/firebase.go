package auth

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// certsURL serves the x509 certificates Google uses to sign Firebase
// ID tokens, keyed by kid.
const certsURL = "https://www.googleapis.com/robot/v1/metadata/x509/securetoken@system.gserviceaccount.com"

const issuerPrefix = "https://securetoken.google.com/"

var maxAgePattern = regexp.MustCompile(`max-age=(\d+)`)

// idTokenClaims are the claims carried by a Firebase ID token that we
// care about.
type idTokenClaims struct {
	jwt.RegisteredClaims
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
}

// FirebaseVerifier verifies Firebase ID tokens for a single project.
// Signing certificates are cached and refreshed according to the
// Cache-Control header Google returns.
type FirebaseVerifier struct {
	projectID string
	client    *http.Client

	mu           sync.RWMutex
	certs        map[string]*rsa.PublicKey
	certsExpires time.Time
}

// NewFirebaseVerifier creates a verifier for the given Firebase project
func NewFirebaseVerifier(projectID string) *FirebaseVerifier {
	return &FirebaseVerifier{
		projectID: projectID,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Verify checks the token signature, issuer, audience and expiry, and
// returns the verified identity.
func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (*VerifiedIdentity, error) {
	if idToken == "" {
		return nil, ErrInvalidToken
	}

	claims := &idTokenClaims{}
	token, err := jwt.ParseWithClaims(idToken, claims, func(t *jwt.Token) (interface{}, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, ErrInvalidToken
		}
		return v.signingKey(ctx, kid)
	},
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithIssuer(issuerPrefix+v.projectID),
		jwt.WithAudience(v.projectID),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, ErrKeyFetch) {
			return nil, err
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Subject == "" {
		return nil, ErrInvalidClaims
	}

	return &VerifiedIdentity{
		Subject: claims.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
	}, nil
}

// signingKey returns the public key for the given kid, refreshing the
// cert cache when stale.
func (v *FirebaseVerifier) signingKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	v.mu.RLock()
	key, ok := v.certs[kid]
	fresh := time.Now().Before(v.certsExpires)
	v.mu.RUnlock()

	if ok && fresh {
		return key, nil
	}

	if err := v.refreshCerts(ctx); err != nil {
		// Serve a cached key past its refresh window rather than
		// failing every request during a certs outage.
		if ok {
			return key, nil
		}
		return nil, err
	}

	v.mu.RLock()
	defer v.mu.RUnlock()
	key, ok = v.certs[kid]
	if !ok {
		return nil, ErrInvalidToken
	}
	return key, nil
}

// refreshCerts fetches and parses the current signing certificates
func (v *FirebaseVerifier) refreshCerts(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, certsURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrKeyFetch, err)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrKeyFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status %d", ErrKeyFetch, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrKeyFetch, err)
	}

	var raw map[string]string
	if err := json.Unmarshal(body, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrKeyFetch, err)
	}

	certs := make(map[string]*rsa.PublicKey, len(raw))
	for kid, certPEM := range raw {
		key, err := parseCertPublicKey(certPEM)
		if err != nil {
			continue
		}
		certs[kid] = key
	}
	if len(certs) == 0 {
		return fmt.Errorf("%w: no usable certificates", ErrKeyFetch)
	}

	v.mu.Lock()
	v.certs = certs
	v.certsExpires = time.Now().Add(cacheTTL(resp.Header.Get("Cache-Control")))
	v.mu.Unlock()

	return nil
}

// parseCertPublicKey extracts the RSA public key from a PEM certificate
func parseCertPublicKey(certPEM string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(certPEM))
	if block == nil {
		return nil, errors.New("no PEM block found")
	}
	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, err
	}
	key, ok := cert.PublicKey.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("certificate does not carry an RSA key")
	}
	return key, nil
}

// cacheTTL derives the cache lifetime from a Cache-Control header,
// falling back to one hour.
func cacheTTL(cacheControl string) time.Duration {
	match := maxAgePattern.FindStringSubmatch(cacheControl)
	if match == nil {
		return time.Hour
	}
	seconds, err := strconv.Atoi(match[1])
	if err != nil || seconds <= 0 {
		return time.Hour
	}
	return time.Duration(seconds) * time.Second
}

var _ TokenVerifier = (*FirebaseVerifier)(nil)
