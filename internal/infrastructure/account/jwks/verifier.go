package jwks

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strings"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/riskibarqy/season-tickets/internal/domain/user"
	"github.com/riskibarqy/season-tickets/internal/platform/logging"
	"github.com/riskibarqy/season-tickets/internal/usecase"
	"golang.org/x/sync/singleflight"
)

const (
	defaultKeyTTL        = time.Hour
	minRefreshInterval   = 30 * time.Second
	defaultPrincipalTTL  = 5 * time.Minute
	defaultCacheCapacity = 4096
)

type Config struct {
	HTTPClient *http.Client
	JWKSURL    string
	Issuer     string
	Audience   string
	// ClaimNamespace prefixes custom email and name claims, e.g.
	// "https://season-tickets/email".
	ClaimNamespace string
	KeyTTL         time.Duration
	Logger         *logging.Logger
}

// Verifier checks RS256 access tokens against a JSON Web Key Set.
type Verifier struct {
	httpClient *http.Client
	cfg        Config
	logger     *logging.Logger
	parser     *jwt.Parser
	principals *principalCache
	flight     singleflight.Group
	now        func() time.Time

	mu          sync.RWMutex
	keys        map[string]*rsa.PublicKey
	fetchedAt   time.Time
	lastAttempt time.Time
}

func NewVerifier(cfg Config) *Verifier {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if cfg.KeyTTL <= 0 {
		cfg.KeyTTL = defaultKeyTTL
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(30 * time.Second),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}

	return &Verifier{
		httpClient: httpClient,
		cfg:        cfg,
		logger:     logger,
		parser:     jwt.NewParser(opts...),
		principals: newPrincipalCache(defaultPrincipalTTL, defaultCacheCapacity),
		now:        time.Now,
	}
}

// VerifyAccessToken validates the signature and registered claims of token
// and returns who it was issued to.
func (v *Verifier) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	cacheKey := hashToken(token)
	if principal, ok := v.principals.Get(cacheKey, v.now()); ok {
		return principal, nil
	}

	claims := jwt.MapClaims{}
	parsed, err := v.parser.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		return v.key(ctx, kid)
	})
	if err != nil {
		if errors.Is(err, usecase.ErrDependencyUnavailable) {
			return user.Principal{}, err
		}
		return user.Principal{}, fmt.Errorf("%w: %v", usecase.ErrUnauthorized, err)
	}
	if !parsed.Valid {
		return user.Principal{}, fmt.Errorf("%w: invalid token", usecase.ErrUnauthorized)
	}

	principal := user.Principal{
		Subject: stringClaim(claims, "sub"),
		Email:   v.profileClaim(claims, "email"),
		Name:    v.profileClaim(claims, "name"),
	}
	if principal.Subject == "" {
		return user.Principal{}, fmt.Errorf("%w: token has no subject", usecase.ErrUnauthorized)
	}

	expiresAt := v.now().Add(defaultPrincipalTTL)
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil && exp.Before(expiresAt) {
		expiresAt = exp.Time
	}
	v.principals.Set(cacheKey, principal, expiresAt, v.now())
	return principal, nil
}

func (v *Verifier) profileClaim(claims jwt.MapClaims, name string) string {
	if v.cfg.ClaimNamespace != "" {
		if value := stringClaim(claims, v.cfg.ClaimNamespace+name); value != "" {
			return value
		}
	}
	return stringClaim(claims, name)
}

// key resolves kid from the cached set, refreshing it when stale or when kid
// is unknown. Unknown-kid refreshes are throttled.
func (v *Verifier) key(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	v.mu.RLock()
	key, ok := v.keys[kid]
	fresh := !v.fetchedAt.IsZero() && v.now().Sub(v.fetchedAt) < v.cfg.KeyTTL
	throttled := v.now().Sub(v.lastAttempt) < minRefreshInterval
	v.mu.RUnlock()

	if ok && fresh {
		return key, nil
	}
	if !ok && fresh && throttled {
		return nil, crerr.Newf("unknown signing key %q", kid)
	}

	if err := v.refresh(ctx); err != nil {
		if ok {
			v.logger.WarnContext(ctx, "jwks refresh failed, using stale key", "kid", kid, "error", err)
			return key, nil
		}
		return nil, err
	}

	v.mu.RLock()
	key, ok = v.keys[kid]
	v.mu.RUnlock()
	if !ok {
		return nil, crerr.Newf("unknown signing key %q", kid)
	}
	return key, nil
}

func (v *Verifier) refresh(ctx context.Context) error {
	_, err, _ := v.flight.Do("jwks", func() (any, error) {
		v.mu.Lock()
		v.lastAttempt = v.now()
		v.mu.Unlock()

		keys, err := v.fetch(ctx)
		if err != nil {
			return nil, err
		}

		v.mu.Lock()
		v.keys = keys
		v.fetchedAt = v.now()
		v.mu.Unlock()
		v.logger.InfoContext(ctx, "jwks refreshed", "keys", len(keys))
		return nil, nil
	})
	return err
}

type keySet struct {
	Keys []jsonWebKey `json:"keys"`
}

type jsonWebKey struct {
	Kid string `json:"kid"`
	Kty string `json:"kty"`
	Use string `json:"use"`
	Alg string `json:"alg"`
	N   string `json:"n"`
	E   string `json:"e"`
}

func (v *Verifier) fetch(ctx context.Context) (map[string]*rsa.PublicKey, error) {
	if v.cfg.JWKSURL == "" {
		return nil, fmt.Errorf("%w: token verification is not configured", usecase.ErrDependencyUnavailable)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.cfg.JWKSURL, nil)
	if err != nil {
		return nil, crerr.Wrap(err, "build jwks request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch jwks: %v", usecase.ErrDependencyUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read jwks: %v", usecase.ErrDependencyUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		v.logger.WarnContext(ctx, "jwks endpoint non-200", "status_code", resp.StatusCode)
		return nil, fmt.Errorf("%w: jwks status %d", usecase.ErrDependencyUnavailable, resp.StatusCode)
	}

	var set keySet
	if err := sonic.Unmarshal(body, &set); err != nil {
		return nil, crerr.Wrap(err, "decode jwks")
	}

	keys := make(map[string]*rsa.PublicKey, len(set.Keys))
	for _, jwk := range set.Keys {
		if jwk.Kty != "RSA" || (jwk.Use != "" && jwk.Use != "sig") {
			continue
		}
		pub, err := jwk.rsaKey()
		if err != nil {
			v.logger.WarnContext(ctx, "skip malformed jwk", "kid", jwk.Kid, "error", err)
			continue
		}
		keys[jwk.Kid] = pub
	}
	if len(keys) == 0 {
		return nil, crerr.New("jwks has no usable RSA signing keys")
	}
	return keys, nil
}

func (k jsonWebKey) rsaKey() (*rsa.PublicKey, error) {
	n, err := base64.RawURLEncoding.DecodeString(k.N)
	if err != nil {
		return nil, crerr.Wrap(err, "decode modulus")
	}
	e, err := base64.RawURLEncoding.DecodeString(k.E)
	if err != nil {
		return nil, crerr.Wrap(err, "decode exponent")
	}
	exponent := new(big.Int).SetBytes(e)
	if !exponent.IsInt64() || exponent.Int64() < 3 {
		return nil, crerr.New("invalid exponent")
	}
	return &rsa.PublicKey{N: new(big.Int).SetBytes(n), E: int(exponent.Int64())}, nil
}

func stringClaim(claims jwt.MapClaims, name string) string {
	value, _ := claims[name].(string)
	return strings.TrimSpace(value)
}
