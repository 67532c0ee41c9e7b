package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// DefaultGoogleJWKSURL публичные ключи Google для ID token
	DefaultGoogleJWKSURL = "https://www.googleapis.com/oauth2/v3/certs"

	defaultKeysTTL = 10 * time.Minute
)

// DefaultGoogleIssuers допустимые значения iss у Google ID token
var DefaultGoogleIssuers = []string{"https://accounts.google.com", "accounts.google.com"}

var (
	// ErrUntrustedIssuer издатель токена не входит в список разрешенных
	ErrUntrustedIssuer = errors.New("auth: untrusted issuer")
	// ErrKeyNotFound ключ с указанным kid отсутствует в JWKS
	ErrKeyNotFound = errors.New("auth: signing key not found")

	errMissingKeyID = errors.New("auth: token missing key id")
	errNoUsableKeys = errors.New("auth: jwks contains no usable keys")
)

// GoogleConfig содержит конфигурацию проверки Google ID token
type GoogleConfig struct {
	HTTPClient *http.Client
	ClientID   string   // ClientID ожидаемая аудитория токена
	JWKSURL    string   // JWKSURL адрес набора ключей
	Issuers    []string // Issuers разрешенные издатели (по умолчанию DefaultGoogleIssuers)
	KeysTTL    time.Duration
}

// Identity содержит проверенные данные пользователя из Google ID token
type Identity struct {
	ExpiresAt time.Time
	Subject   string
	Email     string
	Name      string
	Issuer    string
}

// googleClaims claims Google ID token, которые нам нужны
type googleClaims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// GoogleVerifier проверяет Google ID token (RS256) по закэшированному JWKS
type GoogleVerifier struct {
	httpClient *http.Client
	logger     *slog.Logger
	issuers    map[string]struct{}
	now        func() time.Time
	keys       *keyCache
	clientID   string
	jwksURL    string
}

// NewGoogleVerifier создает верификатор с проверенной конфигурацией
func NewGoogleVerifier(cfg GoogleConfig, logger *slog.Logger) (*GoogleVerifier, error) {
	clientID := strings.TrimSpace(cfg.ClientID)
	if clientID == "" {
		return nil, fmt.Errorf("%w: google client id is required", ErrInvalidConfig)
	}
	jwksURL := strings.TrimSpace(cfg.JWKSURL)
	if jwksURL == "" {
		jwksURL = DefaultGoogleJWKSURL
	}

	source := cfg.Issuers
	if len(source) == 0 {
		source = DefaultGoogleIssuers
	}
	issuers := make(map[string]struct{}, len(source))
	for _, issuer := range source {
		if issuer = strings.TrimSpace(issuer); issuer != "" {
			issuers[issuer] = struct{}{}
		}
	}
	if len(issuers) == 0 {
		return nil, fmt.Errorf("%w: no allowed issuers", ErrInvalidConfig)
	}

	keysTTL := cfg.KeysTTL
	if keysTTL <= 0 {
		keysTTL = defaultKeysTTL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return &GoogleVerifier{
		httpClient: httpClient,
		logger:     logger,
		issuers:    issuers,
		now:        time.Now,
		keys:       &keyCache{ttl: keysTTL},
		clientID:   clientID,
		jwksURL:    jwksURL,
	}, nil
}

// Verify проверяет подпись, аудиторию, издателя и срок действия credential
func (v *GoogleVerifier) Verify(ctx context.Context, credential string) (*Identity, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return nil, errors.New("auth: empty credential")
	}

	claims := &googleClaims{}
	_, err := jwt.ParseWithClaims(credential, claims, func(token *jwt.Token) (interface{}, error) {
		keyID, _ := token.Header["kid"].(string)
		if keyID == "" {
			return nil, errMissingKeyID
		}
		return v.lookupKey(ctx, keyID)
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithAudience(v.clientID),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to verify google credential: %w", err)
	}

	if _, ok := v.issuers[claims.Issuer]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUntrustedIssuer, claims.Issuer)
	}
	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return nil, ErrMissingSubject
	}

	identity := &Identity{
		Subject: subject,
		Email:   strings.TrimSpace(claims.Email),
		Name:    strings.TrimSpace(claims.Name),
		Issuer:  claims.Issuer,
	}
	if claims.ExpiresAt != nil {
		identity.ExpiresAt = claims.ExpiresAt.Time
	}
	return identity, nil
}

// lookupKey ищет ключ в кэше и перечитывает JWKS, если кэш устарел или kid неизвестен
func (v *GoogleVerifier) lookupKey(ctx context.Context, keyID string) (*rsa.PublicKey, error) {
	now := v.now()
	if key := v.keys.get(keyID, now); key != nil {
		return key, nil
	}

	if err := v.refreshKeys(ctx, now); err != nil {
		return nil, err
	}

	if key := v.keys.get(keyID, now); key != nil {
		return key, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, keyID)
}

func (v *GoogleVerifier) refreshKeys(ctx context.Context, fetchedAt time.Time) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.jwksURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create jwks request: %w", err)
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch jwks: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("jwks request returned status %d", resp.StatusCode)
	}

	var set jwkSet
	if err := json.NewDecoder(resp.Body).Decode(&set); err != nil {
		return fmt.Errorf("failed to decode jwks: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(set.Keys))
	for _, key := range set.Keys {
		if key.KeyType != "RSA" || key.Use != "sig" || key.KeyID == "" {
			continue
		}
		publicKey, err := key.publicKey()
		if err != nil {
			v.logger.Debug("Skipping jwk", "kid", key.KeyID, "error", err)
			continue
		}
		keys[key.KeyID] = publicKey
	}
	if len(keys) == 0 {
		return errNoUsableKeys
	}

	v.keys.store(keys, fetchedAt)
	v.logger.Debug("JWKS refreshed", "keys", len(keys))
	return nil
}

// keyCache хранит ключи JWKS до истечения ttl
type keyCache struct {
	expiresAt time.Time
	keys      map[string]*rsa.PublicKey
	mu        sync.RWMutex
	ttl       time.Duration
}

func (c *keyCache) get(keyID string, now time.Time) *rsa.PublicKey {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.keys == nil || now.After(c.expiresAt) {
		return nil
	}
	return c.keys[keyID]
}

func (c *keyCache) store(keys map[string]*rsa.PublicKey, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.keys = keys
	c.expiresAt = now.Add(c.ttl)
}

type jwkSet struct {
	Keys []jwk `json:"keys"`
}

type jwk struct {
	KeyType  string `json:"kty"`
	KeyID    string `json:"kid"`
	Use      string `json:"use"`
	Modulus  string `json:"n"`
	Exponent string `json:"e"`
}

// publicKey собирает RSA ключ из base64url модуля и экспоненты
func (k jwk) publicKey() (*rsa.PublicKey, error) {
	n, err := base64.RawURLEncoding.DecodeString(k.Modulus)
	if err != nil {
		return nil, fmt.Errorf("invalid modulus: %w", err)
	}
	e, err := base64.RawURLEncoding.DecodeString(k.Exponent)
	if err != nil {
		return nil, fmt.Errorf("invalid exponent: %w", err)
	}

	exponent := new(big.Int).SetBytes(e)
	if len(n) == 0 || !exponent.IsInt64() || exponent.Int64() <= 1 || exponent.Int64() > 1<<31-1 {
		return nil, errors.New("invalid rsa key parameters")
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(n),
		E: int(exponent.Int64()),
	}, nil
}
