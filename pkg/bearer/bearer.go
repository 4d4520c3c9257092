// Package bearer authenticates HTTP requests carrying an RS256 signed
// JWT as an OAuth 2.0 bearer token, selecting the verification key from
// a JSON Web Key Set by the token's "kid" header.
//
// https://datatracker.ietf.org/doc/html/rfc6750
package bearer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mvandergrift/alcoholic-jwt/internal/logger"
	"github.com/mvandergrift/alcoholic-jwt/pkg/jwk"
	"github.com/mvandergrift/alcoholic-jwt/pkg/jwt"
)

var (
	// ErrUnknownKey is returned when no key in the set has the token's
	// key ID.
	ErrUnknownKey = errors.New("no key matches token key ID")

	// ErrKeyIDRequired is returned when a token has no key ID and the
	// set holds more than one key.
	ErrKeyIDRequired = errors.New("token has no key ID")
)

// Authenticator validates bearer tokens against a fixed key set. It is
// safe for concurrent use.
type Authenticator struct {
	keys        *jwk.Set
	validations []jwt.Validation
	logger      *slog.Logger
	metrics     *Metrics
}

// Option configures an Authenticator.
type Option func(*Authenticator)

// WithValidations sets the claim checks applied to every token.
func WithValidations(validations ...jwt.Validation) Option {
	return func(a *Authenticator) {
		a.validations = append(a.validations, validations...)
	}
}

// WithLogger sets the logger used for rejected tokens.
func WithLogger(l *slog.Logger) Option {
	return func(a *Authenticator) {
		a.logger = l
	}
}

// WithMetrics records validation outcomes in m.
func WithMetrics(m *Metrics) Option {
	return func(a *Authenticator) {
		a.metrics = m
	}
}

// New returns an Authenticator for the given key set.
func New(keys *jwk.Set, opts ...Option) (*Authenticator, error) {
	if keys == nil {
		return nil, fmt.Errorf("%w: no key set", jwk.ErrInvalidKey)
	}
	if err := keys.Validate(); err != nil {
		return nil, err
	}

	a := &Authenticator{
		keys:   keys,
		logger: logger.Logger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Key returns the key that should verify token. A token without a key
// ID can only be checked when the set holds exactly one key.
func (a *Authenticator) Key(token string) (jwk.Key, error) {
	kid, ok, err := jwt.KeyID(token)
	if err != nil {
		return jwk.Key{}, err
	}

	if !ok || kid == "" {
		if len(a.keys.Keys) == 1 {
			return a.keys.Keys[0], nil
		}
		return jwk.Key{}, ErrKeyIDRequired
	}

	key, ok := a.keys.Find(kid)
	if !ok {
		return jwk.Key{}, fmt.Errorf("%w: %q", ErrUnknownKey, kid)
	}
	return key, nil
}

// Validate selects the key for token and validates it.
func (a *Authenticator) Validate(token string) (*jwt.ValidatedToken, error) {
	start := time.Now()

	validated, err := a.validate(token)
	a.metrics.record(Result(err), time.Since(start))

	return validated, err
}

func (a *Authenticator) validate(token string) (*jwt.ValidatedToken, error) {
	key, err := a.Key(token)
	if err != nil {
		return nil, err
	}
	return jwt.Validate(token, key, a.validations...)
}

// Authenticate validates the bearer token of r.
func (a *Authenticator) Authenticate(r *http.Request) (*jwt.ValidatedToken, error) {
	token, err := jwt.FromHTTPAuthorizationHeader(r)
	if err != nil {
		a.metrics.record(Result(err), 0)
		return nil, err
	}
	return a.Validate(token)
}

// Middleware rejects requests without a valid bearer token and passes
// the validated token to next through the request context.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := a.Authenticate(r)
		if err != nil {
			a.reject(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), token)))
	})
}

// reject writes an RFC 6750 error response.
//
// https://datatracker.ietf.org/doc/html/rfc6750#section-3.1
func (a *Authenticator) reject(w http.ResponseWriter, r *http.Request, err error) {
	result := Result(err)
	status, challenge := http.StatusUnauthorized, `Bearer error="invalid_token"`

	switch result {
	case ResultMissingToken:
		challenge = "Bearer"
	case ResultMalformed, ResultJSONDecode:
		status, challenge = http.StatusBadRequest, `Bearer error="invalid_request"`
	case ResultInvalidJWK, ResultCryptoError:
		a.logger.Error("Bearer token key unusable", "path", r.URL.Path, "error", err)
	}

	a.logger.Debug("Bearer token rejected", "path", r.URL.Path, "status", status, "result", result, "error", err)

	w.Header().Set("WWW-Authenticate", challenge)
	http.Error(w, http.StatusText(status), status)
}

type contextKey struct{}

// NewContext returns a copy of ctx carrying token.
func NewContext(ctx context.Context, token *jwt.ValidatedToken) context.Context {
	return context.WithValue(ctx, contextKey{}, token)
}

// FromContext returns the validated token stored by Middleware.
func FromContext(ctx context.Context) (*jwt.ValidatedToken, bool) {
	token, ok := ctx.Value(contextKey{}).(*jwt.ValidatedToken)
	return token, ok && token != nil
}
