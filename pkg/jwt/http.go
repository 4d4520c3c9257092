package jwt

import (
	"errors"
	"net/http"
	"strings"
)

var (
	// ErrNoAuthorization is returned when a request has no
	// Authorization header.
	ErrNoAuthorization = errors.New("missing authorization header")

	// ErrNotBearer is returned when the Authorization header is not a
	// bearer token.
	ErrNotBearer = errors.New("invalid authorization header format")
)

// FromHTTPAuthorizationHeader extracts a JWT string from the Authorization header of an HTTP request.
// If the Authorization header is not set, then an error is returned.
//
// # Warning
//
// This value needs to be validated before it can be used safely.
//
// https://datatracker.ietf.org/doc/html/rfc6750#section-2.1
func FromHTTPAuthorizationHeader(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrNoAuthorization
	}

	scheme, token, ok := strings.Cut(authHeader, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", ErrNotBearer
	}

	token = strings.TrimSpace(token)
	if token == "" || strings.Contains(token, " ") {
		return "", ErrNotBearer
	}

	return token, nil
}

// SetHTTPAuthorizationHeader sets the Authorization header of an HTTP
// request to the given bearer token.
func SetHTTPAuthorizationHeader(r *http.Request, token string) {
	r.Header.Set("Authorization", "Bearer "+token)
}
