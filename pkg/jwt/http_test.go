package jwt_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mvandergrift/alcoholic-jwt/pkg/jwt"
)

func TestFromHTTPAuthorizationHeader(t *testing.T) {
	tests := []struct {
		Name   string
		Header string
		Token  string
		Err    error
	}{
		{Name: "bearer", Header: "Bearer a.b.c", Token: "a.b.c"},
		{Name: "lowercase scheme", Header: "bearer a.b.c", Token: "a.b.c"},
		{Name: "missing", Header: "", Err: jwt.ErrNoAuthorization},
		{Name: "basic", Header: "Basic dXNlcjpwYXNz", Err: jwt.ErrNotBearer},
		{Name: "no token", Header: "Bearer", Err: jwt.ErrNotBearer},
		{Name: "blank token", Header: "Bearer  ", Err: jwt.ErrNotBearer},
		{Name: "extra fields", Header: "Bearer a.b.c d", Err: jwt.ErrNotBearer},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			if test.Header != "" {
				r.Header.Set("Authorization", test.Header)
			}

			token, err := jwt.FromHTTPAuthorizationHeader(r)
			if test.Err != nil {
				require.ErrorIs(t, err, test.Err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, test.Token, token)
		})
	}
}

func TestSetHTTPAuthorizationHeader(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	jwt.SetHTTPAuthorizationHeader(r, "a.b.c")

	token, err := jwt.FromHTTPAuthorizationHeader(r)
	require.NoError(t, err)
	require.Equal(t, "a.b.c", token)
}
