package bearer

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mvandergrift/alcoholic-jwt/pkg/jwt"
)

// Values of the "result" label.
const (
	ResultSuccess          = "success"
	ResultMissingToken     = "missing_token"
	ResultUnknownKey       = "unknown_key"
	ResultMalformed        = "malformed"
	ResultInvalidJWK       = "invalid_jwk"
	ResultInvalidSignature = "invalid_signature"
	ResultCryptoError      = "crypto_error"
	ResultJSONDecode       = "json_decode"
	ResultInvalidClaims    = "invalid_claims"
	ResultError            = "error"
)

// Metrics records the outcome of every token an Authenticator checks.
type Metrics struct {
	ValidationsTotal   *prometheus.CounterVec
	ValidationDuration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg. A nil
// registerer creates unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ValidationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jwt_validations_total",
				Help: "Total number of bearer token validations",
			},
			[]string{"result"},
		),
		ValidationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "jwt_validation_duration_seconds",
				Help:    "Duration of bearer token validation in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		),
	}
}

func (m *Metrics) record(result string, duration time.Duration) {
	if m == nil {
		return
	}
	m.ValidationsTotal.WithLabelValues(result).Inc()
	m.ValidationDuration.WithLabelValues(result).Observe(duration.Seconds())
}

// Result returns the "result" label value for err.
func Result(err error) string {
	if err == nil {
		return ResultSuccess
	}

	switch {
	case errors.Is(err, jwt.ErrNoAuthorization), errors.Is(err, jwt.ErrNotBearer):
		return ResultMissingToken
	case errors.Is(err, ErrUnknownKey), errors.Is(err, ErrKeyIDRequired):
		return ResultUnknownKey
	}

	switch jwt.Kind(err) {
	case jwt.ErrMalformedJWT:
		return ResultMalformed
	case jwt.ErrInvalidJWK:
		return ResultInvalidJWK
	case jwt.ErrInvalidSignature:
		return ResultInvalidSignature
	case jwt.ErrCryptoOperation:
		return ResultCryptoError
	case jwt.ErrJSONDecode:
		return ResultJSONDecode
	case jwt.ErrInvalidClaims:
		return ResultInvalidClaims
	default:
		return ResultError
	}
}
