package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/mvandergrift/alcoholic-jwt/internal/logger"
	"github.com/mvandergrift/alcoholic-jwt/pkg/jwt"
)

const (
	// EnvPrefix is prepended to every environment variable, so the
	// issuer is read from JWKVERIFY_ISSUER.
	EnvPrefix = "JWKVERIFY"

	// FileName is the configuration file looked up in the working
	// directory when no explicit file is given.
	FileName = "jwkverify"
)

// Config holds the jwkverify settings loaded from flags, environment
// variables or a config file, in that order of precedence.
type Config struct {
	LogLevel string `mapstructure:"log_level" default:"INFO" validate:"oneof=DEBUG INFO WARN ERROR"`

	// JWKSFile is the path of the JSON Web Key Set used by verify.
	JWKSFile string `mapstructure:"jwks_file" validate:"omitempty,file"`

	// Claim checks applied by verify. Empty strings disable the check.
	Issuer         string `mapstructure:"issuer"`
	Audience       string `mapstructure:"audience"`
	RequireSubject bool   `mapstructure:"require_subject" default:"false"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// New returns a Config with every default applied.
func New() (*Config, error) {
	cfg := Config{}
	if err := defaults.Set(&cfg); err != nil {
		return nil, fmt.Errorf("failed to set config defaults: %w", err)
	}
	return &cfg, nil
}

// Load reads the configuration using v, which may already have flags
// bound to it or an explicit config file set.
func Load(v *viper.Viper) (*Config, error) {
	cfg, err := New()
	if err != nil {
		return nil, err
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if v.ConfigFileUsed() == "" {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	// Bind env vars for each field
	typeOfCfg := reflect.TypeOf(*cfg)
	for i := 0; i < typeOfCfg.NumField(); i++ {
		if err := v.BindEnv(typeOfCfg.Field(i).Tag.Get("mapstructure")); err != nil {
			return nil, fmt.Errorf("failed to bind environment: %w", err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		logger.Debug("No config file found, using flags and environment variables")
	} else {
		logger.Debug("Loaded config file", "path", v.ConfigFileUsed())
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.LogLevel = strings.ToUpper(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Validations returns the claim checks enabled by the configuration.
func (c *Config) Validations() []jwt.Validation {
	var validations []jwt.Validation
	if c.Issuer != "" {
		validations = append(validations, jwt.RequireIssuer(c.Issuer))
	}
	if c.Audience != "" {
		validations = append(validations, jwt.RequireAudience(c.Audience))
	}
	if c.RequireSubject {
		validations = append(validations, jwt.RequireSubject())
	}
	return validations
}

// String returns a string representation of the config.
func (c *Config) String() string {
	v := reflect.ValueOf(*c)
	t := v.Type()

	var sb strings.Builder
	sb.WriteString("Config{")
	for i := 0; i < t.NumField(); i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s: %v", t.Field(i).Name, v.Field(i).Interface())
	}
	sb.WriteString("}")
	return sb.String()
}
