package config

import "fmt"

// AuthConfig holds bearer-token authentication configuration.
// Token issuance is handled by the platform's auth service; this service
// only verifies signatures.
type AuthConfig struct {
	// JWTSecret is the HMAC secret used to verify bearer tokens.
	JWTSecret string
	// Issuer is the expected token issuer. Empty disables the issuer check.
	Issuer string
}

// LoadAuthConfigFromEnv loads auth configuration from environment variables.
func LoadAuthConfigFromEnv() AuthConfig {
	return AuthConfig{
		JWTSecret: GetEnv("AUTH_JWT_SECRET", ""),
		Issuer:    GetEnv("AUTH_JWT_ISSUER", ""),
	}
}

// Validate validates auth configuration.
func (c AuthConfig) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("AUTH_JWT_SECRET is required")
	}
	return nil
}
