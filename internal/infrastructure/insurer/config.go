// Package insurer implements the HTTP integration with the property
// insurer: OAuth client-credential token handling, the quotation call with
// its bounded fallback strategy, and response normalization.
package insurer

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds every setting the insurer integration needs. It is loaded
// once at startup and passed into the gateway constructor; nothing in this
// package reads the environment mid-call.
//
// Environment variables use the INSURER_ prefix (e.g. INSURER_TOKEN_URL).
type Config struct {
	TokenURL string `envconfig:"TOKEN_URL" required:"true"`
	QuoteURL string `envconfig:"QUOTE_URL" required:"true"`

	Username string `envconfig:"USERNAME"`
	Password string `envconfig:"PASSWORD"`

	// Fixed identity sent as headers on every quotation call. These are
	// server-side constants and are never accepted from request payloads.
	PartnerCode string `envconfig:"PARTNER_CODE" required:"true"`
	BrokerCode  string `envconfig:"BROKER_CODE" required:"true"`
	UserCode    string `envconfig:"USER_CODE" required:"true"`

	Timeout time.Duration `envconfig:"TIMEOUT" default:"30s"`
}

// LoadConfig reads the insurer configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("insurer", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
