package sms

import (
	"fmt"

	"github.com/spacecadet3008/Kristo-mfalme/internal/httpclient"
)

// Settings selects and configures the active gateway. It is embedded in
// the application config, hence the yaml tags.
type Settings struct {
	Provider       string               `yaml:"provider"`
	NextSMS        NextSMSConfig        `yaml:"nextsms"`
	Beem           BeemConfig           `yaml:"beem"`
	AfricasTalking AfricasTalkingConfig `yaml:"africastalking"`
}

// FromSettings builds the configured provider. Unknown names are an
// error; missing credentials are not — the adapter reports those as
// per-send "not configured" failures instead.
func FromSettings(s Settings, client *httpclient.Client) (Provider, error) {
	switch s.Provider {
	case "", "mock":
		return NewMock(), nil
	case "nextsms":
		return NewNextSMS(s.NextSMS, client), nil
	case "beem":
		return NewBeem(s.Beem, client), nil
	case "africastalking":
		return NewAfricasTalking(s.AfricasTalking, client), nil
	default:
		return nil, fmt.Errorf("unknown sms provider %q", s.Provider)
	}
}
