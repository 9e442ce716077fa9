package bench

import (
	"errors"
	"fmt"
)

// Defaults match the suggested load shape for the demo servers.
const (
	DefaultUsers       = 100
	DefaultDurationSec = 60
	DefaultRampUpSec   = 10
	DefaultTimeoutSec  = 30
)

var ErrInvalidConfig = errors.New("invalid benchmark configuration")

// Endpoint is one weighted request template. Weights are relative; the
// selector normalizes by the total, so they need not sum to 1.
type Endpoint struct {
	Path    string            `json:"path" mapstructure:"path"`
	Method  string            `json:"method" mapstructure:"method"`
	Headers map[string]string `json:"headers" mapstructure:"headers"`
	Body    string            `json:"body" mapstructure:"body"`
	Weight  float64           `json:"weight" mapstructure:"weight"`
}

// Config describes one benchmark run: where to send load, how many
// virtual users, for how long, and the endpoint mix.
type Config struct {
	TargetURL   string     `json:"target_url" mapstructure:"target_url"`
	Users       int        `json:"concurrent_users" mapstructure:"users"`
	DurationSec int        `json:"duration_seconds" mapstructure:"duration"`
	RampUpSec   int        `json:"ramp_up_seconds" mapstructure:"ramp_up"`
	TimeoutSec  int        `json:"timeout_seconds" mapstructure:"timeout"`
	Endpoints   []Endpoint `json:"endpoints" mapstructure:"endpoints"`
}

// Validate rejects configurations that would otherwise fail mid-run.
// A zero total weight is refused here so the selector never sees one.
func (c Config) Validate() error {
	if c.TargetURL == "" {
		return fmt.Errorf("%w: target URL is empty", ErrInvalidConfig)
	}
	if c.Users <= 0 {
		return fmt.Errorf("%w: concurrent users must be positive, got %d", ErrInvalidConfig, c.Users)
	}
	if c.DurationSec <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %ds", ErrInvalidConfig, c.DurationSec)
	}
	if c.RampUpSec < 0 {
		return fmt.Errorf("%w: ramp-up cannot be negative, got %ds", ErrInvalidConfig, c.RampUpSec)
	}
	if len(c.Endpoints) == 0 {
		return fmt.Errorf("%w: endpoint list is empty", ErrInvalidConfig)
	}

	total := 0.0
	for i, ep := range c.Endpoints {
		if ep.Path == "" {
			return fmt.Errorf("%w: endpoint %d has no path", ErrInvalidConfig, i)
		}
		if ep.Weight < 0 {
			return fmt.Errorf("%w: endpoint %q has negative weight", ErrInvalidConfig, ep.Path)
		}
		total += ep.Weight
	}
	if total <= 0 {
		return fmt.Errorf("%w: endpoint weights sum to zero", ErrInvalidConfig)
	}

	return nil
}
