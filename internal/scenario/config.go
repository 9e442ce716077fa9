package scenario

import (
	"fmt"

	"github.com/spf13/viper"

	"loadcmp/internal/bench"
)

// fileScenario mirrors one entry under the "scenarios" key of the
// config file. Load knobs default from the flags when omitted.
type fileScenario struct {
	Name      string           `mapstructure:"name"`
	Users     int              `mapstructure:"users"`
	Duration  int              `mapstructure:"duration"`
	RampUp    int              `mapstructure:"ramp_up"`
	Endpoints []bench.Endpoint `mapstructure:"endpoints"`
}

// FromConfig decodes custom scenarios from the loaded viper config.
// Returns nil when the file defines none, so callers fall back to the
// canned suite. Every decoded scenario is validated before any run
// starts.
func FromConfig(v *viper.Viper, baseURL string, users, duration, rampUp int) ([]Scenario, error) {
	if !v.IsSet("scenarios") {
		return nil, nil
	}

	var defs []fileScenario
	if err := v.UnmarshalKey("scenarios", &defs); err != nil {
		return nil, fmt.Errorf("parse scenarios from config: %w", err)
	}

	scenarios := make([]Scenario, 0, len(defs))
	for i, d := range defs {
		if d.Name == "" {
			d.Name = fmt.Sprintf("Scenario %d", i+1)
		}
		if d.Users <= 0 {
			d.Users = users
		}
		if d.Duration <= 0 {
			d.Duration = duration
		}
		if d.RampUp < 0 {
			d.RampUp = rampUp
		}

		cfg := base(baseURL, d.Users, d.Duration, d.RampUp)
		cfg.Endpoints = d.Endpoints
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("scenario %q: %w", d.Name, err)
		}

		scenarios = append(scenarios, Scenario{Name: d.Name, Config: cfg})
	}

	return scenarios, nil
}
