package dispatchcore

import "github.com/marketsim/dispatchcore/latency"

// BusConfig is the bus-wide configuration NewDispatcher is built from.
// No loader in this module decodes it from a file. Field tags follow this codebase's convention of tagging config structs for
// both YAML decoding and environment-variable overrides.
type BusConfig struct {
	// Seed drives the bus's single PRNG; identical seeds plus identical
	// call sequences reproduce identical runs.
	Seed int64 `yaml:"seed" env:"DISPATCHCORE_SEED"`

	// DefaultLatencyProfile names an entry in latency.Profiles used as
	// the bus default when no profile/override is given explicitly.
	DefaultLatencyProfile string `yaml:"default_latency_profile" env:"DISPATCHCORE_DEFAULT_LATENCY_PROFILE"`

	// QueueSizeWarnThreshold logs a warning once the scheduler heap grows
	// past this size, as an early signal of a runaway feedback loop
	// between agents. Zero disables the warning.
	QueueSizeWarnThreshold int `yaml:"queue_size_warn_threshold" env:"DISPATCHCORE_QUEUE_WARN_THRESHOLD"`
}

// DefaultBusConfig returns sane defaults: seed 1, the same-city VPS
// calibration profile, and a queue-size warning at 100,000 pending events.
func DefaultBusConfig() BusConfig {
	return BusConfig{
		Seed:                   1,
		DefaultLatencyProfile:  latency.ProfileSameCityVPS.Name,
		QueueSizeWarnThreshold: 100_000,
	}
}

func (c BusConfig) defaultLatencyParams() latency.Params {
	if profile, ok := latency.Profiles[c.DefaultLatencyProfile]; ok {
		return profile.Params()
	}
	return latency.ProfileSameCityVPS.Params()
}
