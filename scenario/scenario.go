// Package scenario loads declarative run definitions so an integration
// layer can stand up a dispatch core run without writing Go code: a TOML
// scenario file describes agent ids, their topic subscriptions, and
// per-pair latency overrides; a companion YAML file can override the
// named calibration profiles' raw parameters.
package scenario

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	dispatchcore "github.com/marketsim/dispatchcore"
	"github.com/marketsim/dispatchcore/latency"
)

// AgentSpec declares one agent's well-known id and the topics it should
// subscribe to once registered. Role is informational only; the
// scenario loader never instantiates agents itself, it only describes
// a topology for the driver to wire up.
type AgentSpec struct {
	ID     uint64   `toml:"id"`
	Role   string   `toml:"role"`
	Topics []string `toml:"topics"`
}

// LatencyOverride pins the latency parameters for one ordered
// (publisher, subscriber) pair, either by naming a calibration profile
// or by giving raw parameters directly.
type LatencyOverride struct {
	Publisher  uint64  `toml:"publisher"`
	Subscriber uint64  `toml:"subscriber"`
	Profile    string  `toml:"profile"`
	MedianUs   float64 `toml:"median_us"`
	Sigma      float64 `toml:"sigma"`
	FixedUs    int64   `toml:"fixed_us"`
	CapUs      int64   `toml:"cap_us"`
}

// Scenario is a declarative run definition.
type Scenario struct {
	Seed                  int64             `toml:"seed"`
	DefaultLatencyProfile string            `toml:"default_latency_profile"`
	Agents                []AgentSpec       `toml:"agents"`
	LatencyOverrides      []LatencyOverride `toml:"latency_overrides"`
}

// Load decodes a TOML scenario file from path.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: read %s: %w", path, err)
	}
	return Decode(data)
}

// Decode parses TOML scenario bytes.
func Decode(data []byte) (*Scenario, error) {
	var s Scenario
	if err := toml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("scenario: decode toml: %w", err)
	}
	return &s, nil
}

// params resolves one override into latency.Params, preferring a named
// profile when given and falling back to raw fields.
func (o LatencyOverride) params() latency.Params {
	if o.Profile != "" {
		if profile, ok := latency.Profiles[o.Profile]; ok {
			return profile.Params()
		}
	}
	if o.FixedUs > 0 {
		return latency.Fixed(latency.Microseconds(o.FixedUs), latency.Microseconds(o.CapUs))
	}
	return latency.Lognormal(o.MedianUs, o.Sigma, latency.Microseconds(o.CapUs))
}

// ApplyLatency installs every latency override from s onto bus, and sets
// the bus default from DefaultLatencyProfile if it names a known
// profile.
func (s *Scenario) ApplyLatency(bus dispatchcore.Bus) {
	if profile, ok := latency.Profiles[s.DefaultLatencyProfile]; ok {
		bus.SetDefaultLatency(profile.Params())
	}
	for _, o := range s.LatencyOverrides {
		bus.SetInterAgentLatency(dispatchcore.AgentID(o.Publisher), dispatchcore.AgentID(o.Subscriber), o.params())
	}
}

// Subscribe applies every AgentSpec's Topics to the already-registered
// agent with the matching id.
func (s *Scenario) Subscribe(bus dispatchcore.Bus) error {
	for _, a := range s.Agents {
		for _, t := range a.Topics {
			if err := bus.Subscribe(dispatchcore.AgentID(a.ID), t); err != nil {
				return fmt.Errorf("scenario: subscribe agent %d to %q: %w", a.ID, t, err)
			}
		}
	}
	return nil
}

// CalibrationOverride overrides one named profile's raw parameters.
type CalibrationOverride struct {
	MedianUs float64 `yaml:"median_us"`
	Sigma    float64 `yaml:"sigma"`
	CapUs    int64   `yaml:"cap_us"`
}

// CalibrationDefaults is a YAML file of profile-name -> override,
// letting an integration layer retune the built-in calibration profiles
// without recompiling.
type CalibrationDefaults struct {
	Profiles map[string]CalibrationOverride `yaml:"profiles"`
}

// LoadCalibrationDefaults decodes a YAML calibration-profile defaults
// file from path.
func LoadCalibrationDefaults(path string) (*CalibrationDefaults, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: read %s: %w", path, err)
	}
	var c CalibrationDefaults
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("scenario: decode yaml: %w", err)
	}
	return &c, nil
}

// Apply returns a copy of latency.Profiles with every override in c
// applied by name; unknown names are skipped (profiles are never
// created, only retuned).
func (c *CalibrationDefaults) Apply() map[string]latency.Profile {
	merged := make(map[string]latency.Profile, len(latency.Profiles))
	for name, p := range latency.Profiles {
		merged[name] = p
	}
	for name, override := range c.Profiles {
		base, ok := merged[name]
		if !ok {
			continue
		}
		base.MedianUs = override.MedianUs
		base.Sigma = override.Sigma
		base.CapUs = latency.Microseconds(override.CapUs)
		merged[name] = base
	}
	return merged
}
