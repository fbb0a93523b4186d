package latency

// Profile is a named calibration point used by the integration layer to
// seed realistic inter-agent latency without hand-tuning raw parameters.
type Profile struct {
	Name     string
	MedianUs float64
	Sigma    float64
	CapUs    Microseconds
}

// Params returns the Lognormal Params this profile describes.
func (p Profile) Params() Params {
	return Lognormal(p.MedianUs, p.Sigma, p.CapUs)
}

// Named calibration profiles from network-topology studies, used as
// defaults when a scenario file selects a profile by name instead of
// specifying raw Lognormal parameters.
var (
	ProfileCoLocatedHFT      = Profile{Name: "co_located_hft", MedianUs: 50, Sigma: 0.42, CapUs: 200}
	ProfileMetroCrossConnect = Profile{Name: "metro_cross_connect", MedianUs: 300, Sigma: 0.66, CapUs: 2_000}
	ProfileSameCityVPS       = Profile{Name: "same_city_vps", MedianUs: 1_000, Sigma: 0.67, CapUs: 5_000}
	ProfileDomesticRetail    = Profile{Name: "domestic_retail", MedianUs: 12_000, Sigma: 0.54, CapUs: 60_000}
	ProfileInterContinental  = Profile{Name: "inter_continental", MedianUs: 60_000, Sigma: 0.42, CapUs: 150_000}
)

// Profiles indexes the named profiles above by Name for config lookups.
var Profiles = map[string]Profile{
	ProfileCoLocatedHFT.Name:      ProfileCoLocatedHFT,
	ProfileMetroCrossConnect.Name: ProfileMetroCrossConnect,
	ProfileSameCityVPS.Name:       ProfileSameCityVPS,
	ProfileDomesticRetail.Name:    ProfileDomesticRetail,
	ProfileInterContinental.Name:  ProfileInterContinental,
}
