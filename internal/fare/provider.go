package fare

import "fmt"

// Provider identifies a ride-hailing provider the engine can quote.
// The set is closed: each provider has materially different fare
// constants and a distinct dispatch integration.
type Provider string

const (
	ProviderUber        Provider = "uber"
	ProviderCareem      Provider = "careem"
	ProviderBolt        Provider = "bolt"
	ProviderDidi        Provider = "didi"
	ProviderInDriver    Provider = "indriver"
	ProviderIndependent Provider = "independent"
)

// AllProviders returns the closed provider set in canonical order.
func AllProviders() []Provider {
	return []Provider{
		ProviderUber,
		ProviderCareem,
		ProviderBolt,
		ProviderDidi,
		ProviderInDriver,
		ProviderIndependent,
	}
}

// IsValid reports whether p belongs to the closed provider set.
func (p Provider) IsValid() bool {
	switch p {
	case ProviderUber, ProviderCareem, ProviderBolt, ProviderDidi, ProviderInDriver, ProviderIndependent:
		return true
	}
	return false
}

// String implements fmt.Stringer.
func (p Provider) String() string {
	return string(p)
}

// ParseProvider converts a raw string into a Provider.
func ParseProvider(raw string) (Provider, error) {
	p := Provider(raw)
	if !p.IsValid() {
		return "", fmt.Errorf("unknown provider %q", raw)
	}
	return p, nil
}
