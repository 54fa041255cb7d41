package scoring

import (
	"time"

	"vendorscreen/internal/evidence/providers"
)

// EvidenceFrom assembles engine evidence from provider payloads. Providers
// without a payload fall back to their safe default dated at.
func EvidenceFrom(at time.Time, payloads ...providers.Normalized) Evidence {
	ev := Evidence{
		NTS:      providers.Fallback(providers.NameNTS, at).(providers.NTSNormalized),
		OpenDART: providers.Fallback(providers.NameOpenDART, at).(providers.OpenDARTNormalized),
		G2B:      providers.Fallback(providers.NameG2B, at).(providers.G2BNormalized),
	}
	for _, p := range payloads {
		switch n := p.(type) {
		case providers.NTSNormalized:
			ev.NTS = n
		case providers.OpenDARTNormalized:
			ev.OpenDART = n
		case providers.G2BNormalized:
			ev.G2B = n
		}
	}
	return ev
}
