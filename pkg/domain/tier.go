package domain

// Tier is a product tier of the keepsake puzzle.
type Tier string

const (
	TierClassic  Tier = "classic"
	TierHeirloom Tier = "heirloom"
	TierGrand    Tier = "grand"
)

// TierConfig holds the static per-tier quotas and price.
type TierConfig struct {
	ShapeQuota    int
	HintCardQuota int
	PriceCents    int
}

var tierConfigs = map[Tier]TierConfig{
	TierClassic:  {ShapeQuota: 8, HintCardQuota: 4, PriceCents: 8900},
	TierHeirloom: {ShapeQuota: 12, HintCardQuota: 6, PriceCents: 12900},
	TierGrand:    {ShapeQuota: 16, HintCardQuota: 8, PriceCents: 17900},
}

// Tiers lists all tiers in display order.
var Tiers = []Tier{TierClassic, TierHeirloom, TierGrand}

// TierSpec returns the configuration for a tier. Unknown tiers fall back
// to the classic configuration so a stale draft never panics the flow.
func TierSpec(t Tier) TierConfig {
	if cfg, ok := tierConfigs[t]; ok {
		return cfg
	}
	return tierConfigs[TierClassic]
}

// ValidTier returns true if t is a known product tier.
func ValidTier(t Tier) bool {
	_, ok := tierConfigs[t]
	return ok
}
