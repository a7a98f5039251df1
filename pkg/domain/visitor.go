package domain

// VisitorProfile is the long-lived personalization record: visit counts
// and browsing markers with no expiry. The recovery logic only reads it;
// the entrypoint bumps VisitCount once per run.
type VisitorProfile struct {
	VisitCount   int      `json:"visit_count"`
	ViewedTiers  []Tier   `json:"viewed_tiers,omitempty"`
	ViewedShapes []string `json:"viewed_shapes,omitempty"`
	AbandonedAt  string   `json:"abandoned_at,omitempty"`
	LastVisit    int64    `json:"last_visit,omitempty"`
}

// MarkTierViewed records a tier the visitor looked at, once.
func (v *VisitorProfile) MarkTierViewed(t Tier) {
	for _, seen := range v.ViewedTiers {
		if seen == t {
			return
		}
	}
	v.ViewedTiers = append(v.ViewedTiers, t)
}

// MarkShapeViewed records a shape the visitor looked at, once.
func (v *VisitorProfile) MarkShapeViewed(id string) {
	for _, seen := range v.ViewedShapes {
		if seen == id {
			return
		}
	}
	v.ViewedShapes = append(v.ViewedShapes, id)
}
