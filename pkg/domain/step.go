package domain

// Step is one screen of the configurator flow.
type Step int

const (
	StepHome Step = iota
	StepTier
	StepShapes
	StepPartner
	StepImage
	StepHints
	StepPackaging
	StepCheckout
	StepConfirmation
)

var stepNames = map[Step]string{
	StepHome:         "home",
	StepTier:         "tier",
	StepShapes:       "shapes",
	StepPartner:      "partner",
	StepImage:        "image",
	StepHints:        "hints",
	StepPackaging:    "packaging",
	StepCheckout:     "checkout",
	StepConfirmation: "confirmation",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return "unknown"
}
