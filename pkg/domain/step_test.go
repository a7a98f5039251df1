package domain

import "testing"

func TestStepString(t *testing.T) {
	tests := []struct {
		step Step
		want string
	}{
		{StepHome, "home"},
		{StepTier, "tier"},
		{StepShapes, "shapes"},
		{StepPartner, "partner"},
		{StepImage, "image"},
		{StepHints, "hints"},
		{StepPackaging, "packaging"},
		{StepCheckout, "checkout"},
		{StepConfirmation, "confirmation"},
		{Step(99), "unknown"},
	}

	for _, tc := range tests {
		if got := tc.step.String(); got != tc.want {
			t.Errorf("Step(%d).String() = %q, want %q", tc.step, got, tc.want)
		}
	}
}
