package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrengthFromSentinel(t *testing.T) {
	tests := []struct {
		name     string
		in       float64
		wantKind StrengthKind
		wantOut  float64
	}{
		{"negative is infeasible", -1, Infeasible, -1},
		{"negative magnitude preserved", -2.5, Infeasible, -2.5},
		{"zero is no requirement", 0, NoRequirement, 0},
		{"positive is required", 5.5, Required, 5.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StrengthFromSentinel(tt.in)
			assert.Equal(t, tt.wantKind, got.Kind())
			assert.Equal(t, tt.wantOut, got.Sentinel())
		})
	}
}

func TestRequiredStrength_Value(t *testing.T) {
	fc, ok := RequiredFc(6.0).Value()
	assert.True(t, ok)
	assert.Equal(t, 6.0, fc)

	_, ok = InfeasibleStrength().Value()
	assert.False(t, ok)

	_, ok = NoStrengthRequirement().Value()
	assert.False(t, ok)
}

func TestRequiredFc_NormalizesNonPositive(t *testing.T) {
	assert.Equal(t, NoRequirement, RequiredFc(0).Kind())
	assert.Equal(t, Infeasible, RequiredFc(-3).Kind())
}

func TestRequiredStrength_ZeroValueIsNoRequirement(t *testing.T) {
	var r RequiredStrength
	assert.Equal(t, NoRequirement, r.Kind())
	assert.Equal(t, "none", r.String())
}

func TestMaxBySentinel(t *testing.T) {
	t.Run("required beats infeasible", func(t *testing.T) {
		got := MaxBySentinel(InfeasibleStrength(), RequiredFc(4.0))
		assert.Equal(t, 4.0, got.Sentinel())
	})

	t.Run("none beats infeasible", func(t *testing.T) {
		got := MaxBySentinel(InfeasibleStrength(), NoStrengthRequirement())
		assert.Equal(t, NoRequirement, got.Kind())
	})

	t.Run("all infeasible stays infeasible", func(t *testing.T) {
		got := MaxBySentinel(StrengthFromSentinel(-3), StrengthFromSentinel(-1))
		assert.True(t, got.IsInfeasible())
		assert.Equal(t, -1.0, got.Sentinel())
	})

	t.Run("largest requirement wins", func(t *testing.T) {
		got := MaxBySentinel(RequiredFc(5.0), RequiredFc(7.5), RequiredFc(6.0))
		assert.Equal(t, 7.5, got.Sentinel())
	})
}

func TestGoverningStrength(t *testing.T) {
	tests := []struct {
		name string
		in   []RequiredStrength
		want RequiredStrength
	}{
		{"empty", nil, NoStrengthRequirement()},
		{"none only", []RequiredStrength{NoStrengthRequirement(), NoStrengthRequirement()}, NoStrengthRequirement()},
		{"largest governs", []RequiredStrength{RequiredFc(4), NoStrengthRequirement(), RequiredFc(6.5), RequiredFc(5)}, RequiredFc(6.5)},
		{"infeasible dominates", []RequiredStrength{RequiredFc(8), StrengthFromSentinel(-2), RequiredFc(9)}, StrengthFromSentinel(-2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GoverningStrength(tt.in...))
		})
	}
}
