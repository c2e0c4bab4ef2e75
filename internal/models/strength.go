package models

import "fmt"

// StrengthKind tags a RequiredStrength.
type StrengthKind uint8

const (
	// NoRequirement means the check places no demand on concrete strength.
	NoRequirement StrengthKind = iota
	// Required means a finite strength satisfies the check.
	Required
	// Infeasible means no concrete strength satisfies the check.
	Infeasible
)

// String returns "none", "required" or "infeasible".
func (k StrengthKind) String() string {
	switch k {
	case NoRequirement:
		return "none"
	case Required:
		return "required"
	case Infeasible:
		return "infeasible"
	default:
		return fmt.Sprintf("StrengthKind(%d)", uint8(k))
	}
}

// RequiredStrength is the minimum concrete compressive strength (f'c) a check
// demands. The zero value is NoRequirement.
//
// Analysis engines report strengths as a signed number where a negative value
// means infeasible, zero means no requirement and a positive value is the
// requirement itself. StrengthFromSentinel and Sentinel convert to and from
// that encoding; aggregation code works on the tag.
type RequiredStrength struct {
	kind  StrengthKind
	value float64
}

// NoStrengthRequirement returns the NoRequirement value.
func NoStrengthRequirement() RequiredStrength {
	return RequiredStrength{}
}

// RequiredFc returns a requirement of fc. Non-positive inputs are normalized
// with StrengthFromSentinel.
func RequiredFc(fc float64) RequiredStrength {
	if fc <= 0 {
		return StrengthFromSentinel(fc)
	}
	return RequiredStrength{kind: Required, value: fc}
}

// InfeasibleStrength returns an Infeasible value encoded as -1.
func InfeasibleStrength() RequiredStrength {
	return RequiredStrength{kind: Infeasible, value: -1}
}

// StrengthFromSentinel decodes the signed encoding. The negative magnitude of
// an infeasible value is preserved so it round-trips through Sentinel.
func StrengthFromSentinel(v float64) RequiredStrength {
	switch {
	case v < 0:
		return RequiredStrength{kind: Infeasible, value: v}
	case v == 0:
		return RequiredStrength{}
	default:
		return RequiredStrength{kind: Required, value: v}
	}
}

// Kind returns the tag.
func (r RequiredStrength) Kind() StrengthKind { return r.kind }

// IsInfeasible reports whether no concrete strength satisfies the check.
func (r RequiredStrength) IsInfeasible() bool { return r.kind == Infeasible }

// IsRequired reports whether a finite strength is required.
func (r RequiredStrength) IsRequired() bool { return r.kind == Required }

// Value returns the required strength. ok is false unless the kind is Required.
func (r RequiredStrength) Value() (fc float64, ok bool) {
	if r.kind != Required {
		return 0, false
	}
	return r.value, true
}

// Sentinel encodes r in the signed convention used by analysis engines,
// reports and the history database.
func (r RequiredStrength) Sentinel() float64 {
	switch r.kind {
	case Required, Infeasible:
		return r.value
	default:
		return 0
	}
}

// String renders the value for logs.
func (r RequiredStrength) String() string {
	switch r.kind {
	case Required:
		return fmt.Sprintf("%.3f", r.value)
	case Infeasible:
		return "infeasible"
	default:
		return "none"
	}
}

// MaxBySentinel returns the operand with the largest signed encoding. It
// mirrors a plain numeric maximum over engine outputs, so an infeasible value
// only survives when every operand is infeasible.
func MaxBySentinel(first RequiredStrength, rest ...RequiredStrength) RequiredStrength {
	best := first
	for _, r := range rest {
		if r.Sentinel() > best.Sentinel() {
			best = r
		}
	}
	return best
}

// GoverningStrength combines requirements from independent checks: an
// infeasible operand makes the result infeasible, otherwise the largest
// requirement governs.
func GoverningStrength(values ...RequiredStrength) RequiredStrength {
	var reqd RequiredStrength
	for _, r := range values {
		switch r.kind {
		case Infeasible:
			return r
		case Required:
			if r.value > reqd.Sentinel() {
				reqd = r
			}
		}
	}
	return reqd
}
