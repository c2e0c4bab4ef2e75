package models

import (
	"fmt"
	"strings"
)

// LimitState is a load-combination limit state.
type LimitState int

const (
	ServiceI LimitState = iota
	ServiceIA
	ServiceIII
	StrengthI
	StrengthII
	FatigueI
)

var limitStateNames = map[LimitState]string{
	ServiceI:   "ServiceI",
	ServiceIA:  "ServiceIA",
	ServiceIII: "ServiceIII",
	StrengthI:  "StrengthI",
	StrengthII: "StrengthII",
	FatigueI:   "FatigueI",
}

// String returns the limit state name, e.g. "ServiceIII".
func (ls LimitState) String() string {
	if name, ok := limitStateNames[ls]; ok {
		return name
	}
	return fmt.Sprintf("LimitState(%d)", int(ls))
}

// ParseLimitState parses names such as "ServiceI" or "service_iii" (case and
// separators are ignored).
func ParseLimitState(s string) (LimitState, error) {
	norm := normalizeName(s)
	for ls, name := range limitStateNames {
		if normalizeName(name) == norm {
			return ls, nil
		}
	}
	return 0, fmt.Errorf("unknown limit state %q", s)
}

// StressType distinguishes tension from compression checks.
type StressType int

const (
	Tension StressType = iota
	Compression
)

// String returns "tension" or "compression".
func (st StressType) String() string {
	switch st {
	case Tension:
		return "tension"
	case Compression:
		return "compression"
	default:
		return fmt.Sprintf("StressType(%d)", int(st))
	}
}

// ParseStressType parses "tension" or "compression".
func ParseStressType(s string) (StressType, error) {
	switch normalizeName(s) {
	case "tension":
		return Tension, nil
	case "compression":
		return Compression, nil
	default:
		return 0, fmt.Errorf("unknown stress type %q", s)
	}
}

// StressLocation is one of the four fibers a flexural stress check evaluates.
type StressLocation int

const (
	BottomGirder StressLocation = iota
	TopGirder
	BottomDeck
	TopDeck
)

// StressLocationCount is the number of stress locations per flexural artifact.
const StressLocationCount = 4

// GirderLocations and DeckLocations partition the stress locations by element.
var (
	GirderLocations = []StressLocation{TopGirder, BottomGirder}
	DeckLocations   = []StressLocation{TopDeck, BottomDeck}
)

// String returns a label such as "top girder".
func (loc StressLocation) String() string {
	switch loc {
	case BottomGirder:
		return "bottom girder"
	case TopGirder:
		return "top girder"
	case BottomDeck:
		return "bottom deck"
	case TopDeck:
		return "top deck"
	default:
		return fmt.Sprintf("StressLocation(%d)", int(loc))
	}
}

// ParseStressLocation parses names such as "top_girder" or "Bottom Deck".
func ParseStressLocation(s string) (StressLocation, error) {
	switch normalizeName(s) {
	case "bottomgirder":
		return BottomGirder, nil
	case "topgirder":
		return TopGirder, nil
	case "bottomdeck":
		return BottomDeck, nil
	case "topdeck":
		return TopDeck, nil
	default:
		return 0, fmt.Errorf("unknown stress location %q", s)
	}
}

// IsGirder reports whether the location is on the girder rather than the deck.
func (loc StressLocation) IsGirder() bool {
	return loc == TopGirder || loc == BottomGirder
}

// StrandType classifies prestressing strands.
type StrandType int

const (
	Straight StrandType = iota
	Harped
	Temporary
)

// StrandTypeCount is the number of strand types tracked per segment.
const StrandTypeCount = 3

// String returns "straight", "harped" or "temporary".
func (t StrandType) String() string {
	switch t {
	case Straight:
		return "straight"
	case Harped:
		return "harped"
	case Temporary:
		return "temporary"
	default:
		return fmt.Sprintf("StrandType(%d)", int(t))
	}
}

// ParseStrandType parses "straight", "harped" or "temporary".
func ParseStrandType(s string) (StrandType, error) {
	switch normalizeName(s) {
	case "straight":
		return Straight, nil
	case "harped":
		return Harped, nil
	case "temporary":
		return Temporary, nil
	default:
		return 0, fmt.Errorf("unknown strand type %q", s)
	}
}

// HaulingSlope is the roadway orientation a hauling analysis is run for.
type HaulingSlope int

const (
	CrownSlope HaulingSlope = iota
	Superelevation
)

// String returns "crown slope" or "superelevation".
func (s HaulingSlope) String() string {
	switch s {
	case CrownSlope:
		return "crown slope"
	case Superelevation:
		return "superelevation"
	default:
		return fmt.Sprintf("HaulingSlope(%d)", int(s))
	}
}

func normalizeName(s string) string {
	r := strings.NewReplacer("_", "", "-", "", " ", "")
	return strings.ToLower(r.Replace(strings.TrimSpace(s)))
}
