package entities

import "fmt"

// Category classifies how much a missing artifact matters to a successful
// build. The integer order is the omittability priority: lower values are
// less omittable, and when one coordinate is reachable with different
// classifications via different paths, the lowest value wins.
type Category int

const (
	CategoryEssential Category = iota
	CategoryPlugin
	CategoryProvided
	CategoryOptional
	CategoryConflictSuperseded
	CategoryUnknown
)

func (c Category) String() string {
	switch c {
	case CategoryEssential:
		return "essential"
	case CategoryPlugin:
		return "plugin"
	case CategoryProvided:
		return "provided"
	case CategoryOptional:
		return "optional"
	case CategoryConflictSuperseded:
		return "conflict-superseded"
	case CategoryUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// MarshalJSON serializes the category by name.
func (c Category) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

// Stronger returns the less omittable of two categories.
func Stronger(a, b Category) Category {
	if a < b {
		return a
	}
	return b
}

// Critical reports whether a missing artifact in this category can break
// the declared build.
func (c Category) Critical() bool {
	return c == CategoryEssential || c == CategoryPlugin
}

// Classification is the analytical verdict for one failed coordinate.
type Classification struct {
	Coordinate      Coordinate `json:"coordinate"`
	Category        Category   `json:"category"`
	Rationale       string     `json:"rationale,omitempty"`
	SuggestedAction string     `json:"suggestedAction,omitempty"`
	Chain           []string   `json:"chain,omitempty"`
	SimilarVersions []string   `json:"similarVersions,omitempty"`
}
