package model

// RelKind is the closed set of recognized relation kinds. Kind is part of the
// relationship equivalence key and is never normalized: association never
// matches composition, even over identical endpoints.
type RelKind uint8

const (
	RelAssociation RelKind = iota
	RelAggregation
	RelComposition
	RelInheritance
	RelRealization
	RelDependency
)

func (k RelKind) String() string {
	switch k {
	case RelAssociation:
		return "association"
	case RelAggregation:
		return "aggregation"
	case RelComposition:
		return "composition"
	case RelInheritance:
		return "inheritance"
	case RelRealization:
		return "realization"
	case RelDependency:
		return "dependency"
	}
	return "unknown"
}
