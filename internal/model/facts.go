// Package model holds the value types shared by the extractor, the scorer and
// the reporters: raw class entities as declared in the source, and the
// normalized fact sets they are folded into. All of them are derived, read-only
// snapshots that live for one comparison invocation.
package model

// AttrDecl is one declared attribute: a name and a free-form type token. The
// type is carried for display but is never part of the equivalence key.
type AttrDecl struct {
	Name string
	Type string
}

// ClassEntity is one class or enumeration as declared in the source, with the
// raw spelling intact. Enumerations are modeled identically to classes; their
// enumerated values appear as attribute entries (methodology rule).
type ClassEntity struct {
	Name  string
	Alias string // "as X" alias; attribute owner when present
	Enum  bool
	Attrs []AttrDecl // declaration order
}

// Relationship is a directed, typed edge between two normalized class names.
type Relationship struct {
	Source string
	Kind   RelKind
	Target string
}

func (r Relationship) String() string {
	return r.Source + " -" + r.Kind.String() + "-> " + r.Target
}

// Attribute is an attribute name scoped to its owning class. The same name
// under two different owners is two distinct facts.
type Attribute struct {
	Owner string
	Name  string
}

func (a Attribute) String() string {
	return a.Owner + "." + a.Name
}

// FactSet is everything comparable extracted from one diagram document, with
// every component already normalized.
type FactSet struct {
	Classes       Set[string]
	Relationships Set[Relationship]
	Attributes    Set[Attribute]
}

// NewFactSet returns an empty fact set with all three sets allocated.
func NewFactSet() FactSet {
	return FactSet{
		Classes:       make(Set[string]),
		Relationships: make(Set[Relationship]),
		Attributes:    make(Set[Attribute]),
	}
}

// Stats counts the facts of each kind in the set.
type Stats struct {
	Classes       int `json:"classes"`
	Relationships int `json:"relationships"`
	Attributes    int `json:"attributes"`
}

// Stats returns the per-kind cardinalities.
func (f FactSet) Stats() Stats {
	return Stats{
		Classes:       f.Classes.Len(),
		Relationships: f.Relationships.Len(),
		Attributes:    f.Attributes.Len(),
	}
}
