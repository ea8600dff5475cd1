package model

import "sort"

// Diff lists, in rendered and sorted form, the reference facts a candidate
// missed and the candidate facts the reference does not contain. Presentation
// only; the scorer derives its counts from the sets directly.
type Diff struct {
	MissingClasses       []string `json:"missing_classes"`
	ExtraClasses         []string `json:"extra_classes"`
	MissingRelationships []string `json:"missing_relationships"`
	ExtraRelationships   []string `json:"extra_relationships"`
	MissingAttributes    []string `json:"missing_attributes"`
	ExtraAttributes      []string `json:"extra_attributes"`
}

// DiffFacts computes the human-readable difference between a candidate and the
// reference. "Missing" is reference-only, "extra" is candidate-only.
func DiffFacts(candidate, reference FactSet) Diff {
	return Diff{
		MissingClasses:       sortedKeys(reference.Classes, candidate.Classes, func(c string) string { return c }),
		ExtraClasses:         sortedKeys(candidate.Classes, reference.Classes, func(c string) string { return c }),
		MissingRelationships: sortedKeys(reference.Relationships, candidate.Relationships, Relationship.String),
		ExtraRelationships:   sortedKeys(candidate.Relationships, reference.Relationships, Relationship.String),
		MissingAttributes:    sortedKeys(reference.Attributes, candidate.Attributes, Attribute.String),
		ExtraAttributes:      sortedKeys(candidate.Attributes, reference.Attributes, Attribute.String),
	}
}

// sortedKeys renders every element of a that is absent from b, sorted.
func sortedKeys[K comparable](a, b Set[K], render func(K) string) []string {
	out := make([]string, 0, a.Len())
	for k := range a {
		if !b.Has(k) {
			out = append(out, render(k))
		}
	}
	sort.Strings(out)
	return out
}
