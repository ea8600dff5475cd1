package metric

import "umlcmp/internal/model"

// RunScores holds the four score blocks of one candidate run.
type RunScores struct {
	Classes       Result `json:"classes"`
	Relationships Result `json:"relationships"`
	Attributes    Result `json:"attributes"`
	Overall       Result `json:"overall"`
}

// ScoreRun scores a candidate fact set against the reference, per kind and
// overall. Overall is the micro-average: the confusion counts of the three
// kinds are summed first and precision/recall/F1 are recomputed from the sums.
// It is never an average of the per-kind F1 values.
func ScoreRun(candidate, reference model.FactSet) RunScores {
	classes := Score(candidate.Classes, reference.Classes)
	relationships := Score(candidate.Relationships, reference.Relationships)
	attributes := Score(candidate.Attributes, reference.Attributes)
	overall := FromCounts(classes.Counts.Add(relationships.Counts).Add(attributes.Counts))
	return RunScores{
		Classes:       classes,
		Relationships: relationships,
		Attributes:    attributes,
		Overall:       overall,
	}
}
