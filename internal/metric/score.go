// Package metric implements the set-based confusion scoring used to compare a
// candidate model against the reference: exact TP/FP/FN counts over normalized
// fact sets, derived precision/recall/F1, a micro-averaged overall score and
// mean aggregation across runs.
package metric

import "umlcmp/internal/model"

// Counts is one confusion count triple.
type Counts struct {
	TP int `json:"true_positives"`
	FP int `json:"false_positives"`
	FN int `json:"false_negatives"`
}

// Add returns the element-wise sum of two count triples.
func (c Counts) Add(o Counts) Counts {
	return Counts{TP: c.TP + o.TP, FP: c.FP + o.FP, FN: c.FN + o.FN}
}

// Result is the scored comparison of one element kind.
type Result struct {
	Counts
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1_score"`
}

// Score compares a candidate set against the reference set:
//
//	TP = |candidate ∩ reference|
//	FP = |candidate \ reference|
//	FN = |reference \ candidate|
//
// Inputs must be sets of already-normalized keys; the sets are not mutated.
func Score[K comparable](candidate, reference model.Set[K]) Result {
	var c Counts
	for k := range candidate {
		if reference.Has(k) {
			c.TP++
		} else {
			c.FP++
		}
	}
	for k := range reference {
		if !candidate.Has(k) {
			c.FN++
		}
	}
	return FromCounts(c)
}

// FromCounts derives precision, recall and F1 from raw counts. Every
// zero-denominator case resolves to 0 rather than an error: an empty candidate
// has precision 0, an empty reference has recall 0, and F1 of two zeros is 0.
func FromCounts(c Counts) Result {
	r := Result{Counts: c}
	if d := c.TP + c.FP; d > 0 {
		r.Precision = float64(c.TP) / float64(d)
	}
	if d := c.TP + c.FN; d > 0 {
		r.Recall = float64(c.TP) / float64(d)
	}
	if s := r.Precision + r.Recall; s > 0 {
		r.F1 = 2 * r.Precision * r.Recall / s
	}
	return r
}
