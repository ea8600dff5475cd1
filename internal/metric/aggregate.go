package metric

// Mean is the arithmetic mean of every metric across runs. Counts become
// fractional under averaging, so they widen to float64 here.
type Mean struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1_score"`
	TP        float64 `json:"true_positives"`
	FP        float64 `json:"false_positives"`
	FN        float64 `json:"false_negatives"`
}

// Summary reduces N runs against one reference to per-kind and overall means.
type Summary struct {
	Runs          int  `json:"runs"`
	Classes       Mean `json:"classes"`
	Relationships Mean `json:"relationships"`
	Attributes    Mean `json:"attributes"`
	Overall       Mean `json:"overall"`
}

// accumulator keeps running sums for one kind. Higher moments (variance,
// confidence intervals) can be added here without touching per-run scoring.
type accumulator struct {
	precision, recall, f1 float64
	tp, fp, fn            int
}

func (a *accumulator) add(r Result) {
	a.precision += r.Precision
	a.recall += r.Recall
	a.f1 += r.F1
	a.tp += r.TP
	a.fp += r.FP
	a.fn += r.FN
}

func (a *accumulator) mean(n int) Mean {
	if n == 0 {
		return Mean{}
	}
	d := float64(n)
	return Mean{
		Precision: a.precision / d,
		Recall:    a.recall / d,
		F1:        a.f1 / d,
		TP:        float64(a.tp) / d,
		FP:        float64(a.fp) / d,
		FN:        float64(a.fn) / d,
	}
}

// Summarize averages each metric across the given runs, per kind and overall.
func Summarize(runs []RunScores) Summary {
	var classes, relationships, attributes, overall accumulator
	for _, r := range runs {
		classes.add(r.Classes)
		relationships.add(r.Relationships)
		attributes.add(r.Attributes)
		overall.add(r.Overall)
	}
	n := len(runs)
	return Summary{
		Runs:          n,
		Classes:       classes.mean(n),
		Relationships: relationships.mean(n),
		Attributes:    attributes.mean(n),
		Overall:       overall.mean(n),
	}
}
