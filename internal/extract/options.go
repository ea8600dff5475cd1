package extract

import (
	"umlcmp/internal/diag"
	"umlcmp/internal/normalize"
)

// Options configures one extraction.
type Options struct {
	// Normalize is the naming policy applied to every collected name before it
	// enters a fact set. Nil means normalize.Key. Candidate and reference must
	// be extracted with the same policy or the comparison is meaningless.
	Normalize normalize.Func

	// Reporter receives a notice for every line that matched no grammar rule.
	// Nil discards the notices.
	Reporter diag.Reporter
}

func (o Options) normalizer() normalize.Func {
	if o.Normalize != nil {
		return o.Normalize
	}
	return normalize.Key
}

func (o Options) reporter() diag.Reporter {
	if o.Reporter != nil {
		return o.Reporter
	}
	return diag.NopReporter{}
}
