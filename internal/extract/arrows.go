package extract

import (
	"regexp"
	"strings"

	"umlcmp/internal/model"
)

// Relationship grammar: two identifiers joined by an arrow token, each side
// optionally preceded/followed by a quoted cardinality, the whole statement
// optionally followed by a ": label". Cardinalities and labels are parsed over
// and discarded entirely.
const (
	reEndpoint = `(?:"([^"]+)"|([\w.]+))` // quoted name or (possibly qualified) identifier
	reCard     = `(?:\s*"[^"]*")?`
	reLabel    = `(?:\s*:\s*.*)?`
)

// arrowTable maps each recognized arrow spelling to its kind and canonical
// direction. reverse means the arrow points left, so source and target swap:
// "A <|-- B" and "B --|> A" both store (B, inheritance, A), child first.
// Composition/aggregation diamonds sit on the owner; "A *-- B" stores
// (B, composition, A), following the arrow as written. Cardinality labels are
// never consulted to second-guess the direction.
var arrowTable = []struct {
	token   string
	kind    model.RelKind
	reverse bool
}{
	{"<|--", model.RelInheritance, true},
	{"--|>", model.RelInheritance, false},
	{"<|..", model.RelRealization, true},
	{"..|>", model.RelRealization, false},
	{"*--", model.RelComposition, true},
	{"--*", model.RelComposition, false},
	{"o--", model.RelAggregation, true},
	{"--o", model.RelAggregation, false},
	{"-->", model.RelAssociation, false},
	{"<--", model.RelAssociation, true},
	{"..>", model.RelDependency, false},
	{"<..", model.RelDependency, true},
	// Plain undirected association goes last: the anchored patterns above
	// already claim every decorated arrow, so no lookbehind is needed.
	{"--", model.RelAssociation, false},
}

type relPattern struct {
	re      *regexp.Regexp
	kind    model.RelKind
	reverse bool
}

var relPatterns = buildRelPatterns()

func buildRelPatterns() []relPattern {
	out := make([]relPattern, 0, len(arrowTable))
	for _, a := range arrowTable {
		expr := `^` + reEndpoint + reCard + `\s*` + regexp.QuoteMeta(a.token) + reCard + `\s*` + reEndpoint + reLabel + `$`
		out = append(out, relPattern{
			re:      regexp.MustCompile(expr),
			kind:    a.kind,
			reverse: a.reverse,
		})
	}
	return out
}

// matchRelationship tries the arrow grammar against one line. The returned
// relationship carries raw (unnormalized) endpoint names in canonical order.
func matchRelationship(line string) (model.Relationship, bool) {
	for _, p := range relPatterns {
		m := p.re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		left := firstOf(m[1], m[2])
		right := firstOf(m[3], m[4])
		if left == "" || right == "" {
			continue
		}
		src, dst := left, right
		if p.reverse {
			src, dst = right, left
		}
		return model.Relationship{
			Source: lastSegment(src),
			Kind:   p.kind,
			Target: lastSegment(dst),
		}, true
	}
	return model.Relationship{}, false
}

func firstOf(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// lastSegment strips a package qualifier: identity is the bare class name,
// independent of which package it was declared in.
func lastSegment(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}
