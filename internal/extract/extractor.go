// Package extract parses PlantUML class-diagram text into normalized fact
// sets. Input comes from LLM generation and is not assumed to be well formed:
// the parser is a line-oriented state machine that extracts what it recognizes
// and reports everything else as a notice, never as an error. Only unreadable
// input fails extraction.
package extract

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"umlcmp/internal/diag"
	"umlcmp/internal/model"
)

// Result of extracting one document.
type Result struct {
	// Name identifies the document in messages (usually its path).
	Name string
	// Entities are the declared classes and enums in declaration order, with
	// raw spellings intact.
	Entities []model.ClassEntity
	// Facts holds the normalized, deduplicated sets used for scoring.
	Facts model.FactSet
}

// parser state: the current class/enum context is explicit, so nested or
// malformed braces cannot leak attributes into the wrong owner.
type state uint8

const (
	stOutside state = iota
	stInClass
	stInEnum
)

var (
	classOpenRe = regexp.MustCompile(`(?i)^(?:abstract\s+)?(?:class|interface)\s+(?:"([^"]+)"|([\w.]+))(?:\s+as\s+(\w+))?(?:\s*<<[^>]*>>)?\s*(?:(\{)\s*(.*?)\s*(\})?)?$`)
	enumOpenRe  = regexp.MustCompile(`(?i)^enum\s+(?:"([^"]+)"|([\w.]+))(?:\s+as\s+(\w+))?(?:\s*<<[^>]*>>)?\s*(?:(\{)\s*(.*?)\s*(\})?)?$`)
	packageRe   = regexp.MustCompile(`(?i)^(?:package|namespace)\b`)

	blockCommentRe = regexp.MustCompile(`(?s)/'.*?'/|/\*.*?\*/`)
)

// directiveKeywords are rendering directives: they affect grouping or drawing
// only, never extracted identity. Matched as whole first words, so class
// names like "Notebook" or "Header" never count as directives.
var directiveKeywords = []string{
	"hide", "show", "skinparam", "title", "note", "end note",
	"legend", "endlegend", "scale", "caption", "header", "footer",
	"left to right direction", "top to bottom direction", "together",
}

// ExtractFile reads and extracts one document. The only failure mode is
// unreadable input; content problems degrade to notices.
func ExtractFile(path string, opts Options) (*Result, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model document %s: %w", path, err)
	}
	return Extract(path, content, opts), nil
}

// Extract parses a document into its fact sets. A well-formed-but-empty
// diagram yields empty sets, never an error.
func Extract(name string, content []byte, opts Options) *Result {
	p := &extractor{
		norm:   opts.normalizer(),
		report: opts.reporter(),
		result: &Result{Name: name, Facts: model.NewFactSet()},
	}

	lines := strings.Split(stripBlockComments(string(content)), "\n")
	for i, raw := range lines {
		line := strings.TrimSpace(stripLineComment(raw))
		if line == "" {
			continue
		}
		p.line(i+1, line)
	}
	// Unterminated body at EOF: close it rather than drop collected entries.
	p.closeEntity()
	p.flushPending()

	p.fold()
	return p.result
}

type extractor struct {
	norm   func(string) string
	report diag.Reporter
	result *Result

	st      state
	current model.ClassEntity

	// pending is a bodiless declaration waiting to see whether a lone "{" on
	// the next line opens its body after all.
	pending     *model.ClassEntity
	pendingEnum bool
}

func (p *extractor) line(lineNo int, line string) {
	switch p.st {
	case stInClass:
		if line == "}" {
			p.closeEntity()
			return
		}
		if decl, ok, skip := matchAttribute(line); ok {
			p.current.Attrs = append(p.current.Attrs, decl)
			return
		} else if skip {
			return
		}
		// A new top-level construct inside an unclosed body means the closing
		// brace went missing; recover by closing the current entity.
		if p.looksTopLevel(line) {
			p.closeEntity()
			p.outside(lineNo, line)
			return
		}
		p.report.Report(diag.SevNote, lineNo, fmt.Sprintf("no attribute extracted from %q", line))

	case stInEnum:
		if line == "}" {
			p.closeEntity()
			return
		}
		if decl, ok := matchEnumValue(line); ok {
			p.current.Attrs = append(p.current.Attrs, decl)
			return
		}
		if separatorRe.MatchString(line) {
			return
		}
		if p.looksTopLevel(line) {
			p.closeEntity()
			p.outside(lineNo, line)
			return
		}
		p.report.Report(diag.SevNote, lineNo, fmt.Sprintf("no enum value extracted from %q", line))

	default:
		p.outside(lineNo, line)
	}
}

func (p *extractor) outside(lineNo int, line string) {
	if line == "{" && p.pending != nil {
		p.reopenPending()
		return
	}
	p.flushPending()

	// Stray closing braces (package blocks, malformed input) are tolerated.
	if line == "}" {
		return
	}

	if m := classOpenRe.FindStringSubmatch(line); m != nil {
		p.openEntity(m, false)
		return
	}
	if m := enumOpenRe.FindStringSubmatch(line); m != nil {
		p.openEntity(m, true)
		return
	}

	if rel, ok := matchRelationship(line); ok {
		src, dst := p.norm(rel.Source), p.norm(rel.Target)
		if src != "" && dst != "" {
			p.result.Facts.Relationships.Add(model.Relationship{Source: src, Kind: rel.Kind, Target: dst})
		}
		return
	}

	// Directives are checked only after the extraction grammars fail, so an
	// edge like "Header --> Footer" is never mistaken for a header directive.
	if isDirective(line) || packageRe.MatchString(line) {
		return
	}

	p.report.Report(diag.SevNote, lineNo, fmt.Sprintf("unrecognized line skipped: %q", line))
}

// openEntity starts a class/enum context from an opener match. Match groups:
// quoted name, simple name, alias, opening brace, inline body, closing brace.
func (p *extractor) openEntity(m []string, enum bool) {
	p.current = model.ClassEntity{
		Name:  firstOf(m[1], m[2]),
		Alias: m[3],
		Enum:  enum,
	}
	if m[4] != "{" {
		// Declaration without a body so far; a lone "{" on the next line may
		// still open one.
		ent := p.current
		p.current = model.ClassEntity{}
		p.pending = &ent
		p.pendingEnum = enum
		return
	}
	if enum {
		p.st = stInEnum
	} else {
		p.st = stInClass
	}
	if inline := m[5]; inline != "" {
		// Whole body on the declaration line: enum values are whitespace or
		// comma separated, class attributes are semicolon separated.
		if enum {
			for _, field := range strings.FieldsFunc(inline, func(r rune) bool { return r == ' ' || r == '\t' || r == ',' }) {
				if decl, ok := matchEnumValue(field); ok {
					p.current.Attrs = append(p.current.Attrs, decl)
				}
			}
		} else {
			for _, field := range strings.Split(inline, ";") {
				if decl, ok, _ := matchAttribute(strings.TrimSpace(field)); ok {
					p.current.Attrs = append(p.current.Attrs, decl)
				}
			}
		}
	}
	if m[6] == "}" {
		p.closeEntity()
	}
}

// reopenPending puts a deferred bodiless declaration back in scope because its
// opening brace arrived on the following line.
func (p *extractor) reopenPending() {
	p.current = *p.pending
	p.pending = nil
	if p.pendingEnum {
		p.st = stInEnum
	} else {
		p.st = stInClass
	}
}

// flushPending commits a deferred bodiless declaration once the next line
// shows no body is coming.
func (p *extractor) flushPending() {
	if p.pending == nil {
		return
	}
	p.result.Entities = append(p.result.Entities, *p.pending)
	p.pending = nil
}

func (p *extractor) closeEntity() {
	if p.st == stOutside && p.current.Name == "" {
		return
	}
	if p.current.Name != "" {
		p.result.Entities = append(p.result.Entities, p.current)
	}
	p.current = model.ClassEntity{}
	p.st = stOutside
}

func (p *extractor) looksTopLevel(line string) bool {
	if classOpenRe.MatchString(line) || enumOpenRe.MatchString(line) {
		return true
	}
	_, ok := matchRelationship(line)
	return ok
}

// fold turns the collected entities into normalized class and attribute facts.
// Relationship facts were added while scanning.
func (p *extractor) fold() {
	for _, e := range p.result.Entities {
		cls := p.norm(lastSegment(e.Name))
		if cls == "" {
			continue
		}
		p.result.Facts.Classes.Add(cls)

		// The alias is what relationship statements refer to, so it wins as
		// the attribute owner when present.
		owner := e.Name
		if e.Alias != "" {
			owner = e.Alias
		}
		ownerKey := p.norm(lastSegment(owner))
		if ownerKey == "" {
			continue
		}
		for _, a := range e.Attrs {
			if name := p.norm(a.Name); name != "" {
				p.result.Facts.Attributes.Add(model.Attribute{Owner: ownerKey, Name: name})
			}
		}
	}
}

func isDirective(line string) bool {
	if strings.HasPrefix(line, "@") || strings.HasPrefix(line, "!") {
		return true
	}
	lower := strings.ToLower(line)
	for _, kw := range directiveKeywords {
		if lower == kw || strings.HasPrefix(lower, kw+" ") || strings.HasPrefix(lower, kw+"\t") {
			return true
		}
	}
	return false
}

// stripBlockComments removes /' ... '/ and /* ... */ blocks while keeping the
// newline count intact so notice line numbers stay correct.
func stripBlockComments(s string) string {
	return blockCommentRe.ReplaceAllStringFunc(s, func(m string) string {
		return strings.Repeat("\n", strings.Count(m, "\n"))
	})
}

// stripLineComment drops everything from the first apostrophe. Labels are
// discarded anyway, so apostrophes inside them lose nothing comparable.
func stripLineComment(line string) string {
	if i := strings.IndexByte(line, '\''); i >= 0 {
		return line[:i]
	}
	return line
}
