package extract_test

import (
	"os"
	"path/filepath"
	"testing"

	"umlcmp/internal/diag"
	"umlcmp/internal/extract"
	"umlcmp/internal/model"
)

func extractText(t *testing.T, text string) *extract.Result {
	t.Helper()
	return extract.Extract("test.puml", []byte(text), extract.Options{})
}

func wantClass(t *testing.T, r *extract.Result, name string) {
	t.Helper()
	if !r.Facts.Classes.Has(name) {
		t.Errorf("class %q not extracted; got %v", name, r.Facts.Classes)
	}
}

func wantRel(t *testing.T, r *extract.Result, src string, kind model.RelKind, dst string) {
	t.Helper()
	rel := model.Relationship{Source: src, Kind: kind, Target: dst}
	if !r.Facts.Relationships.Has(rel) {
		t.Errorf("relationship %v not extracted; got %v", rel, r.Facts.Relationships)
	}
}

func wantAttr(t *testing.T, r *extract.Result, owner, name string) {
	t.Helper()
	a := model.Attribute{Owner: owner, Name: name}
	if !r.Facts.Attributes.Has(a) {
		t.Errorf("attribute %v not extracted; got %v", a, r.Facts.Attributes)
	}
}

func TestExtractClassesAndAttributes(t *testing.T) {
	r := extractText(t, `
@startuml
package agents {
  class Agent {
    +name : String
    -role : AgentRole = worker
    {static} counter : int
    run(ctx : Context)
    --
  }
  abstract class Component
  interface Tool
}
@enduml
`)

	for _, c := range []string{"agent", "component", "tool"} {
		wantClass(t, r, c)
	}
	if got := r.Facts.Classes.Len(); got != 3 {
		t.Errorf("classes = %d, want 3", got)
	}

	wantAttr(t, r, "agent", "name")
	wantAttr(t, r, "agent", "role")
	wantAttr(t, r, "agent", "counter")
	if got := r.Facts.Attributes.Len(); got != 3 {
		t.Errorf("attributes = %d, want 3 (methods and separators skipped): %v", got, r.Facts.Attributes)
	}

	// Declared types ride along on the entity but not in the fact key.
	if len(r.Entities) == 0 || r.Entities[0].Attrs[0].Type != "String" {
		t.Errorf("declared type not kept on entity: %+v", r.Entities)
	}
}

func TestExtractEnumAsClass(t *testing.T) {
	// Enums are modeled identically to classes; values become attribute-like
	// entries.
	r := extractText(t, `enum AgentRole { MANAGER WORKER }`)

	wantClass(t, r, "agentrole")
	wantAttr(t, r, "agentrole", "manager")
	wantAttr(t, r, "agentrole", "worker")
	if got := r.Facts.Attributes.Len(); got != 2 {
		t.Errorf("attributes = %d, want 2", got)
	}
	if len(r.Entities) != 1 || !r.Entities[0].Enum {
		t.Errorf("enum entity not recorded as enum: %+v", r.Entities)
	}
}

func TestExtractDirectiveLikeClassNames(t *testing.T) {
	// Directive keywords match whole words only: classes and edges whose
	// names merely start with "note", "header" etc. are extracted.
	r := extractText(t, `
title Model Overview
note left of Agent : reads tasks
header Page 1
class Notebook
Notification --> Agent
Header --> Footer
`)

	wantClass(t, r, "notebook")
	wantRel(t, r, "notification", model.RelAssociation, "agent")
	wantRel(t, r, "header", model.RelAssociation, "footer")
	if got := r.Facts.Relationships.Len(); got != 2 {
		t.Errorf("relationships = %d, want 2: %v", got, r.Facts.Relationships)
	}
}

func TestExtractBraceOnNextLine(t *testing.T) {
	r := extractText(t, `
class Agent
{
  +name : String
}
enum Status
{
  ACTIVE
}
Agent --> Status
`)

	wantClass(t, r, "agent")
	wantAttr(t, r, "agent", "name")
	wantClass(t, r, "status")
	wantAttr(t, r, "status", "active")
	wantRel(t, r, "agent", model.RelAssociation, "status")
}

func TestExtractEnumBlock(t *testing.T) {
	r := extractText(t, `
enum Status {
  ACTIVE,
  IDLE
  --
}
`)
	wantClass(t, r, "status")
	wantAttr(t, r, "status", "active")
	wantAttr(t, r, "status", "idle")
	if got := r.Facts.Attributes.Len(); got != 2 {
		t.Errorf("attributes = %d, want 2: %v", got, r.Facts.Attributes)
	}
}

func TestExtractRelationshipKinds(t *testing.T) {
	tests := []struct {
		name string
		line string
		want model.Relationship
	}{
		{"inheritance left", "Component <|-- Agent", model.Relationship{Source: "agent", Kind: model.RelInheritance, Target: "component"}},
		{"inheritance right", "Agent --|> Component", model.Relationship{Source: "agent", Kind: model.RelInheritance, Target: "component"}},
		{"realization left", "Runnable <|.. Agent", model.Relationship{Source: "agent", Kind: model.RelRealization, Target: "runnable"}},
		{"realization right", "Agent ..|> Runnable", model.Relationship{Source: "agent", Kind: model.RelRealization, Target: "runnable"}},
		{"composition left diamond", "Team *-- Agent", model.Relationship{Source: "agent", Kind: model.RelComposition, Target: "team"}},
		{"composition right diamond", "Agent --* Team", model.Relationship{Source: "agent", Kind: model.RelComposition, Target: "team"}},
		{"aggregation left diamond", "Team o-- Agent", model.Relationship{Source: "agent", Kind: model.RelAggregation, Target: "team"}},
		{"aggregation right diamond", "Agent --o Team", model.Relationship{Source: "agent", Kind: model.RelAggregation, Target: "team"}},
		{"directed association", "Agent --> Tool", model.Relationship{Source: "agent", Kind: model.RelAssociation, Target: "tool"}},
		{"reverse association", "Tool <-- Agent", model.Relationship{Source: "agent", Kind: model.RelAssociation, Target: "tool"}},
		{"plain association", "Agent -- Tool", model.Relationship{Source: "agent", Kind: model.RelAssociation, Target: "tool"}},
		{"dependency", "Agent ..> Tool", model.Relationship{Source: "agent", Kind: model.RelDependency, Target: "tool"}},
		{"reverse dependency", "Tool <.. Agent", model.Relationship{Source: "agent", Kind: model.RelDependency, Target: "tool"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := extractText(t, tt.line)
			if r.Facts.Relationships.Len() != 1 {
				t.Fatalf("relationships = %v, want exactly one", r.Facts.Relationships)
			}
			if !r.Facts.Relationships.Has(tt.want) {
				t.Errorf("got %v, want %v", r.Facts.Relationships, tt.want)
			}
		})
	}
}

func TestExtractRelationshipNoise(t *testing.T) {
	r := extractText(t, `
Agent "1" *-- "0..*" Tool : owns
"Task Queue" --> Agent : feeds
core.Agent --> util.Logger
`)

	wantRel(t, r, "tool", model.RelComposition, "agent")
	wantRel(t, r, "taskqueue", model.RelAssociation, "agent")
	// Package qualifiers are stripped; identity is the bare class name.
	wantRel(t, r, "agent", model.RelAssociation, "logger")
	if got := r.Facts.Relationships.Len(); got != 3 {
		t.Errorf("relationships = %d, want 3: %v", got, r.Facts.Relationships)
	}
}

func TestExtractDuplicatesCollapse(t *testing.T) {
	r := extractText(t, `
class Agent
class agent
class AGENT
Agent --> Tool
agent --> tool
`)
	if got := r.Facts.Classes.Len(); got != 1 {
		t.Errorf("classes = %d, want 1 after normalization: %v", got, r.Facts.Classes)
	}
	if got := r.Facts.Relationships.Len(); got != 1 {
		t.Errorf("relationships = %d, want 1 after normalization: %v", got, r.Facts.Relationships)
	}
}

func TestExtractTolerance(t *testing.T) {
	bag := diag.NewBag(100)
	r := extract.Extract("noisy.puml", []byte(`
@startuml
' a comment line
/' a block
   comment '/
}
class Agent {
  +name : String
what is this line
class Tool {
  +kind : String
}
??? -> garbage ->
@enduml
`), extract.Options{Reporter: diag.BagReporter{Bag: bag}})

	// The unclosed Agent body is recovered when "class Tool" appears.
	wantClass(t, r, "agent")
	wantClass(t, r, "tool")
	wantAttr(t, r, "agent", "name")
	wantAttr(t, r, "tool", "kind")

	if !bag.HasNotes() {
		t.Error("expected notices for unrecognized lines")
	}
	for _, d := range bag.Items() {
		if d.Severity != diag.SevNote {
			t.Errorf("tolerated input must produce notes only, got %v: %s", d.Severity, d.Message)
		}
	}
}

func TestExtractEmptyDiagram(t *testing.T) {
	r := extractText(t, "@startuml\n@enduml\n")
	if s := r.Facts.Stats(); s != (model.Stats{}) {
		t.Errorf("stats = %+v, want all zero", s)
	}
}

func TestExtractQuotedAndAliasedClasses(t *testing.T) {
	r := extractText(t, `
class "Vector DB" {
  +dimensions : int
}
class core.Registry as Reg {
  +entries : int
}
`)
	wantClass(t, r, "vectordb")
	wantAttr(t, r, "vectordb", "dimensions")
	// The alias is what relationships refer to, so it owns the attributes.
	wantClass(t, r, "registry")
	wantAttr(t, r, "reg", "entries")
}

func TestExtractFileMissing(t *testing.T) {
	_, err := extract.ExtractFile(filepath.Join(t.TempDir(), "absent.puml"), extract.Options{})
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestExtractFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.puml")
	if err := os.WriteFile(path, []byte("class Agent\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := extract.ExtractFile(path, extract.Options{})
	if err != nil {
		t.Fatalf("ExtractFile: %v", err)
	}
	wantClass(t, r, "agent")
}
