package model_test

import (
	"reflect"
	"testing"

	"umlcmp/internal/model"
)

func TestDiffFacts(t *testing.T) {
	reference := model.FactSet{
		Classes: model.NewSet("agent", "tool", "memory"),
		Relationships: model.NewSet(
			model.Relationship{Source: "agent", Kind: model.RelAssociation, Target: "tool"},
		),
		Attributes: model.NewSet(
			model.Attribute{Owner: "agent", Name: "name"},
			model.Attribute{Owner: "agent", Name: "role"},
		),
	}
	candidate := model.FactSet{
		Classes: model.NewSet("agent", "tool", "planner"),
		Relationships: model.NewSet(
			model.Relationship{Source: "agent", Kind: model.RelComposition, Target: "tool"},
		),
		Attributes: model.NewSet(
			model.Attribute{Owner: "agent", Name: "name"},
		),
	}

	diff := model.DiffFacts(candidate, reference)

	if got, want := diff.MissingClasses, []string{"memory"}; !reflect.DeepEqual(got, want) {
		t.Errorf("MissingClasses = %v, want %v", got, want)
	}
	if got, want := diff.ExtraClasses, []string{"planner"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ExtraClasses = %v, want %v", got, want)
	}
	// Same endpoints, different kind: both missing and extra, never a match.
	if got, want := diff.MissingRelationships, []string{"agent -association-> tool"}; !reflect.DeepEqual(got, want) {
		t.Errorf("MissingRelationships = %v, want %v", got, want)
	}
	if got, want := diff.ExtraRelationships, []string{"agent -composition-> tool"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ExtraRelationships = %v, want %v", got, want)
	}
	if got, want := diff.MissingAttributes, []string{"agent.role"}; !reflect.DeepEqual(got, want) {
		t.Errorf("MissingAttributes = %v, want %v", got, want)
	}
	if len(diff.ExtraAttributes) != 0 {
		t.Errorf("ExtraAttributes = %v, want empty", diff.ExtraAttributes)
	}
}

func TestSetDeduplicates(t *testing.T) {
	s := model.NewSet("agent", "agent", "agent")
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
	if !s.Has("agent") {
		t.Error("Has(agent) = false, want true")
	}
}
