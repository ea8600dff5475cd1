package terms_test

import (
	"reflect"
	"strings"
	"testing"

	"umlcmp/internal/terms"
)

func read(t *testing.T, csv string) *terms.List {
	t.Helper()
	list, err := terms.Read(strings.NewReader(csv), nil)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	return list
}

func TestReadFindsTermColumn(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{"lowercase", "term,score\nAgent,0.9\n"},
		{"capitalized", "Term,Score\nAgent,0.9\n"},
		{"uppercase with padding", " TERM ,notes\nAgent,something\n"},
		{"term not first", "id,definition,term\n1,runs tasks,Agent\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := read(t, tt.csv)
			if !list.Keys.Has("agent") {
				t.Errorf("term column not found; keys = %v", list.Keys)
			}
		})
	}
}

func TestReadMissingTermColumn(t *testing.T) {
	_, err := terms.Read(strings.NewReader("name,score\nAgent,1\n"), nil)
	if err == nil {
		t.Fatal("expected error for missing term column")
	}
	if !strings.Contains(err.Error(), "term") {
		t.Errorf("error should name the missing column: %v", err)
	}
}

func TestReadNormalizesAndDeduplicates(t *testing.T) {
	list := read(t, "term\nVector DB\nvector_db\nVectorDB\n  \nAgent\n")
	if got := list.Keys.Len(); got != 2 {
		t.Fatalf("keys = %d, want 2: %v", got, list.Keys)
	}
	// First spelling wins for display.
	if got := list.Originals["vectordb"]; got != "Vector DB" {
		t.Errorf("Originals[vectordb] = %q, want first spelling", got)
	}
}

func TestReadToleratesRaggedRows(t *testing.T) {
	list := read(t, "id,term\n1,Agent\n2\n3,Tool,extra\n")
	if got := list.Keys.Len(); got != 2 {
		t.Errorf("keys = %d, want 2: %v", got, list.Keys)
	}
}

func TestCompare(t *testing.T) {
	reference := read(t, "term\nAgent\nTool\nMemory\n")
	candidate := read(t, "term\nagent\nTool\nPlanner\n")

	result, diff := terms.Compare(candidate, reference)
	if result.TP != 2 || result.FP != 1 || result.FN != 1 {
		t.Fatalf("counts = %d/%d/%d, want 2/1/1", result.TP, result.FP, result.FN)
	}
	if want := []string{"Memory"}; !reflect.DeepEqual(diff.Missing, want) {
		t.Errorf("Missing = %v, want %v", diff.Missing, want)
	}
	if want := []string{"Planner"}; !reflect.DeepEqual(diff.Extra, want) {
		t.Errorf("Extra = %v, want %v", diff.Extra, want)
	}
}
