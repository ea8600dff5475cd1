package main

import (
	"bytes"
	"strings"
	"testing"

	"umlcmp/internal/extract"
)

func TestWriteFactsPrettyMarksEnums(t *testing.T) {
	doc := `
enum AgentRole { MANAGER WORKER }
class Agent {
  +name : String
}
`
	res := extract.Extract("test.puml", []byte(doc), extract.Options{})

	var buf bytes.Buffer
	if err := writeFactsPretty(&buf, res); err != nil {
		t.Fatalf("writeFactsPretty: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"AgentRole (enum, 2 values)",
		"Agent (class, 1 attrs)",
		"classes (2):",
		"agentrole.manager",
		"agent.name",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("pretty output missing %q:\n%s", want, out)
		}
	}
}
