package main

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleStudy = `
[study]
name = "agentic-metamodel"

[baseline]
dir = "paper_data/manual_baseline"
model = "plantuml_agentic.puml"
terms = "terms.csv"

[runs]
dir = "paper_data/llm-mas"
pattern = "run_*"
model = "plantuml_agentic.puml"
`

func writeStudy(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "study.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadStudyManifest(t *testing.T) {
	dir := t.TempDir()
	writeStudy(t, dir, sampleStudy)

	manifest, found, err := loadStudyManifest(dir)
	if err != nil {
		t.Fatalf("loadStudyManifest: %v", err)
	}
	if !found {
		t.Fatal("manifest not found")
	}

	want := filepath.Join(dir, "paper_data", "manual_baseline", "plantuml_agentic.puml")
	if got := manifest.ReferenceModel(); got != want {
		t.Errorf("ReferenceModel = %q, want %q", got, want)
	}
	if got := manifest.RunPattern(); got != "run_*" {
		t.Errorf("RunPattern = %q, want run_*", got)
	}
	wantTerms := filepath.Join(dir, "paper_data", "manual_baseline", "terms.csv")
	if got := manifest.BaselineTerms(); got != wantTerms {
		t.Errorf("BaselineTerms = %q, want %q", got, wantTerms)
	}
}

func TestFindStudyTomlWalksUp(t *testing.T) {
	root := t.TempDir()
	writeStudy(t, root, sampleStudy)
	nested := filepath.Join(root, "paper_data", "llm-mas", "run_1")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	path, found, err := findStudyToml(nested)
	if err != nil {
		t.Fatalf("findStudyToml: %v", err)
	}
	if !found {
		t.Fatal("study.toml not found from nested directory")
	}
	if path != filepath.Join(root, "study.toml") {
		t.Errorf("path = %q, want manifest at root", path)
	}
}

func TestLoadStudyConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing baseline", "[runs]\ndir = \"runs\"\n"},
		{"missing baseline model", "[baseline]\ndir = \"b\"\n\n[runs]\ndir = \"runs\"\n"},
		{"missing runs", "[baseline]\nmodel = \"m.puml\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeStudy(t, dir, tt.content)
			if _, err := loadStudyConfig(path); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
