package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const noStudyTomlMessage = "no study.toml found\nplease specify the reference and runs explicitly, e.g.:\n  umlcmp table --reference baseline/model.puml --runs runs/"

// studyManifest locates the baseline and the run directories of one study.
type studyManifest struct {
	Path   string
	Root   string
	Config studyConfig
}

type studyConfig struct {
	Study    studySection    `toml:"study"`
	Baseline baselineSection `toml:"baseline"`
	Runs     runsSection     `toml:"runs"`
}

type studySection struct {
	Name string `toml:"name"`
}

type baselineSection struct {
	Dir   string `toml:"dir"`
	Model string `toml:"model"`
	Terms string `toml:"terms"`
}

type runsSection struct {
	Dir     string `toml:"dir"`
	Pattern string `toml:"pattern"`
	Model   string `toml:"model"`
}

// ReferenceModel resolves the baseline model path relative to the manifest.
func (m *studyManifest) ReferenceModel() string {
	return filepath.Join(m.Root, m.Config.Baseline.Dir, m.Config.Baseline.Model)
}

// BaselineTerms resolves the baseline terminology CSV relative to the
// manifest. Empty when the study declares no terms list.
func (m *studyManifest) BaselineTerms() string {
	if m.Config.Baseline.Terms == "" {
		return ""
	}
	return filepath.Join(m.Root, m.Config.Baseline.Dir, m.Config.Baseline.Terms)
}

// RunsDir resolves the runs root relative to the manifest.
func (m *studyManifest) RunsDir() string {
	return filepath.Join(m.Root, m.Config.Runs.Dir)
}

func (m *studyManifest) RunPattern() string {
	if m.Config.Runs.Pattern == "" {
		return "run_*"
	}
	return m.Config.Runs.Pattern
}

func (m *studyManifest) RunModel() string {
	if m.Config.Runs.Model == "" {
		return m.Config.Baseline.Model
	}
	return m.Config.Runs.Model
}

func findStudyToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "study.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadStudyManifest(startDir string) (*studyManifest, bool, error) {
	manifestPath, ok, err := findStudyToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadStudyConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &studyManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadStudyConfig(path string) (studyConfig, error) {
	var cfg studyConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return studyConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("baseline") {
		return studyConfig{}, fmt.Errorf("%s: missing [baseline] section", path)
	}
	if cfg.Baseline.Model == "" {
		return studyConfig{}, fmt.Errorf("%s: baseline.model is required", path)
	}
	if !meta.IsDefined("runs") {
		return studyConfig{}, fmt.Errorf("%s: missing [runs] section", path)
	}
	if cfg.Runs.Dir == "" {
		return studyConfig{}, fmt.Errorf("%s: runs.dir is required", path)
	}
	return cfg, nil
}
