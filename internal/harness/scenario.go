package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/relix-lang/relix/internal/codegen"
	"github.com/relix-lang/relix/internal/loader"
)

// Scenario describes one render conformance case.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Module is the path to the IR module document, relative to the
	// scenario file location.
	Module string `yaml:"module"`

	// DefinePrefix overrides the default flag-key prefix.
	DefinePrefix string `yaml:"define_prefix,omitempty"`

	// DefinesFrom selects application-config lookup for presence flags.
	DefinesFrom string `yaml:"defines_from,omitempty"`

	// dir is the directory of the scenario file; module paths resolve
	// against it.
	dir string
}

// LoadScenario reads and validates a scenario file. Unknown YAML keys are
// rejected so fixture typos fail loudly.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load scenario: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var s Scenario
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if s.Name == "" {
		return nil, fmt.Errorf("scenario %s: name is required", path)
	}
	if s.Module == "" {
		return nil, fmt.Errorf("scenario %s: module is required", path)
	}
	s.dir = filepath.Dir(path)
	return &s, nil
}

// Run loads the scenario's module document and renders it, returning the
// complete output text.
func (s *Scenario) Run() (string, error) {
	modPath := s.Module
	if !filepath.IsAbs(modPath) {
		modPath = filepath.Join(s.dir, modPath)
	}
	m, err := loader.LoadFile(modPath)
	if err != nil {
		return "", fmt.Errorf("scenario %s: %w", s.Name, err)
	}

	cfg := codegen.Config{
		DefinePrefix: s.DefinePrefix,
		DefinesFrom:  s.DefinesFrom,
	}
	out, err := codegen.RenderString(m, cfg)
	if err != nil {
		return "", fmt.Errorf("scenario %s: render: %w", s.Name, err)
	}
	return out, nil
}
