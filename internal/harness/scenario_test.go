package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario_Valid(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/config_defines.yaml")
	require.NoError(t, err)
	assert.Equal(t, "config_defines", s.Name)
	assert.Equal(t, "../modules/flags.cue", s.Module)
	assert.Equal(t, "relix_app", s.DefinesFrom)
	assert.Empty(t, s.DefinePrefix)
}

func TestLoadScenario_UnknownKeyRejected(t *testing.T) {
	path := writeScenario(t, "name: x\nmodule: m.cue\nmystery: true\n")
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mystery")
}

func TestLoadScenario_RequiresName(t *testing.T) {
	path := writeScenario(t, "module: m.cue\n")
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}

func TestLoadScenario_RequiresModule(t *testing.T) {
	path := writeScenario(t, "name: x\n")
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "module is required")
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario("testdata/scenarios/does-not-exist.yaml")
	assert.Error(t, err)
}

func TestScenarioRun_MissingModule(t *testing.T) {
	path := writeScenario(t, "name: x\nmodule: does-not-exist.cue\n")
	s, err := LoadScenario(path)
	require.NoError(t, err)
	_, err = s.Run()
	assert.Error(t, err)
}

func TestScenarioRun_ResolvesModuleRelativeToScenario(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/basic_module.yaml")
	require.NoError(t, err)
	out, err := s.Run()
	require.NoError(t, err)
	assert.Contains(t, out, "defmodule :M do")
}
