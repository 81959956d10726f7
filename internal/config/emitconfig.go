package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EmitConfig is the top-level emit.yaml configuration cmd/cadlemit reads,
// grounded on the teacher's ext.Config/funxy.yaml shape (a flat yaml.v3
// struct with tagged fields, loaded with one os.ReadFile + yaml.Unmarshal).
type EmitConfig struct {
	// OutDir is the directory output source files are written under.
	OutDir string `yaml:"outDir"`

	// Emitter selects which registered fixture emitter to run. "go" is the
	// only one this module ships (internal/fixture.GoEmitter).
	Emitter string `yaml:"emitter"`

	// Tags are passed through to CreateEmitterContext/CreateAssetEmitter.
	Tags []string `yaml:"tags,omitempty"`

	// EmitGlobalNamespace and EmitCadlNamespace mirror ProgramOptions.
	EmitGlobalNamespace bool `yaml:"emitGlobalNamespace,omitempty"`
	EmitCadlNamespace   bool `yaml:"emitCadlNamespace,omitempty"`
}

// LoadEmitConfig reads and parses an emit.yaml file.
func LoadEmitConfig(path string) (*EmitConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	var cfg EmitConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if cfg.OutDir == "" {
		cfg.OutDir = "."
	}
	if cfg.Emitter == "" {
		cfg.Emitter = "go"
	}
	return &cfg, nil
}
