package config_test

import (
	"testing"

	"github.com/bterlson/cadl-emitter-framework/internal/config"
)

func TestDefaults(t *testing.T) {
	if config.Version == "" {
		t.Error("Version must not be empty")
	}
	if config.Verbose {
		t.Error("Verbose must default to false")
	}
	if config.IsTestMode {
		t.Error("IsTestMode must default to false")
	}
	if config.GoFileExt != ".go" {
		t.Errorf("GoFileExt = %q, want %q", config.GoFileExt, ".go")
	}
}
