// Command cadlemit is a minimal CLI driver demonstrating
// CreateEmitterContext -> CreateAssetEmitter -> EmitProgram -> WriteOutput
// against the synthetic demo type graph, in the style of the teacher's
// cmd/funxy/main.go (manual os.Args dispatch, no flag-parsing library).
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/bterlson/cadl-emitter-framework/internal/config"
	"github.com/bterlson/cadl-emitter-framework/internal/fixture"
	"github.com/bterlson/cadl-emitter-framework/internal/typegraph"
	"github.com/bterlson/cadl-emitter-framework/pkg/emitter"
)

var colorOut = isatty.IsTerminal(os.Stdout.Fd())

func logf(format string, args ...any) {
	if !config.Verbose {
		return
	}
	if colorOut {
		fmt.Fprintf(os.Stderr, "\x1b[36m==>\x1b[0m "+format+"\n", args...)
		return
	}
	fmt.Fprintf(os.Stderr, "==> "+format+"\n", args...)
}

type fileHost struct{ dir string }

func (h fileHost) WriteFile(path, contents string) error {
	full := filepath.Join(h.dir, path)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	return os.WriteFile(full, []byte(contents), 0o644)
}

func demoProgram() *emitter.Program {
	global := &typegraph.Namespace{Name: ""}
	foo, bar := typegraph.TwoTypeCycle()
	global.Models = append(global.Models, foo, bar)
	return &emitter.Program{GlobalNamespace: global}
}

func run() error {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s [-verbose] <emit.yaml>\n", os.Args[0])
		return fmt.Errorf("cadlemit: missing config path")
	}
	args := os.Args[1:]
	cfgPath := ""
	for _, a := range args {
		switch a {
		case "-verbose", "--verbose":
			config.Verbose = true
		default:
			cfgPath = a
		}
	}
	if cfgPath == "" {
		return fmt.Errorf("cadlemit: missing config path")
	}

	cfg, err := config.LoadEmitConfig(cfgPath)
	if err != nil {
		return err
	}
	logf("loaded %s (outDir=%s emitter=%s)", cfgPath, cfg.OutDir, cfg.Emitter)

	ctx := emitter.CreateEmitterContext(demoProgram(), fileHost{dir: cfg.OutDir}, cfg.Tags...)

	var ae *emitter.AssetEmitter
	switch cfg.Emitter {
	case "go":
		ae = fixture.NewGoEmitter(ctx)
	default:
		return fmt.Errorf("cadlemit: unknown emitter %q", cfg.Emitter)
	}

	start := time.Now()
	if err := ae.EmitProgram(emitter.ProgramOptions{
		EmitGlobalNamespace: cfg.EmitGlobalNamespace,
		EmitCadlNamespace:   cfg.EmitCadlNamespace,
	}); err != nil {
		return fmt.Errorf("cadlemit: emit: %w", err)
	}

	stats, err := ae.WriteOutput()
	if err != nil {
		return fmt.Errorf("cadlemit: write: %w", err)
	}
	logf("%s", stats.Summary(time.Since(start)))
	fmt.Printf("wrote %d file(s), %s\n", stats.FilesWritten, humanize.Bytes(uint64(stats.BytesWritten)))
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
