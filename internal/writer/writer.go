// Package writer implements the output writer of spec §4.8: it runs the
// source files an AssetEmitter accumulated through a fixed sequence of
// stages — render, then host-write — in creation order, exactly once per
// file.
//
// Grounded on the teacher's pipeline.Pipeline: a small ordered sequence of
// stages threaded through a shared context, generalized here from compiler
// phases over one AST to render-then-write stages over many source files.
package writer

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/bterlson/cadl-emitter-framework/internal/scopegraph"
)

// SourceFileRenderer renders a *scopegraph.SourceFile into its path and
// final contents, wired by AssetEmitter to userEmitter.SourceFile(sf).
type SourceFileRenderer func(sf *scopegraph.SourceFile) (path string, contents string, err error)

// Host is the filesystem sink a run writes into.
type Host interface {
	WriteFile(path string, contents string) error
}

// Stats reports what a Pipeline.Run wrote, for -verbose logging.
type Stats struct {
	FilesWritten int
	BytesWritten int
}

// Pipeline runs the render and write stages over a fixed, ordered list of
// source files.
type Pipeline struct {
	render SourceFileRenderer
	host   Host
}

// New builds a writer pipeline. render must be non-nil; host is where
// rendered contents land.
func New(render SourceFileRenderer, host Host) *Pipeline {
	return &Pipeline{render: render, host: host}
}

// Run renders and writes every file in files, in order, stopping at the
// first error (spec §4.8: "no ordering guarantee across files beyond
// creation order").
func (p *Pipeline) Run(files []*scopegraph.SourceFile) (Stats, error) {
	var stats Stats
	for _, sf := range files {
		path, contents, err := p.render(sf)
		if err != nil {
			return stats, fmt.Errorf("writer: rendering %s: %w", sf.Path, err)
		}
		if err := p.host.WriteFile(path, contents); err != nil {
			return stats, fmt.Errorf("writer: writing %s: %w", path, err)
		}
		stats.FilesWritten++
		stats.BytesWritten += len(contents)
	}
	return stats, nil
}

// Summary formats a human-readable one-liner for -verbose CLI output, using
// the same humanize.Bytes formatting the teacher's CLI byte-count
// diagnostics use.
func (s Stats) Summary(elapsed time.Duration) string {
	return fmt.Sprintf("wrote %d file(s), %s, in %s",
		s.FilesWritten, humanize.Bytes(uint64(s.BytesWritten)), humanize.RelTime(time.Now().Add(-elapsed), time.Now(), "", ""))
}
