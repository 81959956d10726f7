package writer_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bterlson/cadl-emitter-framework/internal/scopegraph"
	"github.com/bterlson/cadl-emitter-framework/internal/writer"
)

type recordingHost struct {
	writes []string
	fail   string
}

func (h *recordingHost) WriteFile(path, contents string) error {
	if h.fail != "" && path == h.fail {
		return errors.New("disk full")
	}
	h.writes = append(h.writes, path+":"+contents)
	return nil
}

func TestPipelineRunWritesInOrder(t *testing.T) {
	sfA := scopegraph.CreateSourceFile("a.go")
	sfB := scopegraph.CreateSourceFile("b.go")
	host := &recordingHost{}
	render := func(sf *scopegraph.SourceFile) (string, string, error) {
		return sf.Path, "contents-" + sf.Path, nil
	}
	p := writer.New(render, host)

	stats, err := p.Run([]*scopegraph.SourceFile{sfA, sfB})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stats.FilesWritten != 2 {
		t.Errorf("FilesWritten = %d, want 2", stats.FilesWritten)
	}
	wantBytes := len("contents-a.go") + len("contents-b.go")
	if stats.BytesWritten != wantBytes {
		t.Errorf("BytesWritten = %d, want %d", stats.BytesWritten, wantBytes)
	}
	want := []string{"a.go:contents-a.go", "b.go:contents-b.go"}
	if len(host.writes) != 2 || host.writes[0] != want[0] || host.writes[1] != want[1] {
		t.Errorf("writes = %v, want %v (in creation order)", host.writes, want)
	}
}

func TestPipelineRunStopsAtFirstRenderError(t *testing.T) {
	sfA := scopegraph.CreateSourceFile("a.go")
	sfB := scopegraph.CreateSourceFile("b.go")
	host := &recordingHost{}
	render := func(sf *scopegraph.SourceFile) (string, string, error) {
		if sf.Path == "a.go" {
			return "", "", errors.New("parse failure")
		}
		return sf.Path, "x", nil
	}
	p := writer.New(render, host)

	stats, err := p.Run([]*scopegraph.SourceFile{sfA, sfB})
	if err == nil {
		t.Fatal("expected an error from the failing render")
	}
	if stats.FilesWritten != 0 {
		t.Errorf("FilesWritten = %d, want 0 (must stop before writing b.go)", stats.FilesWritten)
	}
	if len(host.writes) != 0 {
		t.Errorf("writes = %v, want none", host.writes)
	}
}

func TestPipelineRunStopsAtFirstWriteError(t *testing.T) {
	sfA := scopegraph.CreateSourceFile("a.go")
	sfB := scopegraph.CreateSourceFile("b.go")
	host := &recordingHost{fail: "a.go"}
	render := func(sf *scopegraph.SourceFile) (string, string, error) {
		return sf.Path, "x", nil
	}
	p := writer.New(render, host)

	_, err := p.Run([]*scopegraph.SourceFile{sfA, sfB})
	if err == nil {
		t.Fatal("expected an error from the failing write")
	}
	if len(host.writes) != 0 {
		t.Errorf("writes = %v, want none written after a.go fails", host.writes)
	}
}

func TestStatsSummaryIncludesCounts(t *testing.T) {
	s := writer.Stats{FilesWritten: 3, BytesWritten: 2048}
	summary := s.Summary(10 * time.Millisecond)
	if summary == "" {
		t.Fatal("Summary() returned an empty string")
	}
	if !strings.Contains(summary, "wrote 3 file(s)") {
		t.Errorf("Summary() = %q, want it to include %q", summary, "wrote 3 file(s)")
	}
}
