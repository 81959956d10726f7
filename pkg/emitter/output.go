package emitter

import (
	"fmt"
	"reflect"

	"github.com/bterlson/cadl-emitter-framework/internal/scopegraph"
	"github.com/bterlson/cadl-emitter-framework/internal/writer"
)

// WriteOutput implements spec §4.8: render every source file created during
// this run, in creation order, and write each exactly once through the
// host.
func (ae *AssetEmitter) WriteOutput() (writer.Stats, error) {
	pipeline := writer.New(ae.renderSourceFile, ae.ctx.Host)
	return pipeline.Run(ae.sourceFiles)
}

// renderSourceFile invokes userEmitter.SourceFile(sf), the one operation the
// dispatcher's reflection-based dispatch does not route through opKey
// derivation (spec §4.8 calls it directly against the finished scope tree).
func (ae *AssetEmitter) renderSourceFile(sf *scopegraph.SourceFile) (string, string, error) {
	v := reflect.ValueOf(ae.userEmitter)
	m := v.MethodByName("SourceFile")
	if !m.IsValid() {
		return "", "", fmt.Errorf("emitter: user emitter has no SourceFile method")
	}
	out := m.Call([]reflect.Value{reflect.ValueOf(sf)})
	if len(out) == 0 {
		return sf.Path, "", nil
	}
	if last := out[len(out)-1]; last.IsValid() {
		if err, ok := last.Interface().(error); ok && err != nil {
			return "", "", err
		}
	}
	var path, contents string
	if out[0].IsValid() {
		switch v := out[0].Interface().(type) {
		case string:
			path = v
		case SourceFileResult:
			path, contents = v.Path, v.Contents
		}
	}
	if len(out) >= 2 {
		if s, ok := out[1].Interface().(string); ok {
			contents = s
		}
	}
	if path == "" {
		path = sf.Path
	}
	return path, contents, nil
}

// SourceFileResult is the {path, contents} pair a SourceFile operation may
// return as a single value instead of two.
type SourceFileResult struct {
	Path     string
	Contents string
}
