package emitter

import (
	"github.com/bterlson/cadl-emitter-framework/internal/typegraph"
)

// ProgramOptions mirrors emitProgram({emitGlobalNamespace?, emitCadlNamespace?})
// of spec §4.9.
type ProgramOptions struct {
	EmitGlobalNamespace bool
	EmitCadlNamespace   bool
}

// EmitProgram implements the program walk of spec §4.9. With
// EmitGlobalNamespace set, the global namespace itself is emitted as a
// single type and the walk returns. Otherwise it visits, for each
// namespace in the tree (skipping the compiler built-in unless
// EmitCadlNamespace), in this exact order: child namespaces, models,
// operations, enums, unions, interfaces. Template declarations are skipped;
// template instantiations reached via references are emitted normally.
func (ae *AssetEmitter) EmitProgram(opts ProgramOptions) error {
	global := ae.GetProgram().GlobalNamespace
	if global == nil {
		return nil
	}
	if opts.EmitGlobalNamespace {
		_, err := ae.EmitType(global)
		return err
	}
	return ae.walkNamespace(global, opts)
}

func (ae *AssetEmitter) walkNamespace(ns *typegraph.Namespace, opts ProgramOptions) error {
	for _, child := range ns.Namespaces {
		if child.CompilerBuiltin && !opts.EmitCadlNamespace {
			continue
		}
		if err := ae.walkNamespace(child, opts); err != nil {
			return err
		}
	}
	for _, m := range ns.Models {
		if m.IsTemplateDeclaration() {
			continue
		}
		if _, err := ae.EmitType(m); err != nil {
			return err
		}
	}
	for _, op := range ns.Operations {
		if _, err := ae.EmitType(op); err != nil {
			return err
		}
	}
	for _, e := range ns.Enums {
		if _, err := ae.EmitType(e); err != nil {
			return err
		}
	}
	for _, u := range ns.Unions {
		if u.IsTemplateDeclaration() {
			continue
		}
		if _, err := ae.EmitType(u); err != nil {
			return err
		}
	}
	for _, i := range ns.Interfaces {
		if _, err := ae.EmitType(i); err != nil {
			return err
		}
	}
	return nil
}
