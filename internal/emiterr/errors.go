// Package emiterr defines the fatal error kinds the emitter core can raise.
// Every operation is synchronous and none of these are retried: the active
// context frame is always restored before the error propagates to the caller.
package emiterr

import "fmt"

// MissingOperationError is raised when the user emitter has no method for a
// dispatched operation key.
type MissingOperationError struct {
	OpKey string
}

func (e *MissingOperationError) Error() string {
	return fmt.Sprintf("emitter: user emitter has no operation %q", e.OpKey)
}

// MissingContextMethodError is raised when the user emitter has no
// "<opKey>Context" method during the context fold. A missing
// "<opKey>ReferenceContext" method is not an error.
type MissingContextMethodError struct {
	Method string
}

func (e *MissingContextMethodError) Error() string {
	return fmt.Sprintf("emitter: user emitter has no context method %q", e.Method)
}

// ScopeAbsentError is raised when result.Declaration is constructed with no
// current scope in context.
type ScopeAbsentError struct {
	Name string
}

func (e *ScopeAbsentError) Error() string {
	return fmt.Sprintf("emitter: cannot declare %q, no current scope", e.Name)
}

// UnsupportedKindError is raised when a dispatch key cannot be derived for a
// type graph node.
type UnsupportedKindError struct {
	Kind string
}

func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("emitter: unsupported type kind %q", e.Kind)
}

// StillCircularError is raised when a reference operation returns a value
// that is itself unresolved at the moment a waiter fires — a user-introduced
// cycle the framework cannot break on its own.
type StillCircularError struct {
	OpKey string
}

func (e *StillCircularError) Error() string {
	return fmt.Sprintf("emitter: reference for %q is still circular after resolution", e.OpKey)
}

// InvalidTemplateArgumentError is raised when a non-model type is used to
// name a model template instantiation.
type InvalidTemplateArgumentError struct {
	ArgKind string
}

func (e *InvalidTemplateArgumentError) Error() string {
	return fmt.Sprintf("emitter: cannot name template instantiation, argument kind %q is not a model", e.ArgKind)
}

// UnknownIntrinsicError is raised by target emitters (not the core) when they
// cannot map an intrinsic scalar name to a target-language representation.
type UnknownIntrinsicError struct {
	Name string
}

func (e *UnknownIntrinsicError) Error() string {
	return fmt.Sprintf("emitter: unknown intrinsic scalar %q", e.Name)
}
