// Package placeholder implements the single-assignment deferred value cell
// of spec §4.2 and the builders (StringBuilder, ObjectBuilder, ArrayBuilder)
// that accept either concrete values or placeholders and finalize once every
// placeholder segment/slot has resolved.
//
// Grounded on the teacher's prettyprinter.CodePrinter, which accumulates
// output into a buffer incrementally; here the buffer may contain deferred
// segments that are not yet known.
package placeholder

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Placeholder is a single-assignment cell with observer callbacks. Listeners
// registered before or after resolution both see the value exactly once.
type Placeholder struct {
	id        string
	resolved  bool
	value     any
	listeners []func(any)
}

// New creates an unresolved placeholder. A uuid correlation id is stamped on
// every instance (SPEC_FULL.md domain stack: google/uuid) and exposed by ID;
// StillCircularError does not carry it.
func New() *Placeholder {
	return &Placeholder{id: uuid.NewString()}
}

// ID returns the placeholder's correlation id.
func (p *Placeholder) ID() string { return p.id }

// SetValue resolves the placeholder and notifies every registered listener.
// A placeholder is single-assignment: a second call is a no-op, matching the
// "single-assignment cell" contract of spec §4.2.
func (p *Placeholder) SetValue(v any) {
	if p.resolved {
		return
	}
	p.resolved = true
	p.value = v
	listeners := p.listeners
	p.listeners = nil
	for _, l := range listeners {
		l(v)
	}
}

// OnResolve registers a completion callback. If the placeholder is already
// resolved the callback runs immediately and synchronously.
func (p *Placeholder) OnResolve(cb func(any)) {
	if p.resolved {
		cb(p.value)
		return
	}
	p.listeners = append(p.listeners, cb)
}

// Resolved reports whether SetValue has been called.
func (p *Placeholder) Resolved() bool { return p.resolved }

// Value returns the resolved value, or nil if unresolved.
func (p *Placeholder) Value() any { return p.value }

// From type-asserts v as a *Placeholder.
func From(v any) (*Placeholder, bool) {
	ph, ok := v.(*Placeholder)
	return ph, ok
}

// stringOf renders a builder segment/slot value as a string for the final
// render, unwrapping a resolved placeholder.
func stringOf(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case *Placeholder:
		if !s.resolved {
			return ""
		}
		return stringOf(s.value)
	default:
		return fmt.Sprint(v)
	}
}

// StringBuilder stores a list of segments, each either a literal string or a
// placeholder, and fires its own completion once every placeholder segment
// has resolved.
type StringBuilder struct {
	segments []any
	pending  int
	done     *Placeholder
}

// NewStringBuilder builds a StringBuilder over the given segments,
// registering completion callbacks for any unresolved placeholders.
func NewStringBuilder(segments ...any) *StringBuilder {
	b := &StringBuilder{segments: segments, done: New()}
	for _, seg := range segments {
		if ph, ok := seg.(*Placeholder); ok && !ph.Resolved() {
			b.pending++
		}
	}
	if b.pending == 0 {
		b.done.SetValue(b.render())
		return b
	}
	for _, seg := range segments {
		if ph, ok := seg.(*Placeholder); ok && !ph.Resolved() {
			ph.OnResolve(func(any) {
				b.pending--
				if b.pending == 0 {
					b.done.SetValue(b.render())
				}
			})
		}
	}
	return b
}

func (b *StringBuilder) render() string {
	var sb strings.Builder
	for _, seg := range b.segments {
		sb.WriteString(stringOf(seg))
	}
	return sb.String()
}

// Placeholder returns the builder's completion cell.
func (b *StringBuilder) Placeholder() *Placeholder { return b.done }

// Result returns the finished string directly if already resolved, else the
// builder's placeholder — this is the flattening behavior the template
// helper (Template, below) relies on.
func (b *StringBuilder) Result() any {
	if b.done.Resolved() {
		return b.done.Value()
	}
	return b.done
}

// Template flattens nested literal/placeholder arguments into a single
// builder, per spec §4.2: returns a plain string if every argument is
// already resolved, else the builder's placeholder, which resolves to the
// full string once the unresolved parts do.
func Template(parts ...any) any {
	return NewStringBuilder(parts...).Result()
}

// ObjectBuilder stores keyed slots whose values may be concrete or
// placeholders, publishing the completed object once every slot resolves.
type ObjectBuilder struct {
	order   []string
	slots   map[string]any
	pending int
	done    *Placeholder
}

func NewObjectBuilder() *ObjectBuilder {
	return &ObjectBuilder{slots: map[string]any{}, done: New()}
}

// Set assigns a key's value, tracking it if it is an unresolved placeholder.
func (b *ObjectBuilder) Set(key string, value any) {
	if _, exists := b.slots[key]; !exists {
		b.order = append(b.order, key)
	}
	b.slots[key] = value
	if ph, ok := value.(*Placeholder); ok && !ph.Resolved() {
		b.pending++
		ph.OnResolve(func(v any) {
			b.slots[key] = v
			b.pending--
			b.checkDone()
		})
	}
}

func (b *ObjectBuilder) checkDone() {
	if b.pending == 0 && !b.done.Resolved() {
		b.done.SetValue(b.Snapshot())
	}
}

// Snapshot returns the current slot values as a map (a Go map, so the
// insertion order the builder tracks is not carried over). Any slot still
// holding an unresolved placeholder is returned as that placeholder.
func (b *ObjectBuilder) Snapshot() map[string]any {
	out := make(map[string]any, len(b.order))
	for _, k := range b.order {
		out[k] = b.slots[k]
	}
	return out
}

// Finalize returns the completed map directly if every slot has already
// resolved, else the builder's placeholder.
func (b *ObjectBuilder) Finalize() any {
	b.checkDone()
	if b.pending == 0 {
		return b.Snapshot()
	}
	return b.done
}

// Placeholder returns the builder's completion cell.
func (b *ObjectBuilder) Placeholder() *Placeholder {
	b.checkDone()
	return b.done
}

// ArrayBuilder is an ObjectBuilder specialized to integer-indexed slots.
type ArrayBuilder struct {
	slots   []any
	pending int
	done    *Placeholder
}

func NewArrayBuilder() *ArrayBuilder {
	return &ArrayBuilder{done: New()}
}

// Append adds a value to the next index, tracking it if it is an unresolved
// placeholder.
func (b *ArrayBuilder) Append(value any) {
	idx := len(b.slots)
	b.slots = append(b.slots, value)
	if ph, ok := value.(*Placeholder); ok && !ph.Resolved() {
		b.pending++
		ph.OnResolve(func(v any) {
			b.slots[idx] = v
			b.pending--
			b.checkDone()
		})
	}
}

func (b *ArrayBuilder) checkDone() {
	if b.pending == 0 && !b.done.Resolved() {
		b.done.SetValue(b.Snapshot())
	}
}

// Snapshot returns a copy of the current slot values.
func (b *ArrayBuilder) Snapshot() []any {
	out := make([]any, len(b.slots))
	copy(out, b.slots)
	return out
}

// Finalize returns the completed slice directly if every slot has already
// resolved, else the builder's placeholder.
func (b *ArrayBuilder) Finalize() any {
	b.checkDone()
	if b.pending == 0 {
		return b.Snapshot()
	}
	return b.done
}

// Placeholder returns the builder's completion cell.
func (b *ArrayBuilder) Placeholder() *Placeholder {
	b.checkDone()
	return b.done
}
