// Package probe holds the two stateless types whose construction, dispatch and
// failure costs the suite compares.
//
// Simple is always used through its concrete type, so every call is resolved at
// compile time. Polymorphic is always used through the Prober interface, so every
// call goes through the interface method table.
package probe

import "errors"

// ErrMethodFailed is the failure signalled by MethodThrow and MethodErr.
var ErrMethodFailed = errors.New("probe: method failed")

// Prober is the method surface shared by both probe types.
type Prober interface {
	// Method does nothing and returns 0.
	Method() int
	// MethodThrow never returns: it panics with ErrMethodFailed.
	MethodThrow() int
	// MethodErr returns 0 and ErrMethodFailed.
	MethodErr() (int, error)
}

// Simple is the static dispatch baseline.
//
// The blank field gives the type a non-zero size. Zero-size values all share one
// address inside the runtime and never reach the allocator, which would make the
// heap construction probe measure nothing.
type Simple struct {
	_ byte
}

// NewSimple returns a Simple by value.
func NewSimple() Simple {
	return Simple{}
}

func (Simple) Method() int {
	return 0
}

func (Simple) MethodThrow() int {
	panic(ErrMethodFailed)
}

func (Simple) MethodErr() (int, error) {
	return 0, ErrMethodFailed
}

// Polymorphic has the same surface as Simple but is only ever reached through a
// Prober.
type Polymorphic struct {
	_ byte
}

// NewPolymorphic returns a heap allocated Polymorphic behind its interface.
// It must stay out of line: once inlined, the compiler sees the concrete type and
// devirtualizes the calls the suite means to measure.
//
//go:noinline
func NewPolymorphic() Prober {
	return &Polymorphic{}
}

func (Polymorphic) Method() int {
	return 0
}

func (Polymorphic) MethodThrow() int {
	panic(ErrMethodFailed)
}

func (Polymorphic) MethodErr() (int, error) {
	return 0, ErrMethodFailed
}

var (
	_ Prober = Simple{}
	_ Prober = (*Polymorphic)(nil)
)
