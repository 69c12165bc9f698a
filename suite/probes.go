// Package suite exposes the cost comparison probes as named, independently
// runnable timed operations, and runs them through the standard benchmark
// framework.
package suite

import (
	"fmt"
	"regexp"
	"testing"

	"dispatch-cost/probe"
)

// Probe groups.
const (
	GroupConstruct = "construct"
	GroupInvoke    = "invoke"
	GroupGuard     = "guard"
)

// Probe is one named timed operation.
type Probe struct {
	Name        string
	Group       string
	Description string
	Bench       func(b *testing.B)
}

// Heap probes park their allocation here so that escape analysis cannot keep it
// on the stack. Nothing ever frees the previous value; the garbage collector does.
var (
	simpleSink *probe.Simple
	proberSink probe.Prober
)

// Probes returns every probe in report order.
func Probes() []Probe {
	return []Probe{
		{
			Name:        "NewSimple",
			Group:       GroupConstruct,
			Description: "construct a Simple on the stack",
			Bench:       benchNewSimple,
		},
		{
			Name:        "NewSimpleHeap",
			Group:       GroupConstruct,
			Description: "allocate a Simple on the heap, never freed explicitly",
			Bench:       benchNewSimpleHeap,
		},
		{
			Name:        "NewPolymorphic",
			Group:       GroupConstruct,
			Description: "construct a Polymorphic into a Prober on the stack",
			Bench:       benchNewPolymorphic,
		},
		{
			Name:        "NewPolymorphicHeap",
			Group:       GroupConstruct,
			Description: "allocate a Polymorphic on the heap behind a Prober, never freed explicitly",
			Bench:       benchNewPolymorphicHeap,
		},
		{
			Name:        "CallMethod",
			Group:       GroupInvoke,
			Description: "call Method on a Simple (static dispatch)",
			Bench:       benchCallMethod,
		},
		{
			Name:        "CallVirtualMethod",
			Group:       GroupInvoke,
			Description: "call Method through a Prober (dynamic dispatch)",
			Bench:       benchCallVirtualMethod,
		},
		{
			Name:        "CheckException",
			Group:       GroupGuard,
			Description: "guarded MethodThrow on a Simple, panic recovered and discarded",
			Bench:       benchCheckException,
		},
		{
			Name:        "CheckExceptionV",
			Group:       GroupGuard,
			Description: "guarded MethodThrow through a Prober, panic recovered and discarded",
			Bench:       benchCheckExceptionV,
		},
		{
			Name:        "CheckError",
			Group:       GroupGuard,
			Description: "MethodErr on a Simple, error checked and discarded",
			Bench:       benchCheckError,
		},
		{
			Name:        "CheckErrorV",
			Group:       GroupGuard,
			Description: "MethodErr through a Prober, error checked and discarded",
			Bench:       benchCheckErrorV,
		},
	}
}

// Lookup returns the probe with the given name.
func Lookup(name string) (Probe, bool) {
	for _, p := range Probes() {
		if p.Name == name {
			return p, true
		}
	}
	return Probe{}, false
}

// Select returns the probes whose name matches filter, keeping their order.
// A nil filter selects everything. ErrNoProbes is returned when nothing matches.
func Select(probes []Probe, filter *regexp.Regexp) ([]Probe, error) {
	if filter == nil {
		return probes, nil
	}

	selected := make([]Probe, 0, len(probes))
	for _, p := range probes {
		if filter.MatchString(p.Name) {
			selected = append(selected, p)
		}
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("%w: filter %q", ErrNoProbes, filter.String())
	}
	return selected, nil
}

func benchNewSimple(b *testing.B) {
	var result probe.Simple
	for i := 0; i < b.N; i++ {
		result = probe.Simple{}
	}
	_ = result
}

func benchNewSimpleHeap(b *testing.B) {
	for i := 0; i < b.N; i++ {
		simpleSink = new(probe.Simple)
	}
}

func benchNewPolymorphic(b *testing.B) {
	var result probe.Prober
	for i := 0; i < b.N; i++ {
		result = probe.Polymorphic{}
	}
	_ = result
}

func benchNewPolymorphicHeap(b *testing.B) {
	for i := 0; i < b.N; i++ {
		proberSink = &probe.Polymorphic{}
	}
}

func benchCallMethod(b *testing.B) {
	s := probe.NewSimple()
	var result int
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		result = s.Method()
	}
	_ = result
}

func benchCallVirtualMethod(b *testing.B) {
	p := probe.NewPolymorphic()
	var result int
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		result = p.Method()
	}
	_ = result
}

func benchCheckException(b *testing.B) {
	s := probe.NewSimple()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = probe.Guard(s.MethodThrow)
	}
}

func benchCheckExceptionV(b *testing.B) {
	p := probe.NewPolymorphic()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = probe.Guard(p.MethodThrow)
	}
}

func benchCheckError(b *testing.B) {
	s := probe.NewSimple()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = probe.GuardErr(s.MethodErr)
	}
}

func benchCheckErrorV(b *testing.B) {
	p := probe.NewPolymorphic()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = probe.GuardErr(p.MethodErr)
	}
}
