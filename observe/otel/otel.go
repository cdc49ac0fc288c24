package otel

import "github.com/NetPo4ki/go-coscope/scope"

// Nop is a no-op implementation of the scope.Observer interface.
// It serves as a placeholder for an OpenTelemetry-backed observer
// without adding dependencies.
type Nop struct{}

var _ scope.Observer = (*Nop)(nil)

// NewNop returns a no-op observer.
func NewNop() *Nop { return &Nop{} }

func (*Nop) ScopeCreated()           {}
func (*Nop) ScopeCancelled()         {}
func (*Nop) ScopeCompleted(int)      {}
func (*Nop) JobSpawned(uint64)       {}
func (*Nop) JobFinished(uint64, int) {}
func (*Nop) JobDiscarded(uint64)     {}
