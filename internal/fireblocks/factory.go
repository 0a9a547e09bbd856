package fireblocks

import (
	"sync"
	"sync/atomic"

	gwerrors "github.com/relaedzc/simple-fireblocks-service/internal/errors"
)

// State is the factory lifecycle state.
type State int32

const (
	StateUninitialized State = iota
	StateInitializing
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Builder constructs the backend client. It runs at most once per process.
type Builder func() (*Client, error)

// Factory owns the singleton backend client. Exactly one caller performs
// credential loading and construction; concurrent first callers block on
// that result. Once FAILED, every call fails fast with the original
// configuration error until the process is restarted — re-attempting with
// a bad credential risks lockout on the backend side.
type Factory struct {
	build Builder

	ready atomic.Pointer[Client]
	state atomic.Int32

	mu  sync.Mutex
	err error
}

// NewFactory creates an uninitialized factory.
func NewFactory(build Builder) *Factory {
	f := &Factory{build: build}
	f.state.Store(int32(StateUninitialized))
	return f
}

// Client returns the singleton client, constructing it on first use.
// The READY fast path is a single atomic load.
func (f *Factory) Client() (*Client, error) {
	if c := f.ready.Load(); c != nil {
		return c, nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	switch State(f.state.Load()) {
	case StateReady:
		return f.ready.Load(), nil
	case StateFailed:
		return nil, f.err
	}

	f.state.Store(int32(StateInitializing))
	client, err := f.build()
	if err != nil {
		f.err = gwerrors.Config(err)
		f.state.Store(int32(StateFailed))
		return nil, f.err
	}

	f.ready.Store(client)
	f.state.Store(int32(StateReady))
	return client, nil
}

// State returns the current lifecycle state without blocking on an
// in-flight initialization.
func (f *Factory) State() State {
	return State(f.state.Load())
}
