package recording

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
)

// ErrUnknownBackend is returned by NewBackend for a name no backend
// package registered.
var ErrUnknownBackend = errors.New("recording: unknown backend")

// Output classifies what a backend produces from a recording.
type Output uint8

const (
	// OutputText backends write a textual rendition (WriterBackend).
	OutputText Output = iota
	// OutputImage backends draw the frame (ImageBackend).
	OutputImage
	// OutputDevice backends submit to a GPU command encoder and need the
	// encoder and the physical resources passed as options.
	OutputDevice
)

// String returns the output name.
func (o Output) String() string {
	switch o {
	case OutputText:
		return "text"
	case OutputImage:
		return "image"
	case OutputDevice:
		return "device"
	default:
		return fmt.Sprintf("Output(%d)", int(o))
	}
}

// BackendInfo describes a registered backend.
type BackendInfo struct {
	Name    string
	Output  Output
	Summary string
}

// BackendConfig carries the options passed to NewBackend. Backend packages
// define their own option constructors on top of WithValue, keyed by
// unexported types, the way context values are.
type BackendConfig struct {
	values map[any]any
}

// Value returns the value stored under key, or nil.
func (c *BackendConfig) Value(key any) any {
	return c.values[key]
}

// BackendOption configures a backend created by NewBackend.
type BackendOption func(*BackendConfig)

// WithValue stores val under key in the backend configuration.
func WithValue(key, val any) BackendOption {
	return func(c *BackendConfig) {
		c.values[key] = val
	}
}

// BackendFactory creates a backend from its configuration. It returns an
// error when a required option is missing.
type BackendFactory func(cfg *BackendConfig) (Backend, error)

type registration struct {
	info    BackendInfo
	factory BackendFactory
}

var (
	registryMu sync.RWMutex
	backends   = make(map[string]registration)
)

// Register makes a backend available under info.Name. Backend packages
// call it from init(), following the database/sql driver pattern:
//
//	func init() {
//	    recording.Register(recording.BackendInfo{
//	        Name:    "trace",
//	        Output:  recording.OutputText,
//	        Summary: "indented text trace",
//	    }, func(*recording.BackendConfig) (recording.Backend, error) {
//	        return NewBackend(), nil
//	    })
//	}
//
// Register panics on an empty name, a nil factory or a duplicate name.
func Register(info BackendInfo, factory BackendFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if info.Name == "" {
		panic("recording: Register with empty backend name")
	}
	if factory == nil {
		panic("recording: Register factory is nil for " + info.Name)
	}
	if _, dup := backends[info.Name]; dup {
		panic("recording: Register called twice for " + info.Name)
	}
	backends[info.Name] = registration{info: info, factory: factory}
}

// NewBackend creates the backend registered as name, configured by opts.
//
//	import _ "github.com/gogpu/framegraph/recording/backends/trace"
//
//	backend, err := recording.NewBackend("trace")
//
// An unregistered name gives an error wrapping ErrUnknownBackend that
// hints at a forgotten import. Factory errors are wrapped with the name.
func NewBackend(name string, opts ...BackendOption) (Backend, error) {
	registryMu.RLock()
	reg, ok := backends[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q (forgotten import?)", ErrUnknownBackend, name)
	}
	cfg := &BackendConfig{values: make(map[any]any)}
	for _, opt := range opts {
		opt(cfg)
	}
	b, err := reg.factory(cfg)
	if err != nil {
		return nil, fmt.Errorf("recording: backend %q: %w", name, err)
	}
	return b, nil
}

// Lookup returns the description of the backend registered as name.
func Lookup(name string) (BackendInfo, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	reg, ok := backends[name]
	return reg.info, ok
}

// Backends returns the registered backends sorted by name.
func Backends() []BackendInfo {
	registryMu.RLock()
	defer registryMu.RUnlock()

	out := make([]BackendInfo, 0, len(backends))
	for _, name := range slices.Sorted(maps.Keys(backends)) {
		out = append(out, backends[name].info)
	}
	return out
}
