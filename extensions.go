package squall

import (
	"reflect"
	"sync"
)

// Extensions is a registry of shared values keyed by their static type,
// at most one value per type. It hands context (HTTP clients, database
// handles, watchers) into Async command bodies without globals.
//
// Values are registered before the program starts and the registry is
// sealed when Run begins; from then on it is read-only and safe for
// concurrent Get calls without caller locking. The zero value is ready
// to use.
type Extensions struct {
	mu     sync.RWMutex
	values map[reflect.Type]any
	sealed bool
}

// NewExtensions creates an empty registry.
func NewExtensions() *Extensions {
	return &Extensions{values: make(map[reflect.Type]any)}
}

// Insert stores value under its static type T. Inserting a second value
// of the same type overwrites the first. Insert panics once the owning
// program has started; registration is a construction-time activity.
func Insert[T any](ext *Extensions, value T) {
	if ext == nil {
		panic("squall: Insert on nil Extensions")
	}
	ext.mu.Lock()
	defer ext.mu.Unlock()

	if ext.sealed {
		panic("squall: Insert on a running program")
	}
	if ext.values == nil {
		ext.values = make(map[reflect.Type]any)
	}
	ext.values[typeKey[T]()] = value
}

// Get returns the value stored under type T. Absence is normal and
// reported through the second return value.
func Get[T any](ext *Extensions) (T, bool) {
	var zero T
	if ext == nil {
		return zero, false
	}
	ext.mu.RLock()
	defer ext.mu.RUnlock()

	v, ok := ext.values[typeKey[T]()]
	if !ok {
		return zero, false
	}
	return v.(T), true
}

// MustGet returns the value stored under type T and panics when no such
// value was registered. Use it for dependencies the program cannot run
// without.
func MustGet[T any](ext *Extensions) T {
	v, ok := Get[T](ext)
	if !ok {
		panic("squall: no extension of type " + typeKey[T]().String())
	}
	return v
}

// seal makes the registry read-only. Called by Run before the loop
// starts.
func (e *Extensions) seal() {
	e.mu.Lock()
	e.sealed = true
	e.mu.Unlock()
}

// typeKey returns the registry key for T. Going through a pointer keeps
// interface types usable as keys.
func typeKey[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
