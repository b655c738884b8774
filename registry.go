package cadence

import (
	"errors"
	"fmt"
)

// ErrUnknownCallback is returned when a script names a callback that was
// never registered.
var ErrUnknownCallback = errors.New("cadence: unknown callback")

// Registry maps string IDs to the callbacks scripts refer to. Registration
// happens at startup; a Registry is not safe for concurrent registration.
type Registry struct {
	triggers map[string]func()
	customs  map[string]CustomFunc
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		triggers: make(map[string]func()),
		customs:  make(map[string]CustomFunc),
	}
}

// RegisterTrigger registers fn for trigger steps. Registering an ID twice
// panics.
func (r *Registry) RegisterTrigger(id string, fn func()) {
	if _, dup := r.triggers[id]; dup {
		panic(fmt.Sprintf("cadence: trigger %q already registered", id))
	}
	r.triggers[id] = fn
}

// RegisterCustom registers fn for custom steps. Registering an ID twice
// panics.
func (r *Registry) RegisterCustom(id string, fn CustomFunc) {
	if _, dup := r.customs[id]; dup {
		panic(fmt.Sprintf("cadence: custom %q already registered", id))
	}
	r.customs[id] = fn
}

// Trigger returns the trigger registered as id.
func (r *Registry) Trigger(id string) (func(), error) {
	if fn, ok := r.triggers[id]; ok {
		return fn, nil
	}
	return nil, fmt.Errorf("%w: trigger %q", ErrUnknownCallback, id)
}

// Custom returns the custom callback registered as id.
func (r *Registry) Custom(id string) (CustomFunc, error) {
	if fn, ok := r.customs[id]; ok {
		return fn, nil
	}
	return nil, fmt.Errorf("%w: custom %q", ErrUnknownCallback, id)
}
