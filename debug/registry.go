package debug

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrUnknownItem  = errors.New("debug: unknown item")
	ErrUnknownGroup = errors.New("debug: unknown group")
	ErrGroupExists  = errors.New("debug: group already exists")
)

// State is the overlay state of a registered item.
type State uint8

const (
	Disabled State = iota
	Enabled
)

func (s State) String() string {
	if s == Enabled {
		return "enabled"
	}
	return "disabled"
}

type item struct {
	target Debuggable
	state  State
	group  string
}

type watch struct {
	name  string
	value func() string
}

// Registry tracks debuggable entities by id. Every change of overlay state
// goes through Enable or Disable so the sink always matches the recorded state.
type Registry struct {
	sink       Sink
	items      map[uuid.UUID]*item
	groups     map[string][]uuid.UUID
	groupOrder []string
	watches    []watch
	showValues bool
}

func NewRegistry(sink Sink) *Registry {
	return &Registry{
		sink:   sink,
		items:  make(map[uuid.UUID]*item),
		groups: make(map[string][]uuid.UUID),
	}
}

// Add registers d outside any group.
func (r *Registry) Add(d Debuggable) uuid.UUID {
	id := uuid.New()
	r.items[id] = &item{target: d}
	return id
}

// AddGroup registers ds under name so they can be toggled together.
func (r *Registry) AddGroup(name string, ds ...Debuggable) ([]uuid.UUID, error) {
	if _, ok := r.groups[name]; ok {
		return nil, fmt.Errorf("%w: %s", ErrGroupExists, name)
	}
	ids := make([]uuid.UUID, 0, len(ds))
	for _, d := range ds {
		id := uuid.New()
		r.items[id] = &item{target: d, group: name}
		ids = append(ids, id)
	}
	r.groups[name] = ids
	r.groupOrder = append(r.groupOrder, name)
	return ids, nil
}

// State reports the state of id.
func (r *Registry) State(id uuid.UUID) (State, bool) {
	it, ok := r.items[id]
	if !ok {
		return Disabled, false
	}
	return it.state, true
}

func (r *Registry) Enable(id uuid.UUID) error {
	it, ok := r.items[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownItem, id)
	}
	if it.state == Enabled {
		return nil
	}
	it.target.DebugEnable(r.sink)
	it.state = Enabled
	return nil
}

func (r *Registry) Disable(id uuid.UUID) error {
	it, ok := r.items[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownItem, id)
	}
	if it.state == Disabled {
		return nil
	}
	it.target.DebugDisable()
	it.state = Disabled
	return nil
}

func (r *Registry) Toggle(id uuid.UUID) error {
	st, ok := r.State(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownItem, id)
	}
	if st == Enabled {
		return r.Disable(id)
	}
	return r.Enable(id)
}

// Remove disables id and forgets it.
func (r *Registry) Remove(id uuid.UUID) {
	it, ok := r.items[id]
	if !ok {
		return
	}
	_ = r.Disable(id)
	if it.group != "" {
		ids := r.groups[it.group]
		for i, gid := range ids {
			if gid == id {
				r.groups[it.group] = append(ids[:i], ids[i+1:]...)
				break
			}
		}
	}
	delete(r.items, id)
}

func (r *Registry) EnableGroup(name string) error {
	return r.eachInGroup(name, r.Enable)
}

func (r *Registry) DisableGroup(name string) error {
	return r.eachInGroup(name, r.Disable)
}

func (r *Registry) ToggleGroup(name string) error {
	return r.eachInGroup(name, r.Toggle)
}

// RemoveGroup disables every member of name and drops the group.
func (r *Registry) RemoveGroup(name string) error {
	ids, ok := r.groups[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownGroup, name)
	}
	for _, id := range ids {
		_ = r.Disable(id)
		delete(r.items, id)
	}
	delete(r.groups, name)
	for i, g := range r.groupOrder {
		if g == name {
			r.groupOrder = append(r.groupOrder[:i], r.groupOrder[i+1:]...)
			break
		}
	}
	return nil
}

// ToggleAll flips the watched values display and every group.
func (r *Registry) ToggleAll() {
	r.showValues = !r.showValues
	for _, name := range r.groupOrder {
		_ = r.ToggleGroup(name)
	}
}

// Clear disables and forgets everything, including watches.
func (r *Registry) Clear() {
	for id := range r.items {
		_ = r.Disable(id)
	}
	r.items = make(map[uuid.UUID]*item)
	r.groups = make(map[string][]uuid.UUID)
	r.groupOrder = nil
	r.watches = nil
}

// Watch registers a named value shown while values are displayed.
func (r *Registry) Watch(name string, value func() string) {
	r.watches = append(r.watches, watch{name: name, value: value})
}

// ShowValues sets whether Values reports anything.
func (r *Registry) ShowValues(show bool) {
	r.showValues = show
}

// Values renders the watched values as "name: value" lines.
func (r *Registry) Values() []string {
	if !r.showValues {
		return nil
	}
	out := make([]string, 0, len(r.watches))
	for _, w := range r.watches {
		out = append(out, fmt.Sprintf("%s: %s", w.name, w.value()))
	}
	return out
}

func (r *Registry) eachInGroup(name string, fn func(uuid.UUID) error) error {
	ids, ok := r.groups[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownGroup, name)
	}
	for _, id := range ids {
		if err := fn(id); err != nil {
			return err
		}
	}
	return nil
}
