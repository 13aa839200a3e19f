// Package variant declares the clustering variants: which aggregation feeds
// k-means, with what k, and how the result is displayed.
package variant

import (
	"errors"
	"fmt"

	"smart-meter-exploration/internal/config"
)

var (
	// ErrNotFound is returned when looking up an undeclared variant.
	ErrNotFound = errors.New("variant not found")
	// ErrInvalidDescriptor is returned when registering a malformed variant.
	ErrInvalidDescriptor = errors.New("invalid variant descriptor")
)

// Display holds presentation hints for a variant's plots.
type Display struct {
	YLabel     string
	YMin       float64
	YMax       float64
	Normalised bool
}

// Descriptor is one declared variant.
type Descriptor struct {
	Name     string
	Spec     ProducerSpec
	Producer Producer
	K        int
	Display  Display
}

// Registry holds descriptors in declaration order. It is not safe for
// concurrent registration; lookups on a fully built registry are.
type Registry struct {
	order  []string
	byName map[string]Descriptor
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Descriptor)}
}

// Register validates and appends a descriptor.
func (r *Registry) Register(d Descriptor) error {
	switch {
	case d.Name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidDescriptor)
	case d.K < 1:
		return fmt.Errorf("%w: %s: k must be >= 1, got %d", ErrInvalidDescriptor, d.Name, d.K)
	case d.Producer == nil:
		return fmt.Errorf("%w: %s: no producer", ErrInvalidDescriptor, d.Name)
	}
	if _, dup := r.byName[d.Name]; dup {
		return fmt.Errorf("%w: duplicate name %s", ErrInvalidDescriptor, d.Name)
	}
	r.order = append(r.order, d.Name)
	r.byName[d.Name] = d
	return nil
}

// Lookup returns the descriptor with the given name.
func (r *Registry) Lookup(name string) (Descriptor, error) {
	d, ok := r.byName[name]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return d, nil
}

// All returns the descriptors in declaration order.
func (r *Registry) All() []Descriptor {
	out := make([]Descriptor, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}

func (r *Registry) Names() []string { return append([]string(nil), r.order...) }

func (r *Registry) Len() int { return len(r.order) }

// register builds spec and registers the resulting descriptor.
func (r *Registry) register(name string, spec ProducerSpec, k int, display Display) error {
	p, err := spec.Build()
	if err != nil {
		return fmt.Errorf("variant %s: %w", name, err)
	}
	return r.Register(Descriptor{Name: name, Spec: spec, Producer: p, K: k, Display: display})
}

// FromConfig builds a registry from config declarations, in order.
func FromConfig(variants []config.VariantConfig) (*Registry, error) {
	r := NewRegistry()
	for _, v := range variants {
		spec := ProducerSpec{
			Kind:       Kind(v.Kind),
			Normalised: v.Normalised,
			Cumulative: v.Cumulative,
			Mode:       v.Mode,
			Season1:    v.Season1,
			Season2:    v.Season2,
		}
		display := Display{YLabel: v.YLabel, YMin: v.YMin, YMax: v.YMax, Normalised: v.Normalised}
		if err := r.register(v.Name, spec, v.K, display); err != nil {
			return nil, err
		}
	}
	return r, nil
}
