package multiplier

import (
	"fmt"
	"sort"
	"sync"
)

// Factory gives access to the strategies of one suite.
type Factory interface {
	// Suite returns the suite served by the factory.
	Suite() Suite
	// Get returns the strategy registered under name.
	Get(name string) (Multiplier, error)
	// List returns the registered names in sorted order.
	List() []string
}

// DefaultFactory is a concurrency-safe registry of strategies.
type DefaultFactory struct {
	suite Suite

	mu          sync.RWMutex
	multipliers map[string]Multiplier
}

var _ Factory = (*DefaultFactory)(nil)

// NewFactory returns an empty registry for suite.
func NewFactory(suite Suite) *DefaultFactory {
	return &DefaultFactory{suite: suite, multipliers: make(map[string]Multiplier)}
}

// NewDefaultFactory returns a registry pre-populated with the built-in
// strategies of suite.
func NewDefaultFactory(suite Suite) (*DefaultFactory, error) {
	var ms []Multiplier
	switch suite {
	case SuiteU32:
		ms = u32Multipliers()
	case SuiteFP21:
		ms = fp21Multipliers()
	default:
		return nil, fmt.Errorf("unknown suite %q (accepted values: %s)", suite, SuiteList())
	}

	f := NewFactory(suite)
	for _, m := range ms {
		if err := f.Register(m); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Suite returns the suite served by the factory.
func (f *DefaultFactory) Suite() Suite {
	return f.suite
}

// Register adds m under its name. Registering a name twice is an error.
func (f *DefaultFactory) Register(m Multiplier) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.multipliers[m.Name()]; exists {
		return fmt.Errorf("multiplier %q already registered in suite %s", m.Name(), f.suite)
	}
	f.multipliers[m.Name()] = m
	return nil
}

// Get returns the strategy registered under name.
func (f *DefaultFactory) Get(name string) (Multiplier, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	m, ok := f.multipliers[name]
	if !ok {
		return nil, fmt.Errorf("unknown algorithm %q for suite %s", name, f.suite)
	}
	return m, nil
}

// List returns the registered names in sorted order.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	names := make([]string, 0, len(f.multipliers))
	for name := range f.multipliers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Names returns the sorted names of the built-in strategies of suite, or nil
// for an unknown suite.
func Names(suite Suite) []string {
	f, err := NewDefaultFactory(suite)
	if err != nil {
		return nil
	}
	return f.List()
}
