package multiply

import (
	"fmt"
	"sort"
	"sync"
)

// Creator builds a strategy for the given options.
type Creator func(opts Options) Engine

// MultiplierFactory creates Multiplier instances by name.
type MultiplierFactory interface {
	// Create returns a fresh Multiplier, or an error for an unknown name.
	Create(name string) (Multiplier, error)

	// Get returns a cached Multiplier, or an error for an unknown name.
	Get(name string) (Multiplier, error)

	// List returns the sorted registered names.
	List() []string

	// Register adds or replaces a strategy.
	Register(name string, creator Creator) error

	// GetAll returns every registered Multiplier.
	GetAll() map[string]Multiplier
}

// builtinMu guards builtins, which build-tagged files extend from init.
var (
	builtinMu sync.Mutex
	builtins  = map[string]Creator{
		"naive":         func(o Options) Engine { return NewNaive(o) },
		"naive-par":     func(o Options) Engine { return NewNaiveParallel(o) },
		"karatsuba":     func(o Options) Engine { return NewKaratsuba(o) },
		"karatsuba-par": func(o Options) Engine { return NewKaratsubaParallel(o) },
		"toomcook":      func(o Options) Engine { return NewToomCook(o) },
		"toomcook-par":  func(o Options) Engine { return NewToomCookParallel(o) },
	}
)

func registerBuiltin(name string, creator Creator) {
	builtinMu.Lock()
	defer builtinMu.Unlock()
	builtins[name] = creator
}

// DefaultFactory is a thread-safe registry of strategies sharing one set of
// Options. Multiplier instances are created lazily and cached.
type DefaultFactory struct {
	mu          sync.RWMutex
	opts        Options
	creators    map[string]Creator
	multipliers map[string]Multiplier
}

// NewFactory creates a factory whose strategies are built with opts.
//
// Pre-registered strategies: "naive", "naive-par", "karatsuba",
// "karatsuba-par", "toomcook", "toomcook-par", and "gmp" when built with the
// gmp tag.
func NewFactory(opts Options) *DefaultFactory {
	f := &DefaultFactory{
		opts:        opts,
		creators:    make(map[string]Creator),
		multipliers: make(map[string]Multiplier),
	}
	builtinMu.Lock()
	for name, creator := range builtins {
		f.creators[name] = creator
	}
	builtinMu.Unlock()
	return f
}

// NewDefaultFactory creates a factory using DefaultOptions.
func NewDefaultFactory() *DefaultFactory {
	return NewFactory(DefaultOptions())
}

// Options returns the options strategies are built with.
func (f *DefaultFactory) Options() Options {
	return f.opts
}

// Register adds a strategy. A strategy with the same name is replaced and
// its cached instance dropped.
func (f *DefaultFactory) Register(name string, creator Creator) error {
	if name == "" || creator == nil {
		return fmt.Errorf("invalid registration for multiplier %q", name)
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	f.creators[name] = creator
	delete(f.multipliers, name)
	return nil
}

// Create returns a fresh, uncached Multiplier.
func (f *DefaultFactory) Create(name string) (Multiplier, error) {
	f.mu.RLock()
	creator, ok := f.creators[name]
	f.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown multiplier: %s", name)
	}
	return NewMultiplier(creator(f.opts)), nil
}

// Get returns the cached Multiplier for name, creating it on first use.
func (f *DefaultFactory) Get(name string) (Multiplier, error) {
	f.mu.RLock()
	if m, exists := f.multipliers[name]; exists {
		f.mu.RUnlock()
		return m, nil
	}
	f.mu.RUnlock()

	f.mu.Lock()
	defer f.mu.Unlock()

	if m, exists := f.multipliers[name]; exists {
		return m, nil
	}
	creator, ok := f.creators[name]
	if !ok {
		return nil, fmt.Errorf("unknown multiplier: %s", name)
	}
	m := NewMultiplier(creator(f.opts))
	f.multipliers[name] = m
	return m, nil
}

// List returns the registered names in alphabetical order.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	names := make([]string, 0, len(f.creators))
	for name := range f.creators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAll initializes every registered strategy and returns a copy of the
// cache.
func (f *DefaultFactory) GetAll() map[string]Multiplier {
	f.mu.Lock()
	defer f.mu.Unlock()

	for name, creator := range f.creators {
		if _, exists := f.multipliers[name]; !exists {
			f.multipliers[name] = NewMultiplier(creator(f.opts))
		}
	}
	result := make(map[string]Multiplier, len(f.multipliers))
	for name, m := range f.multipliers {
		result[name] = m
	}
	return result
}

// MustGet is like Get but panics if name is not registered.
func (f *DefaultFactory) MustGet(name string) Multiplier {
	m, err := f.Get(name)
	if err != nil {
		panic(fmt.Sprintf("multiply: required multiplier not found: %s", name))
	}
	return m
}

// Has reports whether name is registered.
func (f *DefaultFactory) Has(name string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, exists := f.creators[name]
	return exists
}

var globalFactory = NewDefaultFactory()

// GlobalFactory returns the process-wide factory built with DefaultOptions.
func GlobalFactory() *DefaultFactory {
	return globalFactory
}
