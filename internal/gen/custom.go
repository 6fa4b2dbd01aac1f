package gen

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"wrapper-generator/internal/feature"
)

// CustomGenerator adds hand written code to generated wrappers.
type CustomGenerator interface {
	// ClassPreCode is written after the class header, before any definition.
	ClassPreCode(shortName string) string
	// ClassDefCode is written inside the class definition, after the members.
	ClassDefCode(shortName string) string
	// ModuleCode is written at the end of the module definition.
	ModuleCode(module string) string
}

var (
	// ErrUnknownCustomGenerator is returned for a custom_generator name that
	// was never registered.
	ErrUnknownCustomGenerator = errors.New("unknown custom generator")
	// ErrDuplicateCustomGenerator is returned when a name is registered twice.
	ErrDuplicateCustomGenerator = errors.New("custom generator already registered")
)

var customGenerators = struct {
	sync.RWMutex
	db map[string]CustomGenerator
}{
	db: make(map[string]CustomGenerator),
}

// RegisterCustomGenerator makes g available under name.
func RegisterCustomGenerator(name string, g CustomGenerator) error {
	if name == "" || g == nil {
		return fmt.Errorf("failed to register custom generator %q: empty name or nil generator", name)
	}

	customGenerators.Lock()
	defer customGenerators.Unlock()

	if _, dup := customGenerators.db[name]; dup {
		return fmt.Errorf("%w: %s", ErrDuplicateCustomGenerator, name)
	}

	customGenerators.db[name] = g

	return nil
}

// UnregisterCustomGenerator removes name from the registry.
func UnregisterCustomGenerator(name string) {
	customGenerators.Lock()
	defer customGenerators.Unlock()

	delete(customGenerators.db, name)
}

// LookupCustomGenerator returns the generator registered under name.
func LookupCustomGenerator(name string) (CustomGenerator, bool) {
	customGenerators.RLock()
	defer customGenerators.RUnlock()

	g, ok := customGenerators.db[name]

	return g, ok
}

// CustomGenerators returns the registered names, sorted.
func CustomGenerators() []string {
	customGenerators.RLock()
	defer customGenerators.RUnlock()

	names := make([]string, 0, len(customGenerators.db))
	for name := range customGenerators.db {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// CheckCustomGenerators verifies that every custom_generator in tree is registered.
func CheckCustomGenerators(tree *feature.Tree) error {
	for id := range tree.Len() {
		name := tree.Node(feature.ID(id)).Settings.CustomGenerator
		if name == "" {
			continue
		}

		if _, ok := LookupCustomGenerator(name); !ok {
			return fmt.Errorf("%w %q in %s (registered: %v)", ErrUnknownCustomGenerator, name,
				tree.Label(feature.ID(id)), CustomGenerators())
		}
	}

	return nil
}

// customFor returns the generator nearest to id, or nil.
func customFor(tree *feature.Tree, id feature.ID) CustomGenerator {
	name := tree.CustomGenerator(id)
	if name == "" {
		return nil
	}

	g, _ := LookupCustomGenerator(name)

	return g
}
