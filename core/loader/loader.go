package loader

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Feature is a self-contained module that registers its own routes.
type Feature interface {
	// Name returns the unique feature name.
	Name() string
	// IsEnabled reports whether the feature should be loaded.
	IsEnabled() bool
	// Load registers the feature's routes on app.
	Load(app fiber.Router) error
}

// Manager holds the registered features.
type Manager struct {
	features []Feature
	names    map[string]struct{}
}

// NewManager creates an empty feature manager.
func NewManager() *Manager {
	return &Manager{names: make(map[string]struct{})}
}

// Register adds a feature. Registering the same name twice panics, since it
// is a wiring bug.
func (m *Manager) Register(f Feature) {
	if _, dup := m.names[f.Name()]; dup {
		panic(fmt.Sprintf("loader: feature %q registered twice", f.Name()))
	}
	m.names[f.Name()] = struct{}{}
	m.features = append(m.features, f)
}

// LoadAll loads every enabled feature in registration order and returns the
// names of the loaded ones.
func (m *Manager) LoadAll(app fiber.Router) ([]string, error) {
	var loaded []string
	for _, f := range m.features {
		if !f.IsEnabled() {
			continue
		}
		if err := f.Load(app); err != nil {
			return loaded, fmt.Errorf("failed to load feature %s: %w", f.Name(), err)
		}
		loaded = append(loaded, f.Name())
	}
	return loaded, nil
}
