package loader_test

import (
	"errors"
	"testing"

	"table-reconciler/core/loader"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFeature struct {
	name    string
	enabled bool
	err     error
	loaded  bool
}

func (f *fakeFeature) Name() string    { return f.name }
func (f *fakeFeature) IsEnabled() bool { return f.enabled }
func (f *fakeFeature) Load(fiber.Router) error {
	f.loaded = true
	return f.err
}

func TestManager_LoadAll(t *testing.T) {
	on := &fakeFeature{name: "comparison", enabled: true}
	off := &fakeFeature{name: "disabled"}

	mgr := loader.NewManager()
	mgr.Register(on)
	mgr.Register(off)

	loaded, err := mgr.LoadAll(fiber.New())
	require.NoError(t, err)
	assert.Equal(t, []string{"comparison"}, loaded)
	assert.True(t, on.loaded)
	assert.False(t, off.loaded)
}

func TestManager_LoadError(t *testing.T) {
	mgr := loader.NewManager()
	mgr.Register(&fakeFeature{name: "broken", enabled: true, err: errors.New("boom")})

	_, err := mgr.LoadAll(fiber.New())
	assert.ErrorContains(t, err, "broken")
}

func TestManager_DuplicatePanics(t *testing.T) {
	mgr := loader.NewManager()
	mgr.Register(&fakeFeature{name: "session"})
	assert.Panics(t, func() { mgr.Register(&fakeFeature{name: "session"}) })
}
