package loader_test

import (
	"errors"
	"net/http/httptest"
	"testing"

	"dex-wiki/core/loader"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeFeature struct {
	name    string
	enabled bool
	err     error
	loaded  bool
}

func (f *fakeFeature) Name() string    { return f.name }
func (f *fakeFeature) IsEnabled() bool { return f.enabled }
func (f *fakeFeature) Load(app fiber.Router) error {
	if f.err != nil {
		return f.err
	}
	f.loaded = true
	app.Get("/"+f.name, func(c *fiber.Ctx) error {
		return c.SendString(f.name)
	})
	return nil
}

func TestManager(t *testing.T) {
	t.Run("LoadsEnabledFeatures", func(t *testing.T) {
		mgr := loader.NewManager(zap.NewNop())
		on := &fakeFeature{name: "records", enabled: true}
		off := &fakeFeature{name: "catalog", enabled: false}
		mgr.Register(on)
		mgr.Register(off)

		app := fiber.New()
		require.NoError(t, mgr.LoadAll(app))
		assert.True(t, on.loaded)
		assert.False(t, off.loaded)

		resp, err := app.Test(httptest.NewRequest("GET", "/records", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		resp, err = app.Test(httptest.NewRequest("GET", "/catalog", nil))
		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)
	})

	t.Run("DuplicateNameIgnored", func(t *testing.T) {
		mgr := loader.NewManager(nil)
		mgr.Register(&fakeFeature{name: "records", enabled: true})
		mgr.Register(&fakeFeature{name: "records", enabled: true})
		assert.Equal(t, []string{"records"}, mgr.Features())
	})

	t.Run("LoadErrorStops", func(t *testing.T) {
		mgr := loader.NewManager(zap.NewNop())
		boom := errors.New("boom")
		mgr.Register(&fakeFeature{name: "broken", enabled: true, err: boom})
		after := &fakeFeature{name: "after", enabled: true}
		mgr.Register(after)

		err := mgr.LoadAll(fiber.New())
		assert.ErrorIs(t, err, boom)
		assert.ErrorContains(t, err, "broken")
		assert.False(t, after.loaded)
	})
}
