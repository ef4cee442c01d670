package headless_test

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sphere-viewer/internal/app"
	"sphere-viewer/internal/config"
	"sphere-viewer/internal/engine"
	"sphere-viewer/internal/headless"
	"sphere-viewer/internal/material"
)

func TestCanvasLookup(t *testing.T) {
	h := headless.New(headless.Config{CanvasID: "app"})

	c, err := h.Canvas("app")
	require.NoError(t, err)
	assert.Equal(t, "app", c.ID())

	_, err = h.Canvas("other")
	assert.ErrorIs(t, err, engine.ErrCanvasNotFound)
}

func TestSurfaceOnce(t *testing.T) {
	h := headless.New(headless.Config{CanvasID: "app", Width: 320, Height: 200})
	c, _ := h.Canvas("app")

	s, err := h.NewSurface(c, engine.SurfaceOptions{Antialias: true})
	require.NoError(t, err)
	w, hh := s.Size()
	assert.Equal(t, 320, w)
	assert.Equal(t, 200, hh)
	assert.True(t, h.Surface().Antialias())

	_, err = h.NewSurface(c, engine.SurfaceOptions{})
	assert.Error(t, err)
}

func TestEventsDispatchOnStep(t *testing.T) {
	h := headless.New(headless.Config{CanvasID: "app", Width: 100, Height: 100})
	c, _ := h.Canvas("app")
	s, err := h.NewSurface(c, engine.SurfaceOptions{})
	require.NoError(t, err)

	var keys []string
	h.OnKeyDown(func(code string) { keys = append(keys, code) })
	h.OnResize(s.Resize)

	h.KeyDown("KeyD")
	h.Resize(640, 480)
	assert.Empty(t, keys)

	h.Surface().Step()
	assert.Equal(t, []string{"KeyD"}, keys)
	w, hh := s.Size()
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, hh)
	assert.Equal(t, 2, h.Surface().Resizes())
}

func TestRunFrameLimit(t *testing.T) {
	h := headless.New(headless.Config{CanvasID: "app", Hz: 1000, Frames: 5})
	c, _ := h.Canvas("app")
	s, err := h.NewSurface(c, engine.SurfaceOptions{})
	require.NoError(t, err)

	calls := 0
	s.RunRenderLoop(func() { calls++ })

	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, 5, calls)
	assert.Equal(t, uint64(5), h.Surface().Frames())
}

func TestRunCanceled(t *testing.T) {
	h := headless.New(headless.Config{CanvasID: "app", Hz: 1000})
	c, _ := h.Canvas("app")
	s, err := h.NewSurface(c, engine.SurfaceOptions{})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, s.Run(ctx), context.DeadlineExceeded)
}

func TestViewerEndToEnd(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	release := make(chan struct{})
	loader := material.LoaderFunc(func(ctx context.Context, id string) (*material.Material, error) {
		select {
		case <-release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		return &material.Material{Name: "remote"}, nil
	})

	cfg := config.Default()
	cfg.Mode = config.Development
	h := headless.New(headless.Config{CanvasID: cfg.Window.Canvas, Width: 800, Height: 600, Hz: 500, Frames: 3})
	a := app.New(app.OptionsFromConfig(cfg), h, loader, log)
	require.NoError(t, a.Init())
	defer a.Close()

	h.KeyDown("KeyD")
	require.NoError(t, a.Run(context.Background()))

	sc := h.Surface()
	assert.Equal(t, uint64(3), sc.Frames())
	assert.Nil(t, a.Mesh())
	assert.True(t, a.DebugActive())

	close(release)
	<-a.MaterialTask().Done()
	sc.Step()

	require.NotNil(t, a.Mesh())
	assert.Equal(t, cfg.Material.Name, a.Mesh().Material().Name)
	assert.Equal(t, app.MeshName, a.Mesh().Name())
	assert.NotEmpty(t, hook.AllEntries())
}
