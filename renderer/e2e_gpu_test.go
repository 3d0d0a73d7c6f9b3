//go:build gpu

package renderer

import (
	"os"
	"runtime"
	"testing"

	"github.com/richinsley/golearngl/glfwcontext"
	"github.com/richinsley/golearngl/graphics/gogl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	gpuWidth  = 800
	gpuHeight = 600
)

func TestMain(m *testing.M) {
	runtime.LockOSThread()
	os.Exit(m.Run())
}

// pixelAt returns the color at (x, y), y counted from the bottom row.
func pixelAt(pixels []float32, x, y int) [4]float64 {
	i := (y*gpuWidth + x) * 4
	var c [4]float64
	for k := range c {
		c[k] = float64(pixels[i+k])
	}
	return c
}

func newGPURenderer(t *testing.T) *Renderer {
	t.Helper()
	require.NoError(t, glfwcontext.InitGraphics())
	t.Cleanup(glfwcontext.TerminateGraphics)

	ctx, err := glfwcontext.New(gpuWidth, gpuHeight, "gpu test", false)
	require.NoError(t, err)
	t.Cleanup(ctx.Shutdown)
	ctx.MakeCurrent()

	gl, err := gogl.New()
	require.NoError(t, err)
	t.Logf("OpenGL version: %s", gl.Version())

	r, err := NewRenderer(gl, ctx, gpuWidth, gpuHeight)
	require.NoError(t, err)
	t.Cleanup(r.Shutdown)
	return r
}

func TestGPUConstantColorTriangle(t *testing.T) {
	r := newGPURenderer(t)
	scene, err := r.LoadScene(lesson(t, "triangle"))
	require.NoError(t, err)

	pixels, err := r.RenderOffscreenFloat(scene, 0)
	require.NoError(t, err)

	const tolerance = 1e-6
	center := pixelAt(pixels, gpuWidth/2, gpuHeight/2)
	want := [4]float64{1.0, 0.5, 0.2, 1.0}
	for k := range want {
		assert.InDelta(t, want[k], center[k], tolerance, "channel %d", k)
	}

	corner := pixelAt(pixels, 0, 0)
	bg := scene.Lesson.ClearColor
	for k := range bg {
		assert.InDelta(t, float64(bg[k]), corner[k], tolerance, "channel %d", k)
	}
}

func TestGPUClearLesson(t *testing.T) {
	r := newGPURenderer(t)
	scene, err := r.LoadScene(lesson(t, "clear"))
	require.NoError(t, err)

	pixels, err := r.RenderOffscreen(scene, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte{121, 175, 199, 255}, pixels[:4])
}

func TestGPUTriangleRGBA8Quantizes(t *testing.T) {
	r := newGPURenderer(t)
	scene, err := r.LoadScene(lesson(t, "triangle"))
	require.NoError(t, err)

	pixels, err := r.RenderOffscreen(scene, 0)
	require.NoError(t, err)
	i := (gpuHeight/2*gpuWidth + gpuWidth/2) * 4
	// 0.5 lands between two 8-bit steps; drivers may round either way.
	want := []byte{255, 128, 51, 255}
	for k, b := range want {
		assert.InDelta(t, b, pixels[i+k], 1, "channel %d", k)
	}
}
