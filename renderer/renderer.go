package renderer

import (
	"fmt"
	"log"

	"github.com/richinsley/golearngl/graphics"
	"github.com/richinsley/golearngl/watch"
)

// Renderer draws lesson scenes into the window of a graphics.Context or
// into an offscreen framebuffer. All methods must be called on the thread
// that owns the context.
type Renderer struct {
	gl        graphics.GL
	context   graphics.Context
	width     int
	height    int
	fbWidth   int
	fbHeight  int
	offscreen *Offscreen
	floatFBO  *Offscreen
	scenes    []*Scene
	watcher   *watch.Watcher
	reload    bool
	shutdown  bool

	// newEncoder starts the consumer side of Record.
	newEncoder func(opts RecordOptions, width, height int) (*encoder, error)
}

// NewRenderer creates a renderer drawing through gl. ctx may be nil when
// only offscreen rendering is used; otherwise it is made current.
func NewRenderer(gl graphics.GL, ctx graphics.Context, width, height int) (*Renderer, error) {
	if gl == nil {
		return nil, fmt.Errorf("renderer needs a GL implementation")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid render size %dx%d", width, height)
	}
	r := &Renderer{
		gl:         gl,
		context:    ctx,
		width:      width,
		height:     height,
		newEncoder: startFFmpeg,
	}
	if r.context != nil {
		// Make the context current on this thread.
		r.context.MakeCurrent()
		r.fbWidth, r.fbHeight = r.context.GetFramebufferSize()
		r.context.OnResize(r.resize)
	}
	return r, nil
}

// resize keeps the window viewport in step with the framebuffer.
func (r *Renderer) resize(width, height int) {
	log.Printf("Framebuffer resized to %dx%d", width, height)
	r.fbWidth, r.fbHeight = width, height
}

// Watch reloads the program of scene whenever one of its shader files
// changes while Run is looping. Lessons with inline sources have nothing to
// watch.
func (r *Renderer) Watch(scene *Scene) error {
	paths := scene.Lesson.ShaderPaths()
	if len(paths) == 0 {
		log.Printf("Lesson %s has no shader files to watch", scene.Lesson.Name)
		return nil
	}
	if r.watcher != nil {
		r.watcher.Close()
	}
	w, err := watch.New(paths...)
	if err != nil {
		return fmt.Errorf("failed to watch shader files: %w", err)
	}
	r.watcher = w
	log.Printf("Watching %v for changes", paths)
	return nil
}

// RequestReload rebuilds the program of the running scene before the next
// frame.
func (r *Renderer) RequestReload() {
	r.reload = true
}

func (r *Renderer) changes() <-chan string {
	if r.watcher == nil {
		return nil
	}
	return r.watcher.Changed()
}

// pollReload rebuilds the scene program when a watched file changed or a
// reload was requested. A failed rebuild keeps the previous program.
func (r *Renderer) pollReload(scene *Scene) {
	select {
	case path := <-r.changes():
		log.Printf("Shader file changed: %s", path)
		r.reload = true
	default:
	}
	if !r.reload {
		return
	}
	r.reload = false
	if err := r.Reload(scene); err != nil {
		log.Printf("Reload failed, keeping previous program: %v", err)
		return
	}
	log.Printf("Reloaded scene: %s", scene.Title)
}

// Run draws scene into the window until the context is asked to close.
func (r *Renderer) Run(scene *Scene) error {
	if r.context == nil {
		return fmt.Errorf("interactive rendering needs a window context")
	}
	startTime := r.context.Time()
	for !r.context.ShouldClose() {
		r.pollReload(scene)
		r.RenderFrame(scene, r.context.Time()-startTime, r.fbWidth, r.fbHeight)
		r.context.EndFrame()
	}
	return nil
}

// RenderOffscreen draws one frame of scene at time t into the offscreen
// framebuffer and returns its RGBA8 pixels, bottom row first.
func (r *Renderer) RenderOffscreen(scene *Scene, t float64) ([]byte, error) {
	if r.offscreen == nil {
		var err error
		r.offscreen, err = NewOffscreen(r.gl, r.width, r.height)
		if err != nil {
			return nil, fmt.Errorf("failed to create offscreen renderer: %w", err)
		}
	}
	r.offscreen.Bind()
	r.RenderFrame(scene, t, r.width, r.height)
	pixels := r.offscreen.ReadPixels()
	r.offscreen.Unbind()
	if err := r.checkError(); err != nil {
		return nil, err
	}
	return pixels, nil
}

// RenderOffscreenFloat is RenderOffscreen into an RGBA32F target, for
// callers that compare colors tighter than one 8-bit step.
func (r *Renderer) RenderOffscreenFloat(scene *Scene, t float64) ([]float32, error) {
	if r.floatFBO == nil {
		var err error
		r.floatFBO, err = NewFloatOffscreen(r.gl, r.width, r.height)
		if err != nil {
			return nil, fmt.Errorf("failed to create float offscreen renderer: %w", err)
		}
	}
	r.floatFBO.Bind()
	r.RenderFrame(scene, t, r.width, r.height)
	pixels := r.floatFBO.ReadPixelsFloat()
	r.floatFBO.Unbind()
	if err := r.checkError(); err != nil {
		return nil, err
	}
	return pixels, nil
}

func (r *Renderer) checkError() error {
	if e := r.gl.GetError(); e != graphics.NoError {
		return fmt.Errorf("GL error 0x%04X while rendering offscreen", e)
	}
	return nil
}

// Shutdown destroys every scene loaded through the renderer and the
// offscreen target. The context itself is shut down by its owner. Calling
// Shutdown again is a no-op.
func (r *Renderer) Shutdown() {
	if r.shutdown {
		return
	}
	r.shutdown = true
	if r.watcher != nil {
		r.watcher.Close()
		r.watcher = nil
	}
	for _, s := range r.scenes {
		s.Destroy()
	}
	r.scenes = nil
	if r.offscreen != nil {
		r.offscreen.Destroy()
		r.offscreen = nil
	}
	if r.floatFBO != nil {
		r.floatFBO.Destroy()
		r.floatFBO = nil
	}
}
