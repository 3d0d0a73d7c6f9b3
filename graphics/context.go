package graphics

// Context is the window side of rendering: it owns the GL context, presents
// frames and reports framebuffer size changes.
type Context interface {
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	EndFrame()
	GetFramebufferSize() (int, int)
	Time() float64

	// OnResize registers f to be called with the new framebuffer size
	// whenever the window is resized. Only the last registered f is kept.
	OnResize(f func(width, height int))
}
