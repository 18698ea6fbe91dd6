package graphics

// Context defines the interface for a window that owns an OpenGL context.
type Context interface {
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	// EndFrame presents the back buffer and polls the window system's event queue.
	EndFrame()
	GetFramebufferSize() (int, int)
}

// WindowDesc describes the window opened by a Platform.
type WindowDesc struct {
	Title         string
	Width         int
	Height        int
	NoDepthBuffer bool

	// OpenGL core profile version of the window's context.
	GLMajor, GLMinor int
}

// Platform brings up the windowing system and the GPU backend bound to one of its windows.
type Platform interface {
	Init() error
	OpenWindow(desc WindowDesc) (Context, error)
	NewDevice(ctx Context) (Device, error)
	Terminate()
}
