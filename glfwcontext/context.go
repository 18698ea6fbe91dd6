package glfwcontext

import (
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/elvgl/graphics"
	"github.com/richinsley/elvgl/log"
)

var logger = log.New("glfw")

// Context wraps a GLFW window and its OpenGL context.
type Context struct {
	window *glfw.Window
}

// New creates a GLFW window with a forward compatible OpenGL core context of the
// version desc asks for, 4.1 if unset, and makes it current.
func New(desc graphics.WindowDesc, visible bool) (*Context, error) {
	major, minor := desc.GLMajor, desc.GLMinor
	if major == 0 {
		major, minor = 4, 1
	}
	glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLAPI)
	glfw.WindowHint(glfw.ContextVersionMajor, major)
	glfw.WindowHint(glfw.ContextVersionMinor, minor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	if desc.NoDepthBuffer {
		glfw.WindowHint(glfw.DepthBits, 0)
		glfw.WindowHint(glfw.StencilBits, 0)
	}

	if visible {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	win, err := glfw.CreateWindow(desc.Width, desc.Height, desc.Title, nil, nil)
	if err != nil {
		return nil, err
	}

	win.MakeContextCurrent()
	glfw.SwapInterval(1)

	logger.Infof("opened %dx%d window %q (OpenGL %d.%d core)", desc.Width, desc.Height, desc.Title, major, minor)
	return &Context{window: win}, nil
}

// MakeCurrent makes the context current for the calling goroutine.
func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
}

// Shutdown only destroys the window; TerminateGraphics tears down GLFW itself.
func (c *Context) Shutdown() {
	c.window.Destroy()
}

func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

func (c *Context) EndFrame() {
	c.window.SwapBuffers()
	glfw.PollEvents()
}

func (c *Context) GetFramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

// InitGraphics initializes GLFW. Must be called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return err
	}
	logger.Info("GLFW initialized")
	return nil
}

// TerminateGraphics shuts down GLFW. Must be called from the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	logger.Info("GLFW terminated")
}
