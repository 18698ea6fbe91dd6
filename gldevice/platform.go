package gldevice

import (
	"github.com/richinsley/elvgl/glfwcontext"
	"github.com/richinsley/elvgl/graphics"
)

// Platform opens GLFW windows and binds an OpenGL Device to them.
type Platform struct {
	// Visible controls whether windows are shown; hidden windows still render.
	Visible bool
}

func (p *Platform) Init() error {
	return glfwcontext.InitGraphics()
}

func (p *Platform) OpenWindow(desc graphics.WindowDesc) (graphics.Context, error) {
	ctx, err := glfwcontext.New(desc, p.Visible)
	if err != nil {
		return nil, err
	}
	return ctx, nil
}

func (p *Platform) NewDevice(ctx graphics.Context) (graphics.Device, error) {
	ctx.MakeCurrent()
	d, err := New()
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (p *Platform) Terminate() {
	glfwcontext.TerminateGraphics()
}
