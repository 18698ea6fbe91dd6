package renderer

import (
	"fmt"

	"github.com/richinsley/elvgl/graphics"
	"github.com/richinsley/elvgl/log"
	"github.com/richinsley/elvgl/shader"
)

var logger = log.New("renderer")

// State is the lifecycle stage of a Renderer.
type State int

const (
	Uninitialized State = iota
	Running
	TornDown
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case TornDown:
		return "torn down"
	}
	return "uninitialized"
}

// TriangleVertices holds three vertices, each a position (x, y, z) followed by an
// RGBA color.
var TriangleVertices = []float32{
	// positions        // colors
	0.0, 0.5, 0.5, 1.0, 0.0, 0.0, 1.0,
	0.5, -0.5, 0.5, 0.0, 1.0, 0.0, 1.0,
	-0.5, -0.5, 0.5, 0.0, 0.0, 1.0, 1.0,
}

// The context version requested for the window. It must be able to compile the
// shader package's sources.
const (
	GLMajor = 4
	GLMinor = 1
)

// TriangleVertexCount is the number of vertices drawn per frame.
const TriangleVertexCount = 3

// TriangleLayout is the vertex layout of TriangleVertices.
var TriangleLayout = []graphics.VertexAttr{
	shader.PositionLocation: {Format: graphics.VertexFormatFloat3},
	shader.ColorLocation:    {Format: graphics.VertexFormatFloat4},
}

// Renderer owns the window, the GPU device and the fixed triangle pipeline. It
// is not safe for concurrent use; every call must come from the thread that
// owns the GL context.
type Renderer struct {
	platform graphics.Platform
	opts     Options
	state    State

	window graphics.Context
	device graphics.Device
	vbuf   graphics.Buffer
	shd    graphics.Shader
	pip    graphics.Pipeline
	bind   graphics.Bindings
	platUp bool
	frames uint64
}

// New creates a renderer that will bring up its resources on platform when
// Start is called.
func New(platform graphics.Platform, opts Options) *Renderer {
	return &Renderer{
		platform: platform,
		opts:     opts,
	}
}

func (r *Renderer) State() State {
	return r.state
}

// Frames returns the number of frames rendered since Start.
func (r *Renderer) Frames() uint64 {
	return r.frames
}

// Start opens the window, brings up the device and builds the triangle pipeline.
// On failure everything created so far is released and the renderer stays
// uninitialized.
func (r *Renderer) Start() error {
	switch r.state {
	case Running:
		return ErrAlreadyStarted
	case TornDown:
		return ErrTornDown
	}

	if err := r.setup(); err != nil {
		r.teardown()
		return fmt.Errorf("%w: %w", ErrStartFailed, err)
	}

	r.state = Running
	r.frames = 0
	logger.Infof("started %dx%d %q", r.opts.Width, r.opts.Height, r.opts.Title)
	return nil
}

func (r *Renderer) setup() error {
	var err error
	if err = r.platform.Init(); err != nil {
		return fmt.Errorf("failed to initialize windowing system: %w", err)
	}
	r.platUp = true

	r.window, err = r.platform.OpenWindow(graphics.WindowDesc{
		Title:         r.opts.Title,
		Width:         r.opts.Width,
		Height:        r.opts.Height,
		NoDepthBuffer: true,
		GLMajor:       GLMajor,
		GLMinor:       GLMinor,
	})
	if err != nil {
		return fmt.Errorf("failed to open window: %w", err)
	}

	r.device, err = r.platform.NewDevice(r.window)
	if err != nil {
		return fmt.Errorf("failed to initialize GPU device: %w", err)
	}

	r.vbuf, err = r.device.MakeBuffer(graphics.BufferDesc{
		Data:  TriangleVertices,
		Label: "triangle-vertices",
	})
	if err != nil {
		return fmt.Errorf("failed to create vertex buffer: %w", err)
	}

	r.shd, err = r.device.MakeShader(graphics.ShaderDesc{
		VertexSource:   shader.GetVertexShader(),
		FragmentSource: shader.GetFragmentShader(),
		Label:          "triangle-shader",
	})
	if err != nil {
		return fmt.Errorf("failed to create shader: %w", err)
	}

	r.pip, err = r.device.MakePipeline(graphics.PipelineDesc{
		Shader: r.shd,
		Attrs:  TriangleLayout,
		Label:  "triangle-pipeline",
	})
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}

	r.bind = graphics.Bindings{VertexBuffers: []graphics.Buffer{r.vbuf}}
	return nil
}

// teardown releases whatever setup managed to create, in reverse order.
func (r *Renderer) teardown() {
	if r.device != nil {
		if r.pip != 0 {
			r.device.DestroyPipeline(r.pip)
		}
		if r.shd != 0 {
			r.device.DestroyShader(r.shd)
		}
		if r.vbuf != 0 {
			r.device.DestroyBuffer(r.vbuf)
		}
		r.device.Shutdown()
	}
	if r.window != nil {
		r.window.Shutdown()
	}
	if r.platUp {
		r.platform.Terminate()
	}

	r.window, r.device = nil, nil
	r.vbuf, r.shd, r.pip = 0, 0, 0
	r.bind = graphics.Bindings{}
	r.platUp = false
}

func (r *Renderer) checkRunning() error {
	switch r.state {
	case Uninitialized:
		return ErrNotStarted
	case TornDown:
		return ErrTornDown
	}
	return nil
}

// Render draws one frame: begin pass, apply pipeline and bindings, draw the
// triangle once, end pass, commit, present and poll window events.
func (r *Renderer) Render() error {
	if err := r.checkRunning(); err != nil {
		return err
	}

	width, height := r.window.GetFramebufferSize()
	if err := r.device.BeginPass(graphics.Pass{Width: width, Height: height}); err != nil {
		return fmt.Errorf("failed to begin pass: %w", err)
	}
	drawErr := r.draw()
	if err := r.device.EndPass(); err != nil && drawErr == nil {
		drawErr = err
	}
	if drawErr != nil {
		return fmt.Errorf("failed to render frame %d: %w", r.frames, drawErr)
	}
	if err := r.device.Commit(); err != nil {
		return fmt.Errorf("failed to commit frame %d: %w", r.frames, err)
	}

	r.window.EndFrame()
	r.frames++
	logger.Debugf("frame %d presented (%dx%d)", r.frames, width, height)
	return nil
}

func (r *Renderer) draw() error {
	if err := r.device.ApplyPipeline(r.pip); err != nil {
		return err
	}
	if err := r.device.ApplyBindings(r.bind); err != nil {
		return err
	}
	return r.device.Draw(0, TriangleVertexCount, 1)
}

// ShouldClose reports whether the window system has asked the window to close.
func (r *Renderer) ShouldClose() (bool, error) {
	if err := r.checkRunning(); err != nil {
		return false, err
	}
	return r.window.ShouldClose(), nil
}

// End destroys every GPU resource, the window and the windowing system. The
// renderer cannot be started again afterwards.
func (r *Renderer) End() error {
	if err := r.checkRunning(); err != nil {
		return err
	}
	r.teardown()
	r.state = TornDown
	logger.Infof("ended after %d frames", r.frames)
	return nil
}

// Close ends the renderer if it is still running and does nothing otherwise.
func (r *Renderer) Close() error {
	if r.state != Running {
		return nil
	}
	logger.Warning("renderer still running at shutdown; releasing resources")
	return r.End()
}
