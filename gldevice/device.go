package gldevice

import (
	"fmt"
	"strings"
	"sync"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/elvgl/graphics"
	"github.com/richinsley/elvgl/log"
)

var logger = log.New("gldevice")

var glInitOnce sync.Once

var _ graphics.Device = (*Device)(nil)

type pipeline struct {
	program uint32
	attrs   []graphics.VertexAttr
	offsets []int
	stride  int32
}

// Device implements graphics.Device on an OpenGL core context. All methods must be
// called on the thread the context is current on.
type Device struct {
	vao       uint32
	nextID    uint32
	buffers   map[graphics.Buffer]uint32
	programs  map[graphics.Shader]uint32
	pipelines map[graphics.Pipeline]*pipeline

	inPass  bool
	current *pipeline
	frames  uint64
}

// New loads the OpenGL entry points for the current context and creates the
// vertex array object every draw goes through.
func New() (*Device, error) {
	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", initErr)
	}
	logger.Infof("OpenGL %s", gl.GoStr(gl.GetString(gl.VERSION)))

	d := &Device{
		buffers:   make(map[graphics.Buffer]uint32),
		programs:  make(map[graphics.Shader]uint32),
		pipelines: make(map[graphics.Pipeline]*pipeline),
	}
	gl.GenVertexArrays(1, &d.vao)
	return d, nil
}

func (d *Device) allocID() uint32 {
	d.nextID++
	return d.nextID
}

func (d *Device) MakeBuffer(desc graphics.BufferDesc) (graphics.Buffer, error) {
	if len(desc.Data) == 0 {
		return 0, graphics.ErrEmptyBuffer
	}
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(desc.Data)*4, gl.Ptr(desc.Data), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	id := graphics.Buffer(d.allocID())
	d.buffers[id] = vbo
	logger.Debugf("created buffer %d %q (%d floats)", id, desc.Label, len(desc.Data))
	return id, nil
}

func (d *Device) MakeShader(desc graphics.ShaderDesc) (graphics.Shader, error) {
	program, err := newProgram(desc.VertexSource, desc.FragmentSource)
	if err != nil {
		return 0, fmt.Errorf("failed to create shader %q: %w", desc.Label, err)
	}
	id := graphics.Shader(d.allocID())
	d.programs[id] = program
	logger.Debugf("created shader %d %q", id, desc.Label)
	return id, nil
}

func (d *Device) MakePipeline(desc graphics.PipelineDesc) (graphics.Pipeline, error) {
	program, ok := d.programs[desc.Shader]
	if !ok {
		return 0, fmt.Errorf("pipeline %q: shader %d: %w", desc.Label, desc.Shader, graphics.ErrInvalidHandle)
	}
	if err := validateLayout(desc.Attrs); err != nil {
		return 0, fmt.Errorf("pipeline %q: %w", desc.Label, err)
	}
	id := graphics.Pipeline(d.allocID())
	d.pipelines[id] = &pipeline{
		program: program,
		attrs:   append([]graphics.VertexAttr(nil), desc.Attrs...),
		offsets: desc.Offsets(),
		stride:  int32(desc.Stride()),
	}
	logger.Debugf("created pipeline %d %q (stride %d)", id, desc.Label, desc.Stride())
	return id, nil
}

func validateLayout(attrs []graphics.VertexAttr) error {
	if len(attrs) == 0 {
		return graphics.ErrEmptyLayout
	}
	for i, a := range attrs {
		if a.Format.Components() == 0 {
			return fmt.Errorf("attribute %d has invalid format %s", i, a.Format)
		}
	}
	return nil
}

func (d *Device) DestroyBuffer(b graphics.Buffer) {
	if vbo, ok := d.buffers[b]; ok {
		gl.DeleteBuffers(1, &vbo)
		delete(d.buffers, b)
	}
}

func (d *Device) DestroyShader(s graphics.Shader) {
	if program, ok := d.programs[s]; ok {
		gl.DeleteProgram(program)
		delete(d.programs, s)
	}
}

func (d *Device) DestroyPipeline(p graphics.Pipeline) {
	delete(d.pipelines, p)
}

func (d *Device) BeginPass(pass graphics.Pass) error {
	if d.inPass {
		return graphics.ErrPassActive
	}
	cc := pass.ClearColor
	if cc == ([4]float32{}) {
		cc = graphics.DefaultClearColor
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(pass.Width), int32(pass.Height))
	gl.ClearColor(cc[0], cc[1], cc[2], cc[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)
	d.inPass = true
	return nil
}

func (d *Device) ApplyPipeline(p graphics.Pipeline) error {
	if !d.inPass {
		return graphics.ErrNoPass
	}
	pip, ok := d.pipelines[p]
	if !ok {
		return fmt.Errorf("pipeline %d: %w", p, graphics.ErrInvalidHandle)
	}
	gl.UseProgram(pip.program)
	d.current = pip
	return nil
}

// ApplyBindings sources every attribute of the current pipeline from the first
// vertex buffer.
func (d *Device) ApplyBindings(b graphics.Bindings) error {
	if !d.inPass {
		return graphics.ErrNoPass
	}
	if d.current == nil {
		return graphics.ErrNoPipeline
	}
	if len(b.VertexBuffers) == 0 {
		return fmt.Errorf("no vertex buffer bound: %w", graphics.ErrInvalidHandle)
	}
	vbo, ok := d.buffers[b.VertexBuffers[0]]
	if !ok {
		return fmt.Errorf("buffer %d: %w", b.VertexBuffers[0], graphics.ErrInvalidHandle)
	}

	gl.BindVertexArray(d.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	for i, a := range d.current.attrs {
		loc := uint32(i)
		gl.EnableVertexAttribArray(loc)
		gl.VertexAttribPointer(loc, int32(a.Format.Components()), gl.FLOAT, false, d.current.stride, gl.PtrOffset(d.current.offsets[i]))
	}
	return nil
}

func (d *Device) Draw(base, count, instances int) error {
	if !d.inPass {
		return graphics.ErrNoPass
	}
	if d.current == nil {
		return graphics.ErrNoPipeline
	}
	gl.DrawArraysInstanced(gl.TRIANGLES, int32(base), int32(count), int32(instances))
	return nil
}

func (d *Device) EndPass() error {
	if !d.inPass {
		return graphics.ErrNoPass
	}
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.UseProgram(0)
	d.inPass = false
	d.current = nil
	return nil
}

func (d *Device) Commit() error {
	if d.inPass {
		return graphics.ErrPassActive
	}
	d.frames++
	return nil
}

// Shutdown releases every resource still owned by the device.
func (d *Device) Shutdown() {
	for id := range d.pipelines {
		d.DestroyPipeline(id)
	}
	for id := range d.programs {
		d.DestroyShader(id)
	}
	for id := range d.buffers {
		d.DestroyBuffer(id)
	}
	gl.DeleteVertexArrays(1, &d.vao)
	logger.Infof("device shut down after %d frames", d.frames)
}

func newProgram(vertexShaderSource, fragmentShaderSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logText))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("failed to link program: %v", logText)
	}

	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("failed to compile shader: %v", logText)
	}
	return shader, nil
}
