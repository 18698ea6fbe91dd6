// Package graphicstest provides a recording graphics.Platform for tests. Every
// call is appended to a shared event log so tests can assert on ordering, and
// the device tracks live handles so tests can detect leaks.
package graphicstest

import (
	"errors"
	"fmt"
	"sort"

	"github.com/richinsley/elvgl/graphics"
)

// Draw is a recorded draw call.
type Draw struct {
	Base, Count, Instances int
	Pipeline               graphics.Pipeline
}

// Platform is a fake graphics.Platform.
type Platform struct {
	// Injected failures.
	InitErr   error
	WindowErr error
	DeviceErr error
	ShaderErr error

	// CloseAfterFrames makes the window request closing once that many frames
	// have been presented. Zero means never.
	CloseAfterFrames int

	Events  []string
	Windows []*Window
	Devices []*Device

	initialized bool
}

func (p *Platform) record(format string, args ...interface{}) {
	p.Events = append(p.Events, fmt.Sprintf(format, args...))
}

// Initialized reports whether Init was called without a matching Terminate.
func (p *Platform) Initialized() bool {
	return p.initialized
}

func (p *Platform) Init() error {
	p.record("init")
	if p.InitErr != nil {
		return p.InitErr
	}
	p.initialized = true
	return nil
}

func (p *Platform) OpenWindow(desc graphics.WindowDesc) (graphics.Context, error) {
	p.record("open-window %s %dx%d", desc.Title, desc.Width, desc.Height)
	if p.WindowErr != nil {
		return nil, p.WindowErr
	}
	w := &Window{p: p, Desc: desc}
	p.Windows = append(p.Windows, w)
	return w, nil
}

func (p *Platform) NewDevice(ctx graphics.Context) (graphics.Device, error) {
	p.record("new-device")
	if p.DeviceErr != nil {
		return nil, p.DeviceErr
	}
	d := &Device{p: p, live: make(map[uint32]string)}
	p.Devices = append(p.Devices, d)
	return d, nil
}

func (p *Platform) Terminate() {
	p.record("terminate")
	p.initialized = false
}

// Window is a fake graphics.Context.
type Window struct {
	p         *Platform
	Desc      graphics.WindowDesc
	Frames    int
	Destroyed bool
	close     bool
}

// RequestClose simulates the user closing the window.
func (w *Window) RequestClose() {
	w.close = true
}

func (w *Window) MakeCurrent() {}

func (w *Window) Shutdown() {
	w.p.record("window-shutdown")
	w.Destroyed = true
}

func (w *Window) ShouldClose() bool {
	return w.close
}

func (w *Window) EndFrame() {
	w.p.record("end-frame")
	w.Frames++
	if w.p.CloseAfterFrames > 0 && w.Frames >= w.p.CloseAfterFrames {
		w.close = true
	}
}

func (w *Window) GetFramebufferSize() (int, int) {
	return w.Desc.Width, w.Desc.Height
}

// Device is a fake graphics.Device that enforces the pass protocol.
type Device struct {
	p        *Platform
	next     uint32
	live     map[uint32]string
	inPass   bool
	pipeline graphics.Pipeline

	Draws    []Draw
	Commits  int
	Pipeline graphics.PipelineDesc
	Shader   graphics.ShaderDesc
	Buffer   graphics.BufferDesc
	IsDown   bool
}

func (d *Device) alloc(kind string) uint32 {
	d.next++
	d.live[d.next] = kind
	return d.next
}

// Live returns the kinds of all resources that have not been destroyed.
func (d *Device) Live() []string {
	kinds := make([]string, 0, len(d.live))
	for _, k := range d.live {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

func (d *Device) MakeBuffer(desc graphics.BufferDesc) (graphics.Buffer, error) {
	d.p.record("make-buffer")
	if len(desc.Data) == 0 {
		return 0, graphics.ErrEmptyBuffer
	}
	d.Buffer = desc
	return graphics.Buffer(d.alloc("buffer")), nil
}

func (d *Device) MakeShader(desc graphics.ShaderDesc) (graphics.Shader, error) {
	d.p.record("make-shader")
	if d.p.ShaderErr != nil {
		return 0, d.p.ShaderErr
	}
	d.Shader = desc
	return graphics.Shader(d.alloc("shader")), nil
}

func (d *Device) MakePipeline(desc graphics.PipelineDesc) (graphics.Pipeline, error) {
	d.p.record("make-pipeline")
	if d.live[uint32(desc.Shader)] != "shader" {
		return 0, graphics.ErrInvalidHandle
	}
	d.Pipeline = desc
	return graphics.Pipeline(d.alloc("pipeline")), nil
}

func (d *Device) destroy(kind string, id uint32) {
	d.p.record("destroy-%s", kind)
	if d.live[id] == kind {
		delete(d.live, id)
	}
}

func (d *Device) DestroyBuffer(b graphics.Buffer)     { d.destroy("buffer", uint32(b)) }
func (d *Device) DestroyShader(s graphics.Shader)     { d.destroy("shader", uint32(s)) }
func (d *Device) DestroyPipeline(p graphics.Pipeline) { d.destroy("pipeline", uint32(p)) }

func (d *Device) BeginPass(pass graphics.Pass) error {
	d.p.record("begin-pass %dx%d", pass.Width, pass.Height)
	if d.inPass {
		return graphics.ErrPassActive
	}
	d.inPass = true
	return nil
}

func (d *Device) ApplyPipeline(p graphics.Pipeline) error {
	d.p.record("apply-pipeline")
	if !d.inPass {
		return graphics.ErrNoPass
	}
	if d.live[uint32(p)] != "pipeline" {
		return graphics.ErrInvalidHandle
	}
	d.pipeline = p
	return nil
}

func (d *Device) ApplyBindings(b graphics.Bindings) error {
	d.p.record("apply-bindings")
	if !d.inPass {
		return graphics.ErrNoPass
	}
	if d.pipeline == 0 {
		return graphics.ErrNoPipeline
	}
	for _, vb := range b.VertexBuffers {
		if d.live[uint32(vb)] != "buffer" {
			return graphics.ErrInvalidHandle
		}
	}
	return nil
}

func (d *Device) Draw(base, count, instances int) error {
	d.p.record("draw %d %d %d", base, count, instances)
	if !d.inPass {
		return graphics.ErrNoPass
	}
	if d.pipeline == 0 {
		return graphics.ErrNoPipeline
	}
	d.Draws = append(d.Draws, Draw{Base: base, Count: count, Instances: instances, Pipeline: d.pipeline})
	return nil
}

func (d *Device) EndPass() error {
	d.p.record("end-pass")
	if !d.inPass {
		return graphics.ErrNoPass
	}
	d.inPass = false
	d.pipeline = 0
	return nil
}

func (d *Device) Commit() error {
	d.p.record("commit")
	if d.inPass {
		return graphics.ErrPassActive
	}
	d.Commits++
	return nil
}

func (d *Device) Shutdown() {
	d.p.record("device-shutdown")
	d.IsDown = true
}

// ErrInjected is a convenience error for failure injection.
var ErrInjected = errors.New("graphicstest: injected failure")
