package graphics

import "errors"

var (
	ErrInvalidHandle = errors.New("graphics: invalid resource handle")
	ErrNoPass        = errors.New("graphics: no render pass in progress")
	ErrPassActive    = errors.New("graphics: render pass already in progress")
	ErrNoPipeline    = errors.New("graphics: no pipeline applied")
	ErrEmptyBuffer   = errors.New("graphics: buffer data is empty")
	ErrEmptyLayout   = errors.New("graphics: pipeline declares no vertex attributes")
)

// Resource handles. The zero value never refers to a live resource.
type (
	Buffer   uint32
	Shader   uint32
	Pipeline uint32
)

// VertexFormat is the component layout of a single vertex attribute.
type VertexFormat int

const (
	VertexFormatInvalid VertexFormat = iota
	VertexFormatFloat2
	VertexFormatFloat3
	VertexFormatFloat4
)

// Components returns the number of float components in the format.
func (f VertexFormat) Components() int {
	switch f {
	case VertexFormatFloat2:
		return 2
	case VertexFormatFloat3:
		return 3
	case VertexFormatFloat4:
		return 4
	}
	return 0
}

// Size returns the size of the format in bytes.
func (f VertexFormat) Size() int {
	return f.Components() * 4
}

func (f VertexFormat) String() string {
	switch f {
	case VertexFormatFloat2:
		return "FLOAT2"
	case VertexFormatFloat3:
		return "FLOAT3"
	case VertexFormatFloat4:
		return "FLOAT4"
	}
	return "INVALID"
}

// BufferDesc describes an immutable vertex buffer.
type BufferDesc struct {
	Data  []float32
	Label string
}

// ShaderDesc holds the source of a vertex/fragment stage pair.
type ShaderDesc struct {
	VertexSource   string
	FragmentSource string
	Label          string
}

// VertexAttr declares the attribute bound at a shader location. Offset is in bytes
// and is computed from the preceding attributes when zero.
type VertexAttr struct {
	Format VertexFormat
	Offset int
}

// PipelineDesc binds a compiled shader to a vertex layout. Attribute i is bound to
// shader location i.
type PipelineDesc struct {
	Shader Shader
	Attrs  []VertexAttr
	Label  string
}

// Stride returns the vertex stride implied by the attribute list.
func (p PipelineDesc) Stride() int {
	stride := 0
	for i, off := range p.Offsets() {
		if end := off + p.Attrs[i].Format.Size(); end > stride {
			stride = end
		}
	}
	return stride
}

// Offsets returns the byte offset of every attribute.
func (p PipelineDesc) Offsets() []int {
	offsets := make([]int, len(p.Attrs))
	next := 0
	for i, a := range p.Attrs {
		if a.Offset != 0 {
			next = a.Offset
		}
		offsets[i] = next
		next += a.Format.Size()
	}
	return offsets
}

// Bindings lists the resources a draw reads from.
type Bindings struct {
	VertexBuffers []Buffer
}

// Pass describes the target of a render pass.
type Pass struct {
	Width, Height int
	ClearColor    [4]float32
}

// DefaultClearColor is used when a pass does not set one.
var DefaultClearColor = [4]float32{0.5, 0.5, 0.5, 1.0}

// Device is a minimal GPU abstraction: immutable resources plus a single
// begin/apply/draw/end/commit frame sequence.
type Device interface {
	MakeBuffer(desc BufferDesc) (Buffer, error)
	MakeShader(desc ShaderDesc) (Shader, error)
	MakePipeline(desc PipelineDesc) (Pipeline, error)
	DestroyBuffer(b Buffer)
	DestroyShader(s Shader)
	DestroyPipeline(p Pipeline)

	BeginPass(pass Pass) error
	ApplyPipeline(p Pipeline) error
	ApplyBindings(b Bindings) error
	Draw(base, count, instances int) error
	EndPass() error
	Commit() error

	Shutdown()
}
