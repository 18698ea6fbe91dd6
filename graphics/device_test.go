package graphics

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPipelineLayout(t *testing.T) {
	type spec struct {
		attrs      []VertexAttr
		expOffsets []int
		expStride  int
	}
	specs := []spec{
		{nil, []int{}, 0},
		{[]VertexAttr{{Format: VertexFormatFloat3}, {Format: VertexFormatFloat4}}, []int{0, 12}, 28},
		{[]VertexAttr{{Format: VertexFormatFloat2}}, []int{0}, 8},
		{[]VertexAttr{{Format: VertexFormatFloat3}, {Format: VertexFormatFloat4, Offset: 16}}, []int{0, 16}, 32},
	}

	for index, s := range specs {
		desc := PipelineDesc{Attrs: s.attrs}
		if diff := cmp.Diff(s.expOffsets, desc.Offsets()); diff != "" {
			t.Fatalf("[spec %d] offsets mismatch (-want +got):\n%s", index, diff)
		}
		if got := desc.Stride(); got != s.expStride {
			t.Fatalf("[spec %d] expected stride %d; got %d", index, s.expStride, got)
		}
	}
}

func TestVertexFormat(t *testing.T) {
	if VertexFormatFloat3.Components() != 3 || VertexFormatFloat3.Size() != 12 {
		t.Fatalf("unexpected FLOAT3 layout: %d components, %d bytes", VertexFormatFloat3.Components(), VertexFormatFloat3.Size())
	}
	if VertexFormatInvalid.Size() != 0 {
		t.Fatalf("expected invalid format to have size 0")
	}
	if got := VertexFormatFloat4.String(); got != "FLOAT4" {
		t.Fatalf("expected FLOAT4; got %s", got)
	}
}
