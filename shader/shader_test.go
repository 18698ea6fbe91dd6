package shader

import (
	"fmt"
	"strings"
	"testing"
)

func TestShaderSources(t *testing.T) {
	vs := GetVertexShader()
	fs := GetFragmentShader()

	version := fmt.Sprintf("#version %d%d0\n", MinGLMajor, MinGLMinor)
	if !strings.HasPrefix(vs, version) || !strings.HasPrefix(fs, version) {
		t.Fatalf("expected both stages to start with %q", version)
	}
	for _, loc := range []int{PositionLocation, ColorLocation} {
		decl := fmt.Sprintf("layout(location=%d)", loc)
		if !strings.Contains(vs, decl) {
			t.Fatalf("vertex stage does not declare %s", decl)
		}
	}
	if !strings.Contains(vs, "out vec4 color;") || !strings.Contains(fs, "in vec4 color;") {
		t.Fatalf("stage interface mismatch")
	}
}
