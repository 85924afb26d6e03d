package shaderdesc

import (
	"strings"
	"testing"
)

func TestInOutVariableString(t *testing.T) {
	bare := NewInOutVariable("position", TypeVec4)
	if got := bare.String(); got != "InOutVariable(vec4 position)" {
		t.Errorf("String() = %q", got)
	}

	img := NewInOutVariable("inputImage", TypeImage2D)
	img.Binding = 0
	img.DescriptorSet = 0
	img.ImageFormat = ImageFormatRGBA8
	img.ImageFlags = ImageReadOnly
	got := img.String()
	for _, want := range []string{"image2D", "binding=0", "set=0", "imageFormat=rgba8", "imageFlags=0x1"} {
		if !strings.Contains(got, want) {
			t.Errorf("String() = %q, missing %q", got, want)
		}
	}
	if strings.Contains(got, "location") {
		t.Errorf("String() = %q, unset location rendered", got)
	}
}

func TestBlockVariableString(t *testing.T) {
	v := BlockVariable{
		Name: "mvp", Type: TypeMat4, Offset: 0, Size: 64,
		MatrixStride: 16, MatrixIsRowMajor: true,
	}
	got := v.String()
	for _, want := range []string{"mat4 mvp", "offset=0", "size=64", "matrixStride=16", "[rowmaj]"} {
		if !strings.Contains(got, want) {
			t.Errorf("String() = %q, missing %q", got, want)
		}
	}
}

func TestShaderDescriptionString(t *testing.T) {
	if got := New().String(); got != "ShaderDescription(null)" {
		t.Errorf("empty String() = %q", got)
	}

	sd := New()
	v := NewInOutVariable("position", TypeVec4)
	v.Location = 0
	sd.AddInputVariable(v)
	got := sd.String()
	if !strings.Contains(got, "InOutVariable(vec4 position location=0)") {
		t.Errorf("String() = %q", got)
	}
}
