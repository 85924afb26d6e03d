package shaderdesc

import "testing"

func TestTypeNameInverse(t *testing.T) {
	for tag, name := range typeNames {
		if got := TypeFromName(name); got != tag {
			t.Errorf("TypeFromName(%q) = %d, want %d", name, got, tag)
		}
		if TypeName(tag) != name {
			t.Errorf("TypeName(%d) = %q, want %q", tag, TypeName(tag), name)
		}
	}
}

func TestTypeNameSpotChecks(t *testing.T) {
	tests := []struct {
		tag  VariableType
		name string
	}{
		{TypeFloat, "float"},
		{TypeVec4, "vec4"},
		{TypeInt3, "ivec3"},
		{TypeUint2, "uvec2"},
		{TypeBool4, "bvec4"},
		{TypeDouble, "double"},
		{TypeMat4, "mat4"},
		{TypeMat4x3, "mat4x3"},
		{TypeDMat2x4, "dmat2x4"},
		{TypeSampler2D, "sampler2D"},
		{TypeSampler2DMSArray, "sampler2DMSArray"},
		{TypeSamplerBuffer, "samplerBuffer"},
		{TypeImageCubeArray, "imageCubeArray"},
		{TypeStruct, "struct"},
	}
	for _, tt := range tests {
		if got := TypeName(tt.tag); got != tt.name {
			t.Errorf("TypeName(%d) = %q, want %q", tt.tag, got, tt.name)
		}
		if got := TypeFromName(tt.name); got != tt.tag {
			t.Errorf("TypeFromName(%q) = %d, want %d", tt.name, got, tt.tag)
		}
	}
}

func TestTypeFromNameUnknown(t *testing.T) {
	for _, name := range []string{"", "half3", "texture2d", "FLOAT", "vec5"} {
		if got := TypeFromName(name); got != TypeUnknown {
			t.Errorf("TypeFromName(%q) = %d, want TypeUnknown", name, got)
		}
	}
	if got := TypeName(TypeUnknown); got != "" {
		t.Errorf("TypeName(TypeUnknown) = %q, want empty", got)
	}
}

func TestImageFormatNameInverse(t *testing.T) {
	for format, name := range imageFormatNames {
		if got := ImageFormatFromName(name); got != format {
			t.Errorf("ImageFormatFromName(%q) = %d, want %d", name, got, format)
		}
	}
}

func TestImageFormatSpotChecks(t *testing.T) {
	tests := []struct {
		format ImageFormat
		name   string
	}{
		{ImageFormatRGBA32F, "rgba32f"},
		{ImageFormatRGBA16F, "rgba16f"},
		{ImageFormatRGBA16, "rgba16"},
		{ImageFormatR11FG11FB10F, "r11f_g11f_b10f"},
		{ImageFormatRGB10A2UI, "rgb10_a2ui"},
		{ImageFormatR8Snorm, "r8_snorm"},
		{ImageFormatRG32UI, "rg32ui"},
	}
	for _, tt := range tests {
		if got := ImageFormatName(tt.format); got != tt.name {
			t.Errorf("ImageFormatName(%d) = %q, want %q", tt.format, got, tt.name)
		}
		if got := ImageFormatFromName(tt.name); got != tt.format {
			t.Errorf("ImageFormatFromName(%q) = %d, want %d", tt.name, got, tt.format)
		}
	}
}

func TestImageFormatFromNameUnknown(t *testing.T) {
	for _, name := range []string{"", "rgba64f", "bgra8"} {
		if got := ImageFormatFromName(name); got != ImageFormatUnknown {
			t.Errorf("ImageFormatFromName(%q) = %d, want ImageFormatUnknown", name, got)
		}
	}
	if got := ImageFormatName(ImageFormatUnknown); got != "" {
		t.Errorf("ImageFormatName(ImageFormatUnknown) = %q, want empty", got)
	}
}
