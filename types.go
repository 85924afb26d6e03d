package shaderdesc

// VariableType is the type of a shader variable or block member.
type VariableType int

// Variable types. The numeric values are internal; the wire format
// identifies types by their canonical lowercase name, see TypeName.
const (
	TypeUnknown VariableType = iota

	// Scalars and vectors
	TypeFloat
	TypeVec2
	TypeVec3
	TypeVec4
	TypeInt
	TypeInt2
	TypeInt3
	TypeInt4
	TypeUint
	TypeUint2
	TypeUint3
	TypeUint4
	TypeBool
	TypeBool2
	TypeBool3
	TypeBool4
	TypeDouble
	TypeDouble2
	TypeDouble3
	TypeDouble4

	// Matrices, single precision
	TypeMat2
	TypeMat2x3
	TypeMat2x4
	TypeMat3
	TypeMat3x2
	TypeMat3x4
	TypeMat4
	TypeMat4x2
	TypeMat4x3

	// Matrices, double precision
	TypeDMat2
	TypeDMat2x3
	TypeDMat2x4
	TypeDMat3
	TypeDMat3x2
	TypeDMat3x4
	TypeDMat4
	TypeDMat4x2
	TypeDMat4x3

	// Combined image samplers
	TypeSampler1D
	TypeSampler2D
	TypeSampler2DMS
	TypeSampler3D
	TypeSamplerCube
	TypeSampler1DArray
	TypeSampler2DArray
	TypeSampler2DMSArray
	TypeSampler3DArray
	TypeSamplerCubeArray
	TypeSamplerRect
	TypeSamplerBuffer

	// Storage images
	TypeImage1D
	TypeImage2D
	TypeImage2DMS
	TypeImage3D
	TypeImageCube
	TypeImage1DArray
	TypeImage2DArray
	TypeImage2DMSArray
	TypeImage3DArray
	TypeImageCubeArray
	TypeImageRect
	TypeImageBuffer

	// Nested aggregate member
	TypeStruct
)

var typeNames = map[VariableType]string{
	TypeFloat:   "float",
	TypeVec2:    "vec2",
	TypeVec3:    "vec3",
	TypeVec4:    "vec4",
	TypeInt:     "int",
	TypeInt2:    "ivec2",
	TypeInt3:    "ivec3",
	TypeInt4:    "ivec4",
	TypeUint:    "uint",
	TypeUint2:   "uvec2",
	TypeUint3:   "uvec3",
	TypeUint4:   "uvec4",
	TypeBool:    "bool",
	TypeBool2:   "bvec2",
	TypeBool3:   "bvec3",
	TypeBool4:   "bvec4",
	TypeDouble:  "double",
	TypeDouble2: "dvec2",
	TypeDouble3: "dvec3",
	TypeDouble4: "dvec4",

	TypeMat2:   "mat2",
	TypeMat2x3: "mat2x3",
	TypeMat2x4: "mat2x4",
	TypeMat3:   "mat3",
	TypeMat3x2: "mat3x2",
	TypeMat3x4: "mat3x4",
	TypeMat4:   "mat4",
	TypeMat4x2: "mat4x2",
	TypeMat4x3: "mat4x3",

	TypeDMat2:   "dmat2",
	TypeDMat2x3: "dmat2x3",
	TypeDMat2x4: "dmat2x4",
	TypeDMat3:   "dmat3",
	TypeDMat3x2: "dmat3x2",
	TypeDMat3x4: "dmat3x4",
	TypeDMat4:   "dmat4",
	TypeDMat4x2: "dmat4x2",
	TypeDMat4x3: "dmat4x3",

	TypeSampler1D:        "sampler1D",
	TypeSampler2D:        "sampler2D",
	TypeSampler2DMS:      "sampler2DMS",
	TypeSampler3D:        "sampler3D",
	TypeSamplerCube:      "samplerCube",
	TypeSampler1DArray:   "sampler1DArray",
	TypeSampler2DArray:   "sampler2DArray",
	TypeSampler2DMSArray: "sampler2DMSArray",
	TypeSampler3DArray:   "sampler3DArray",
	TypeSamplerCubeArray: "samplerCubeArray",
	TypeSamplerRect:      "samplerRect",
	TypeSamplerBuffer:    "samplerBuffer",

	TypeImage1D:        "image1D",
	TypeImage2D:        "image2D",
	TypeImage2DMS:      "image2DMS",
	TypeImage3D:        "image3D",
	TypeImageCube:      "imageCube",
	TypeImage1DArray:   "image1DArray",
	TypeImage2DArray:   "image2DArray",
	TypeImage2DMSArray: "image2DMSArray",
	TypeImage3DArray:   "image3DArray",
	TypeImageCubeArray: "imageCubeArray",
	TypeImageRect:      "imageRect",
	TypeImageBuffer:    "imageBuffer",

	TypeStruct: "struct",
}

var typesByName = make(map[string]VariableType, len(typeNames))

// TypeName returns the canonical lowercase name of t, or "" if t has no
// canonical name (TypeUnknown, or an out-of-range value).
func TypeName(t VariableType) string {
	return typeNames[t]
}

// TypeFromName maps a canonical name back to its variable type. Names
// not in the vocabulary map to TypeUnknown; TypeFromName never fails.
func TypeFromName(name string) VariableType {
	if t, ok := typesByName[name]; ok {
		return t
	}
	return TypeUnknown
}

// ImageFormat is the declared pixel format of a storage image.
type ImageFormat int

// Image formats, following the GLSL format qualifier vocabulary.
const (
	ImageFormatUnknown ImageFormat = iota

	ImageFormatRGBA32F
	ImageFormatRGBA16F
	ImageFormatRG32F
	ImageFormatRG16F
	ImageFormatR11FG11FB10F
	ImageFormatR32F
	ImageFormatR16F

	ImageFormatRGBA16
	ImageFormatRGB10A2
	ImageFormatRGBA8
	ImageFormatRG16
	ImageFormatRG8
	ImageFormatR16
	ImageFormatR8

	ImageFormatRGBA16Snorm
	ImageFormatRGBA8Snorm
	ImageFormatRG16Snorm
	ImageFormatRG8Snorm
	ImageFormatR16Snorm
	ImageFormatR8Snorm

	ImageFormatRGBA32I
	ImageFormatRGBA16I
	ImageFormatRGBA8I
	ImageFormatRG32I
	ImageFormatRG16I
	ImageFormatRG8I
	ImageFormatR32I
	ImageFormatR16I
	ImageFormatR8I

	ImageFormatRGBA32UI
	ImageFormatRGBA16UI
	ImageFormatRGB10A2UI
	ImageFormatRGBA8UI
	ImageFormatRG32UI
	ImageFormatRG16UI
	ImageFormatRG8UI
	ImageFormatR32UI
	ImageFormatR16UI
	ImageFormatR8UI
)

var imageFormatNames = map[ImageFormat]string{
	ImageFormatRGBA32F:      "rgba32f",
	ImageFormatRGBA16F:      "rgba16f",
	ImageFormatRG32F:        "rg32f",
	ImageFormatRG16F:        "rg16f",
	ImageFormatR11FG11FB10F: "r11f_g11f_b10f",
	ImageFormatR32F:         "r32f",
	ImageFormatR16F:         "r16f",

	ImageFormatRGBA16:  "rgba16",
	ImageFormatRGB10A2: "rgb10_a2",
	ImageFormatRGBA8:   "rgba8",
	ImageFormatRG16:    "rg16",
	ImageFormatRG8:     "rg8",
	ImageFormatR16:     "r16",
	ImageFormatR8:      "r8",

	ImageFormatRGBA16Snorm: "rgba16_snorm",
	ImageFormatRGBA8Snorm:  "rgba8_snorm",
	ImageFormatRG16Snorm:   "rg16_snorm",
	ImageFormatRG8Snorm:    "rg8_snorm",
	ImageFormatR16Snorm:    "r16_snorm",
	ImageFormatR8Snorm:     "r8_snorm",

	ImageFormatRGBA32I: "rgba32i",
	ImageFormatRGBA16I: "rgba16i",
	ImageFormatRGBA8I:  "rgba8i",
	ImageFormatRG32I:   "rg32i",
	ImageFormatRG16I:   "rg16i",
	ImageFormatRG8I:    "rg8i",
	ImageFormatR32I:    "r32i",
	ImageFormatR16I:    "r16i",
	ImageFormatR8I:     "r8i",

	ImageFormatRGBA32UI:  "rgba32ui",
	ImageFormatRGBA16UI:  "rgba16ui",
	ImageFormatRGB10A2UI: "rgb10_a2ui",
	ImageFormatRGBA8UI:   "rgba8ui",
	ImageFormatRG32UI:    "rg32ui",
	ImageFormatRG16UI:    "rg16ui",
	ImageFormatRG8UI:     "rg8ui",
	ImageFormatR32UI:     "r32ui",
	ImageFormatR16UI:     "r16ui",
	ImageFormatR8UI:      "r8ui",
}

var imageFormatsByName = make(map[string]ImageFormat, len(imageFormatNames))

// ImageFormatName returns the canonical lowercase name of f, or "" if f
// has no canonical name (ImageFormatUnknown, or an out-of-range value).
func ImageFormatName(f ImageFormat) string {
	return imageFormatNames[f]
}

// ImageFormatFromName maps a canonical name back to its image format.
// Names not in the vocabulary map to ImageFormatUnknown.
func ImageFormatFromName(name string) ImageFormat {
	if f, ok := imageFormatsByName[name]; ok {
		return f
	}
	return ImageFormatUnknown
}

// ImageFlags is a bitmask of access qualifiers declared on a storage
// image or combined image sampler.
type ImageFlags uint32

// Image flags.
const (
	ImageReadOnly ImageFlags = 1 << iota
	ImageWriteOnly
)

func init() {
	for t, n := range typeNames {
		if _, dup := typesByName[n]; dup {
			panic("shaderdesc: duplicate variable type name " + n)
		}
		typesByName[n] = t
	}
	for f, n := range imageFormatNames {
		if _, dup := imageFormatsByName[n]; dup {
			panic("shaderdesc: duplicate image format name " + n)
		}
		imageFormatsByName[n] = f
	}
}
