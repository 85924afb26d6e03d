// Package bind derives gputypes bind group layouts from shader
// interface descriptions.
//
// A device layer that consumes a [shaderdesc.ShaderDescription] needs
// the reflection data in the shape its pipeline API expects: one
// [gputypes.BindGroupLayoutEntry] per bound resource, grouped by
// descriptor set. GroupLayouts performs that translation; it reads the
// description and allocates nothing on the device.
package bind

import (
	"sort"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/shaderdesc"
)

// GroupLayouts returns one entry list per descriptor set, covering the
// description's uniform blocks, storage blocks, combined image
// samplers, and storage images. Entries within a set are ordered by
// binding number. Resources with no descriptor set decoration land in
// set 0; resources with no binding are skipped, since an entry without
// a binding slot cannot be laid out.
//
// Combined image samplers translate to a texture entry at the
// variable's binding. Sampler slot assignment is a translation-layer
// policy and is left to the caller.
func GroupLayouts(desc shaderdesc.ShaderDescription, visibility gputypes.ShaderStage) map[int][]gputypes.BindGroupLayoutEntry {
	sets := make(map[int][]gputypes.BindGroupLayoutEntry)
	add := func(set int, entry gputypes.BindGroupLayoutEntry) {
		if set < 0 {
			set = 0
		}
		sets[set] = append(sets[set], entry)
	}

	for _, b := range desc.UniformBlocks() {
		if b.Binding < 0 {
			continue
		}
		add(b.DescriptorSet, gputypes.BindGroupLayoutEntry{
			Binding:    uint32(b.Binding),
			Visibility: visibility,
			Buffer: &gputypes.BufferBindingLayout{
				Type:           gputypes.BufferBindingTypeUniform,
				MinBindingSize: uint64(b.Size),
			},
		})
	}
	for _, b := range desc.StorageBlocks() {
		if b.Binding < 0 {
			continue
		}
		add(b.DescriptorSet, gputypes.BindGroupLayoutEntry{
			Binding:    uint32(b.Binding),
			Visibility: visibility,
			Buffer: &gputypes.BufferBindingLayout{
				Type:           gputypes.BufferBindingTypeStorage,
				MinBindingSize: uint64(b.KnownSize),
			},
		})
	}
	for _, v := range desc.CombinedImageSamplers() {
		if v.Binding < 0 {
			continue
		}
		add(v.DescriptorSet, gputypes.BindGroupLayoutEntry{
			Binding:    uint32(v.Binding),
			Visibility: visibility,
			Texture: &gputypes.TextureBindingLayout{
				SampleType:    gputypes.TextureSampleTypeFloat,
				ViewDimension: viewDimension(v.Type),
			},
		})
	}
	for _, v := range desc.StorageImages() {
		if v.Binding < 0 {
			continue
		}
		add(v.DescriptorSet, gputypes.BindGroupLayoutEntry{
			Binding:    uint32(v.Binding),
			Visibility: visibility,
			StorageTexture: &gputypes.StorageTextureBindingLayout{
				Access:        gputypes.StorageTextureAccessReadWrite,
				Format:        textureFormat(v.ImageFormat),
				ViewDimension: viewDimension(v.Type),
			},
		})
	}

	for set := range sets {
		entries := sets[set]
		sort.Slice(entries, func(i, j int) bool { return entries[i].Binding < entries[j].Binding })
	}
	return sets
}

var viewDimensions = map[shaderdesc.VariableType]gputypes.TextureViewDimension{
	shaderdesc.TypeSampler1D:        gputypes.TextureViewDimension1D,
	shaderdesc.TypeSampler2D:        gputypes.TextureViewDimension2D,
	shaderdesc.TypeSampler2DMS:      gputypes.TextureViewDimension2D,
	shaderdesc.TypeSampler3D:        gputypes.TextureViewDimension3D,
	shaderdesc.TypeSamplerCube:      gputypes.TextureViewDimensionCube,
	shaderdesc.TypeSampler2DArray:   gputypes.TextureViewDimension2DArray,
	shaderdesc.TypeSampler2DMSArray: gputypes.TextureViewDimension2DArray,
	shaderdesc.TypeSamplerCubeArray: gputypes.TextureViewDimensionCubeArray,

	shaderdesc.TypeImage1D:        gputypes.TextureViewDimension1D,
	shaderdesc.TypeImage2D:        gputypes.TextureViewDimension2D,
	shaderdesc.TypeImage2DMS:      gputypes.TextureViewDimension2D,
	shaderdesc.TypeImage3D:        gputypes.TextureViewDimension3D,
	shaderdesc.TypeImageCube:      gputypes.TextureViewDimensionCube,
	shaderdesc.TypeImage2DArray:   gputypes.TextureViewDimension2DArray,
	shaderdesc.TypeImage2DMSArray: gputypes.TextureViewDimension2DArray,
	shaderdesc.TypeImageCubeArray: gputypes.TextureViewDimensionCubeArray,
}

// viewDimension maps a sampler or image variable type onto its texture
// view dimension, defaulting to 2D for shapes gputypes does not model
// (rect, buffer, 1D/3D arrays).
func viewDimension(t shaderdesc.VariableType) gputypes.TextureViewDimension {
	if dim, ok := viewDimensions[t]; ok {
		return dim
	}
	return gputypes.TextureViewDimension2D
}

var textureFormats = map[shaderdesc.ImageFormat]gputypes.TextureFormat{
	shaderdesc.ImageFormatRGBA8: gputypes.TextureFormatRGBA8Unorm,
	shaderdesc.ImageFormatR8:    gputypes.TextureFormatR8Unorm,
}

// textureFormat maps a storage image format to a gputypes texture
// format where one exists, and TextureFormatUndefined otherwise.
func textureFormat(f shaderdesc.ImageFormat) gputypes.TextureFormat {
	if tf, ok := textureFormats[f]; ok {
		return tf
	}
	return gputypes.TextureFormatUndefined
}
