// Package shaderdesc describes the interface of a compiled shader.
//
// A shader has a set of inputs and outputs, and typically accesses
// resources such as uniform buffers, storage buffers, samplers, and
// storage images. Modern graphics APIs no longer offer a way to query
// this reflection information at run time, so it is generated once at
// shader-compile time and carried alongside the compiled code. A
// [ShaderDescription] is that record: the input and output variables,
// the uniform, push constant, and storage blocks with their member
// layouts, and the combined image sampler and storage image bindings.
//
// # Example
//
// Take the following vertex shader:
//
//	#version 440
//
//	layout(location = 0) in vec4 position;
//	layout(location = 1) in vec3 color;
//	layout(location = 0) out vec3 v_color;
//
//	layout(std140, binding = 0) uniform buf {
//	    mat4 mvp;
//	    float opacity;
//	} ubuf;
//
// Its description has two inputs (position at location 0, color at
// location 1), one output, and one uniform block at binding 0 with a
// size of 68 bytes: a 4x4 matrix at offset 0 and a float at offset 64.
//
// # Serialization
//
// Descriptions are exchanged across process and build boundaries, for
// example by pipeline caches keyed on a shader's content hash.
// [ShaderDescription.Serialize] produces a compact CBOR payload and
// [ShaderDescription.Deserialize] reconstructs it field for field.
// [ShaderDescription.ToJSON] renders the same document as JSON text for
// export and diagnostics; the text form has no decoder.
//
// # Value semantics
//
// ShaderDescription is a copy-on-write value: [ShaderDescription.Clone]
// is cheap and shares the underlying data until one side mutates, at
// which point the mutator detaches onto a private copy.
//
// # Sub-packages
//
//   - introspect derives descriptions from naga IR modules
//   - bind turns resource bindings into gputypes bind group layouts
//   - cache stores serialized descriptions keyed by content digest
//   - null is a no-op device backend that accepts descriptions without
//     touching a GPU
package shaderdesc
