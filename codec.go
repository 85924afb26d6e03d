package shaderdesc

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// Wire format keys. These are the serialization contract shared by the
// text and binary forms; the decoder matches them exactly and silently
// ignores keys it does not recognize.
const (
	keyName           = "name"
	keyType           = "type"
	keyLocation       = "location"
	keyBinding        = "binding"
	keySet            = "set"
	keyImageFormat    = "imageFormat"
	keyImageFlags     = "imageFlags"
	keyOffset         = "offset"
	keySize           = "size"
	keyArrayDims      = "arrayDims"
	keyArrayStride    = "arrayStride"
	keyMatrixStride   = "matrixStride"
	keyMatrixRowMajor = "matrixRowMajor"
	keyStructMembers  = "structMembers"
	keyMembers        = "members"
	keyBlockName      = "blockName"
	keyStructName     = "structName"
	keyInstanceName   = "instanceName"
	keyKnownSize      = "knownSize"

	keyInputs                = "inputs"
	keyOutputs               = "outputs"
	keyUniformBlocks         = "uniformBlocks"
	keyPushConstantBlocks    = "pushConstantBlocks"
	keyStorageBlocks         = "storageBlocks"
	keyCombinedImageSamplers = "combinedImageSamplers"
	keyStorageImages         = "storageImages"
)

var (
	cborEnc cbor.EncMode
	cborDec cbor.DecMode
)

func init() {
	var err error
	cborEnc, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("shaderdesc: cbor encode mode: " + err.Error())
	}
	cborDec, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("shaderdesc: cbor decode mode: " + err.Error())
	}
}

// ToJSON returns the description as an indented UTF-8 JSON document.
//
// The text form is export-only: there is no JSON decoder, but field
// presence follows exactly the same rules as Serialize, so the text
// shows precisely what the binary form reconstructs.
func (sd ShaderDescription) ToJSON() []byte {
	data, _ := json.MarshalIndent(sd.document(), "", "    ") // map/slice/scalar tree, cannot fail
	return data
}

// Serialize returns the description as a compact binary payload: a CBOR
// encoding of the same object/array tree that ToJSON renders as text.
// Deserialize reverses it.
func (sd ShaderDescription) Serialize() []byte {
	data, _ := cborEnc.Marshal(sd.document()) // map/slice/scalar tree, cannot fail
	return data
}

// Deserialize replaces the description's contents with the result of
// decoding a payload produced by Serialize.
//
// The receiver must own its representation exclusively: deserializing
// into a description that has live clones would mutate state visible to
// the other holders, so that case panics. All seven lists are cleared
// before decoding. An empty payload leaves the description cleared and
// logs a warning; a payload that is not valid CBOR additionally returns
// an error. Unknown fields and unknown type or format names decode to
// their sentinel values.
func (sd *ShaderDescription) Deserialize(data []byte) error {
	if sd.d == nil {
		sd.d = newDescData()
	}
	if sd.d.ref.Load() != 1 {
		panic("shaderdesc: Deserialize into a shared ShaderDescription")
	}
	sd.d.clear()

	if len(data) == 0 {
		logger().Warn("shaderdesc: empty payload, description cleared")
		return nil
	}
	var root map[string]any
	if err := cborDec.Unmarshal(data, &root); err != nil {
		logger().Warn("shaderdesc: malformed payload, description cleared", "err", err)
		return fmt.Errorf("shaderdesc: decode payload: %w", err)
	}

	d := sd.d
	for _, obj := range arrayField(root, keyInputs) {
		d.inputs = append(d.inputs, decodeInOutVariable(obj))
	}
	for _, obj := range arrayField(root, keyOutputs) {
		d.outputs = append(d.outputs, decodeInOutVariable(obj))
	}
	for _, obj := range arrayField(root, keyUniformBlocks) {
		b := UniformBlock{
			BlockName:     stringField(obj, keyBlockName),
			StructName:    stringField(obj, keyStructName),
			Size:          uintField(obj, keySize),
			Binding:       optIntField(obj, keyBinding),
			DescriptorSet: optIntField(obj, keySet),
		}
		for _, m := range arrayField(obj, keyMembers) {
			b.Members = append(b.Members, decodeBlockVariable(m))
		}
		d.uniformBlocks = append(d.uniformBlocks, b)
	}
	for _, obj := range arrayField(root, keyPushConstantBlocks) {
		b := PushConstantBlock{
			Name: stringField(obj, keyName),
			Size: uintField(obj, keySize),
		}
		for _, m := range arrayField(obj, keyMembers) {
			b.Members = append(b.Members, decodeBlockVariable(m))
		}
		d.pushConstantBlocks = append(d.pushConstantBlocks, b)
	}
	for _, obj := range arrayField(root, keyStorageBlocks) {
		b := StorageBlock{
			BlockName:     stringField(obj, keyBlockName),
			InstanceName:  stringField(obj, keyInstanceName),
			KnownSize:     uintField(obj, keyKnownSize),
			Binding:       optIntField(obj, keyBinding),
			DescriptorSet: optIntField(obj, keySet),
		}
		for _, m := range arrayField(obj, keyMembers) {
			b.Members = append(b.Members, decodeBlockVariable(m))
		}
		d.storageBlocks = append(d.storageBlocks, b)
	}
	for _, obj := range arrayField(root, keyCombinedImageSamplers) {
		d.combinedImageSamplers = append(d.combinedImageSamplers, decodeInOutVariable(obj))
	}
	for _, obj := range arrayField(root, keyStorageImages) {
		d.storageImages = append(d.storageImages, decodeInOutVariable(obj))
	}
	return nil
}

// document builds the object/array tree shared by the text and binary
// codecs. Each of the seven top-level lists appears only when non-empty,
// so an invalid (empty) description serializes to an empty document.
func (sd ShaderDescription) document() map[string]any {
	root := map[string]any{}
	d := sd.d
	if d == nil {
		return root
	}

	if len(d.inputs) > 0 {
		root[keyInputs] = inOutArray(d.inputs)
	}
	if len(d.outputs) > 0 {
		root[keyOutputs] = inOutArray(d.outputs)
	}
	if len(d.uniformBlocks) > 0 {
		blocks := make([]any, 0, len(d.uniformBlocks))
		for _, b := range d.uniformBlocks {
			obj := map[string]any{
				keyBlockName:  b.BlockName,
				keyStructName: b.StructName,
				keySize:       b.Size,
				keyMembers:    memberArray(b.Members),
			}
			if b.Binding >= 0 {
				obj[keyBinding] = b.Binding
			}
			if b.DescriptorSet >= 0 {
				obj[keySet] = b.DescriptorSet
			}
			blocks = append(blocks, obj)
		}
		root[keyUniformBlocks] = blocks
	}
	if len(d.pushConstantBlocks) > 0 {
		blocks := make([]any, 0, len(d.pushConstantBlocks))
		for _, b := range d.pushConstantBlocks {
			blocks = append(blocks, map[string]any{
				keyName:    b.Name,
				keySize:    b.Size,
				keyMembers: memberArray(b.Members),
			})
		}
		root[keyPushConstantBlocks] = blocks
	}
	if len(d.storageBlocks) > 0 {
		blocks := make([]any, 0, len(d.storageBlocks))
		for _, b := range d.storageBlocks {
			obj := map[string]any{
				keyBlockName:    b.BlockName,
				keyInstanceName: b.InstanceName,
				keyKnownSize:    b.KnownSize,
				keyMembers:      memberArray(b.Members),
			}
			if b.Binding >= 0 {
				obj[keyBinding] = b.Binding
			}
			if b.DescriptorSet >= 0 {
				obj[keySet] = b.DescriptorSet
			}
			blocks = append(blocks, obj)
		}
		root[keyStorageBlocks] = blocks
	}
	if len(d.combinedImageSamplers) > 0 {
		root[keyCombinedImageSamplers] = inOutArray(d.combinedImageSamplers)
	}
	if len(d.storageImages) > 0 {
		root[keyStorageImages] = inOutArray(d.storageImages)
	}
	return root
}

func inOutArray(vars []InOutVariable) []any {
	arr := make([]any, 0, len(vars))
	for _, v := range vars {
		obj := map[string]any{
			keyName: v.Name,
			keyType: TypeName(v.Type),
		}
		if v.Location >= 0 {
			obj[keyLocation] = v.Location
		}
		if v.Binding >= 0 {
			obj[keyBinding] = v.Binding
		}
		if v.DescriptorSet >= 0 {
			obj[keySet] = v.DescriptorSet
		}
		if v.ImageFormat != ImageFormatUnknown {
			obj[keyImageFormat] = ImageFormatName(v.ImageFormat)
		}
		if v.ImageFlags != 0 {
			obj[keyImageFlags] = uint32(v.ImageFlags)
		}
		arr = append(arr, obj)
	}
	return arr
}

func memberArray(members []BlockVariable) []any {
	arr := make([]any, 0, len(members))
	for _, v := range members {
		arr = append(arr, blockMemberObject(v))
	}
	return arr
}

func blockMemberObject(v BlockVariable) map[string]any {
	obj := map[string]any{
		keyName:   v.Name,
		keyType:   TypeName(v.Type),
		keyOffset: v.Offset,
		keySize:   v.Size,
	}
	if len(v.ArrayDims) > 0 {
		dims := make([]any, 0, len(v.ArrayDims))
		for _, dim := range v.ArrayDims {
			dims = append(dims, dim)
		}
		obj[keyArrayDims] = dims
	}
	if v.ArrayStride != 0 {
		obj[keyArrayStride] = v.ArrayStride
	}
	if v.MatrixStride != 0 {
		obj[keyMatrixStride] = v.MatrixStride
	}
	if v.MatrixIsRowMajor {
		obj[keyMatrixRowMajor] = true
	}
	if len(v.StructMembers) > 0 {
		obj[keyStructMembers] = memberArray(v.StructMembers)
	}
	return obj
}

func decodeInOutVariable(obj map[string]any) InOutVariable {
	return InOutVariable{
		Name:          stringField(obj, keyName),
		Type:          TypeFromName(stringField(obj, keyType)),
		Location:      optIntField(obj, keyLocation),
		Binding:       optIntField(obj, keyBinding),
		DescriptorSet: optIntField(obj, keySet),
		ImageFormat:   ImageFormatFromName(stringField(obj, keyImageFormat)),
		ImageFlags:    ImageFlags(uintField(obj, keyImageFlags)),
	}
}

func decodeBlockVariable(obj map[string]any) BlockVariable {
	v := BlockVariable{
		Name:             stringField(obj, keyName),
		Type:             TypeFromName(stringField(obj, keyType)),
		Offset:           uintField(obj, keyOffset),
		Size:             uintField(obj, keySize),
		ArrayStride:      uintField(obj, keyArrayStride),
		MatrixStride:     uintField(obj, keyMatrixStride),
		MatrixIsRowMajor: boolField(obj, keyMatrixRowMajor),
	}
	if raw, ok := obj[keyArrayDims].([]any); ok {
		for _, dim := range raw {
			v.ArrayDims = append(v.ArrayDims, asInt(dim))
		}
	}
	for _, m := range arrayField(obj, keyStructMembers) {
		v.StructMembers = append(v.StructMembers, decodeBlockVariable(m))
	}
	return v
}

// arrayField returns the objects of an array-valued field. Absent
// fields, non-array values, and non-object elements yield nothing.
func arrayField(obj map[string]any, key string) []map[string]any {
	raw, ok := obj[key].([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(raw))
	for _, el := range raw {
		if m, ok := el.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

func boolField(obj map[string]any, key string) bool {
	b, _ := obj[key].(bool)
	return b
}

// optIntField returns the integer value of key, or Unset when the field
// is absent. Only non-negative values are ever emitted, so Unset cannot
// collide with a wire value.
func optIntField(obj map[string]any, key string) int {
	raw, ok := obj[key]
	if !ok {
		return Unset
	}
	return asInt(raw)
}

func uintField(obj map[string]any, key string) uint {
	raw, ok := obj[key]
	if !ok {
		return 0
	}
	if n := asInt(raw); n > 0 {
		return uint(n)
	}
	return 0
}

// asInt coerces the integer representations the CBOR decoder produces
// for untyped trees.
func asInt(v any) int {
	switch n := v.(type) {
	case uint64:
		return int(n)
	case int64:
		return int(n)
	case int:
		return n
	case uint:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}
