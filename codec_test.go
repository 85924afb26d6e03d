package shaderdesc

import (
	"encoding/json"
	"reflect"
	"testing"
)

// fullDescription populates every list, including the tricky shapes:
// nested struct members, runtime-sized trailing arrays, matrix strides,
// image decorations.
func fullDescription() ShaderDescription {
	sd := New()

	pos := NewInOutVariable("position", TypeVec4)
	pos.Location = 0
	sd.AddInputVariable(pos)
	col := NewInOutVariable("color", TypeVec3)
	col.Location = 1
	sd.AddInputVariable(col)

	out := NewInOutVariable("v_color", TypeVec3)
	out.Location = 0
	sd.AddOutputVariable(out)

	ub := NewUniformBlock("buf", "ubuf")
	ub.Size = 68
	ub.Binding = 0
	ub.DescriptorSet = 0
	ub.Members = []BlockVariable{
		{Name: "mvp", Type: TypeMat4, Offset: 0, Size: 64, MatrixStride: 16},
		{Name: "opacity", Type: TypeFloat, Offset: 64, Size: 4},
	}
	sd.AddUniformBlock(ub)

	sd.AddPushConstantBlock(PushConstantBlock{
		Name: "pc",
		Size: 16,
		Members: []BlockVariable{
			{Name: "factor", Type: TypeVec4, Offset: 0, Size: 16},
		},
	})

	sb := NewStorageBlock("StuffSsbo", "buf")
	sb.KnownSize = 16
	sb.Binding = 1
	sb.DescriptorSet = 0
	sb.Members = []BlockVariable{
		{Name: "whatever", Type: TypeVec4, Offset: 0, Size: 16},
		{
			Name: "stuff", Type: TypeStruct, Offset: 16, Size: 0,
			ArrayDims:   []int{0},
			ArrayStride: 16,
			StructMembers: []BlockVariable{
				{Name: "a", Type: TypeVec2, Offset: 0, Size: 8},
				{Name: "b", Type: TypeVec2, Offset: 8, Size: 8, MatrixIsRowMajor: false},
			},
		},
	}
	sd.AddStorageBlock(sb)

	tex := NewInOutVariable("tex", TypeSampler2D)
	tex.Binding = 1
	tex.DescriptorSet = 0
	sd.AddCombinedImageSampler(tex)

	img := NewInOutVariable("inputImage", TypeImage2D)
	img.Binding = 0
	img.DescriptorSet = 0
	img.ImageFormat = ImageFormatRGBA8
	img.ImageFlags = ImageReadOnly
	sd.AddStorageImage(img)

	return sd
}

func requireEqualDescriptions(t *testing.T, got, want ShaderDescription) {
	t.Helper()
	type pair struct {
		name      string
		got, want any
	}
	for _, p := range []pair{
		{"inputs", got.InputVariables(), want.InputVariables()},
		{"outputs", got.OutputVariables(), want.OutputVariables()},
		{"uniformBlocks", got.UniformBlocks(), want.UniformBlocks()},
		{"pushConstantBlocks", got.PushConstantBlocks(), want.PushConstantBlocks()},
		{"storageBlocks", got.StorageBlocks(), want.StorageBlocks()},
		{"combinedImageSamplers", got.CombinedImageSamplers(), want.CombinedImageSamplers()},
		{"storageImages", got.StorageImages(), want.StorageImages()},
	} {
		if !reflect.DeepEqual(p.got, p.want) {
			t.Errorf("%s differ after round trip:\n got %+v\nwant %+v", p.name, p.got, p.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	want := fullDescription()

	got := New()
	if err := got.Deserialize(want.Serialize()); err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	requireEqualDescriptions(t, got, want)
}

func TestRoundTripEmpty(t *testing.T) {
	empty := New()
	payload := empty.Serialize()
	if len(payload) == 0 {
		t.Fatal("Serialize() of empty description returned no bytes")
	}

	got := New()
	if err := got.Deserialize(payload); err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if got.IsValid() {
		t.Error("empty description round-tripped to a valid one")
	}
}

func TestEmptyDocumentIsEmptyObject(t *testing.T) {
	if got := string(New().ToJSON()); got != "{}" {
		t.Errorf("ToJSON() of empty description = %q, want {}", got)
	}
}

func jsonDocument(t *testing.T, sd ShaderDescription) map[string]any {
	t.Helper()
	var doc map[string]any
	if err := json.Unmarshal(sd.ToJSON(), &doc); err != nil {
		t.Fatalf("ToJSON produced invalid JSON: %v", err)
	}
	return doc
}

func TestPresenceOmission(t *testing.T) {
	sd := New()
	sd.AddInputVariable(NewInOutVariable("bare", TypeVec2))

	doc := jsonDocument(t, sd)
	inputs := doc["inputs"].([]any)
	obj := inputs[0].(map[string]any)

	for _, key := range []string{"location", "binding", "set", "imageFormat", "imageFlags"} {
		if _, present := obj[key]; present {
			t.Errorf("unset field %q emitted: %v", key, obj[key])
		}
	}
	if obj["name"] != "bare" || obj["type"] != "vec2" {
		t.Errorf("mandatory fields wrong: %v", obj)
	}
}

func TestZeroLocationIsPresent(t *testing.T) {
	v := NewInOutVariable("position", TypeVec4)
	v.Location = 0
	sd := New()
	sd.AddInputVariable(v)

	obj := jsonDocument(t, sd)["inputs"].([]any)[0].(map[string]any)
	loc, present := obj["location"]
	if !present {
		t.Fatal("location 0 was omitted; zero is a present value")
	}
	if loc.(float64) != 0 {
		t.Errorf("location = %v, want 0", loc)
	}
}

func TestOptionalBlockMemberFieldsOmitted(t *testing.T) {
	ub := NewUniformBlock("buf", "ubuf")
	ub.Members = []BlockVariable{{Name: "x", Type: TypeFloat, Offset: 0, Size: 4}}
	sd := New()
	sd.AddUniformBlock(ub)

	block := jsonDocument(t, sd)["uniformBlocks"].([]any)[0].(map[string]any)
	for _, key := range []string{"binding", "set"} {
		if _, present := block[key]; present {
			t.Errorf("unset block field %q emitted", key)
		}
	}
	member := block["members"].([]any)[0].(map[string]any)
	for _, key := range []string{"arrayDims", "arrayStride", "matrixStride", "matrixRowMajor", "structMembers"} {
		if _, present := member[key]; present {
			t.Errorf("unset member field %q emitted", key)
		}
	}
	for _, key := range []string{"name", "type", "offset", "size"} {
		if _, present := member[key]; !present {
			t.Errorf("mandatory member field %q missing", key)
		}
	}
}

func TestNestedStructRoundTrip(t *testing.T) {
	ub := NewUniformBlock("scene", "u_scene")
	ub.Size = 32
	ub.Binding = 2
	ub.Members = []BlockVariable{{
		Name: "light", Type: TypeStruct, Offset: 0, Size: 32,
		StructMembers: []BlockVariable{
			{Name: "dir", Type: TypeVec3, Offset: 0, Size: 12},
			{Name: "intensity", Type: TypeFloat, Offset: 12, Size: 4},
		},
	}}
	want := New()
	want.AddUniformBlock(ub)

	got := New()
	if err := got.Deserialize(want.Serialize()); err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	members := got.UniformBlocks()[0].Members[0].StructMembers
	if len(members) != 2 {
		t.Fatalf("got %d nested members, want 2", len(members))
	}
	if members[0].Name != "dir" || members[0].Offset != 0 {
		t.Errorf("first nested member = %+v", members[0])
	}
	if members[1].Name != "intensity" || members[1].Offset != 12 {
		t.Errorf("second nested member = %+v", members[1])
	}
}

func TestRuntimeSizedStorageBlock(t *testing.T) {
	want := fullDescription()

	got := New()
	if err := got.Deserialize(want.Serialize()); err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	sb := got.StorageBlocks()[0]
	if sb.KnownSize != 16 {
		t.Errorf("KnownSize = %d, want 16 (runtime tail excluded)", sb.KnownSize)
	}
	tail := sb.Members[len(sb.Members)-1]
	if tail.Size != 0 {
		t.Errorf("runtime tail Size = %d, want 0", tail.Size)
	}
	if !reflect.DeepEqual(tail.ArrayDims, []int{0}) {
		t.Errorf("runtime tail ArrayDims = %v, want [0]", tail.ArrayDims)
	}
}

func TestMultiDimensionalRuntimeArrayPreserved(t *testing.T) {
	sb := NewStorageBlock("grid", "g")
	sb.Members = []BlockVariable{{
		Name: "cells", Type: TypeUint, Offset: 0, Size: 0,
		ArrayDims: []int{4, 0},
	}}
	want := New()
	want.AddStorageBlock(sb)

	got := New()
	if err := got.Deserialize(want.Serialize()); err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	dims := got.StorageBlocks()[0].Members[0].ArrayDims
	if !reflect.DeepEqual(dims, []int{4, 0}) {
		t.Errorf("ArrayDims = %v, want [4 0] preserved verbatim", dims)
	}
}

func TestDeserializeSharedPanics(t *testing.T) {
	sd := New()
	sd.AddInputVariable(NewInOutVariable("position", TypeVec4))
	clone := sd.Clone()
	_ = clone

	defer func() {
		if recover() == nil {
			t.Error("Deserialize into a shared description did not panic")
		}
	}()
	_ = sd.Deserialize(New().Serialize())
}

func TestDeserializeEmptyPayload(t *testing.T) {
	sd := fullDescription()
	if err := sd.Deserialize(nil); err != nil {
		t.Fatalf("Deserialize(nil) = %v, want nil (warn and clear)", err)
	}
	if sd.IsValid() {
		t.Error("description still valid after deserializing empty payload")
	}
}

func TestDeserializeMalformedPayload(t *testing.T) {
	sd := fullDescription()
	if err := sd.Deserialize([]byte{0xff, 0x00, 0x13, 0x37}); err == nil {
		t.Error("Deserialize of garbage = nil, want error")
	}
	if sd.IsValid() {
		t.Error("description still valid after failed deserialize")
	}
}

func TestDeserializeClearsPreviousContents(t *testing.T) {
	sd := fullDescription()

	other := New()
	other.AddOutputVariable(NewInOutVariable("only", TypeFloat))
	if err := sd.Deserialize(other.Serialize()); err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if len(sd.InputVariables()) != 0 || len(sd.UniformBlocks()) != 0 {
		t.Error("previous contents survived Deserialize")
	}
	if len(sd.OutputVariables()) != 1 {
		t.Errorf("got %d outputs, want 1", len(sd.OutputVariables()))
	}
}

func TestUnknownFieldsAndNamesIgnored(t *testing.T) {
	payload, err := cborEnc.Marshal(map[string]any{
		"inputs": []any{map[string]any{
			"name":       "v",
			"type":       "float16_t", // not in the vocabulary
			"hologram":   true,        // unknown field
			"descriptor": 7,           // unknown field
		}},
		"futureBlocks": []any{}, // unknown top-level field
	})
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}

	sd := New()
	if err := sd.Deserialize(payload); err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	inputs := sd.InputVariables()
	if len(inputs) != 1 {
		t.Fatalf("got %d inputs, want 1", len(inputs))
	}
	if inputs[0].Type != TypeUnknown {
		t.Errorf("unknown type name decoded to %d, want TypeUnknown", inputs[0].Type)
	}
	if inputs[0].Name != "v" {
		t.Errorf("name = %q, want v", inputs[0].Name)
	}
}

func TestTextAndBinaryAgreeOnPresence(t *testing.T) {
	sd := fullDescription()

	var fromJSON, fromCBOR map[string]any
	if err := json.Unmarshal(sd.ToJSON(), &fromJSON); err != nil {
		t.Fatalf("json: %v", err)
	}
	if err := cborDec.Unmarshal(sd.Serialize(), &fromCBOR); err != nil {
		t.Fatalf("cbor: %v", err)
	}
	if !reflect.DeepEqual(topLevelShape(fromJSON), topLevelShape(fromCBOR)) {
		t.Errorf("text and binary documents disagree on field presence:\n json %v\n cbor %v",
			topLevelShape(fromJSON), topLevelShape(fromCBOR))
	}
}

// topLevelShape reduces a decoded document to key -> array length.
func topLevelShape(doc map[string]any) map[string]int {
	shape := make(map[string]int, len(doc))
	for k, v := range doc {
		if arr, ok := v.([]any); ok {
			shape[k] = len(arr)
		}
	}
	return shape
}

// TestVertexShaderExample is the worked example from the package
// documentation: one vec4 input at location 0 plus a 68-byte uniform
// block with an mvp matrix and an opacity float.
func TestVertexShaderExample(t *testing.T) {
	pos := NewInOutVariable("position", TypeVec4)
	pos.Location = 0

	ub := NewUniformBlock("buf", "ubuf")
	ub.Size = 68
	ub.Binding = 0
	ub.DescriptorSet = 0
	ub.Members = []BlockVariable{
		{Name: "mvp", Type: TypeMat4, Offset: 0, Size: 64, MatrixStride: 16},
		{Name: "opacity", Type: TypeFloat, Offset: 64, Size: 4},
	}

	want := New()
	want.AddInputVariable(pos)
	want.AddUniformBlock(ub)

	doc := jsonDocument(t, want)
	if len(doc) != 2 {
		t.Errorf("document has %d top-level fields, want 2 (inputs, uniformBlocks)", len(doc))
	}
	if got := len(doc["inputs"].([]any)); got != 1 {
		t.Errorf("inputs has %d entries, want 1", got)
	}
	blocks := doc["uniformBlocks"].([]any)
	if len(blocks) != 1 {
		t.Fatalf("uniformBlocks has %d entries, want 1", len(blocks))
	}
	members := blocks[0].(map[string]any)["members"].([]any)
	if len(members) != 2 {
		t.Errorf("members has %d entries, want 2", len(members))
	}

	got := New()
	if err := got.Deserialize(want.Serialize()); err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	requireEqualDescriptions(t, got, want)
}
