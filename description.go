package shaderdesc

import "sync/atomic"

// Unset marks an optional location, binding, or descriptor set as
// absent. Zero is a legitimate value for all three, so absence is
// signaled by a negative sentinel instead.
const Unset = -1

// InOutVariable describes a stage input, stage output, combined image
// sampler, or storage image, depending on which list of the description
// holds it.
//
// Location, Binding, and DescriptorSet hold Unset when the variable
// carries no such decoration. Use NewInOutVariable to get a variable
// with all three already unset.
type InOutVariable struct {
	Name string
	Type VariableType

	Location      int
	Binding       int
	DescriptorSet int

	// Storage image decorations; zero values mean undeclared.
	ImageFormat ImageFormat
	ImageFlags  ImageFlags
}

// NewInOutVariable returns a variable of the given name and type with
// no location, binding, or descriptor set decoration.
func NewInOutVariable(name string, t VariableType) InOutVariable {
	return InOutVariable{
		Name:          name,
		Type:          t,
		Location:      Unset,
		Binding:       Unset,
		DescriptorSet: Unset,
	}
}

// BlockVariable describes one member of a uniform, push constant, or
// storage block.
//
// StructMembers is non-empty only when Type is TypeStruct; the nesting
// describes value layouts and never refers back to an enclosing block.
// An ArrayDims entry of 0 marks a runtime-sized dimension.
type BlockVariable struct {
	Name   string
	Type   VariableType
	Offset uint
	Size   uint

	ArrayDims        []int
	ArrayStride      uint
	MatrixStride     uint
	MatrixIsRowMajor bool

	StructMembers []BlockVariable
}

// UniformBlock describes a uniform buffer block. BlockName is the name
// of the block type, StructName the name of its instance.
type UniformBlock struct {
	BlockName     string
	StructName    string
	Size          uint
	Binding       int
	DescriptorSet int
	Members       []BlockVariable
}

// NewUniformBlock returns a uniform block with binding and descriptor
// set unset.
func NewUniformBlock(blockName, structName string) UniformBlock {
	return UniformBlock{
		BlockName:     blockName,
		StructName:    structName,
		Binding:       Unset,
		DescriptorSet: Unset,
	}
}

// PushConstantBlock describes a push constant block. Push constants are
// not descriptor-bound, so there is no binding or set.
type PushConstantBlock struct {
	Name    string
	Size    uint
	Members []BlockVariable
}

// StorageBlock describes a shader storage buffer block.
//
// KnownSize excludes a trailing runtime-sized array member: when the
// last member has an ArrayDims entry of 0, that member's Size is 0 and
// contributes nothing to KnownSize.
type StorageBlock struct {
	BlockName     string
	InstanceName  string
	KnownSize     uint
	Binding       int
	DescriptorSet int
	Members       []BlockVariable
}

// NewStorageBlock returns a storage block with binding and descriptor
// set unset.
func NewStorageBlock(blockName, instanceName string) StorageBlock {
	return StorageBlock{
		BlockName:     blockName,
		InstanceName:  instanceName,
		Binding:       Unset,
		DescriptorSet: Unset,
	}
}

// descData is the shared representation behind ShaderDescription.
// Copies of a description point at the same descData until one of them
// mutates; the mutator detaches onto a private copy first.
type descData struct {
	ref atomic.Int64

	inputs                []InOutVariable
	outputs               []InOutVariable
	uniformBlocks         []UniformBlock
	pushConstantBlocks    []PushConstantBlock
	storageBlocks         []StorageBlock
	combinedImageSamplers []InOutVariable
	storageImages         []InOutVariable
}

func newDescData() *descData {
	d := &descData{}
	d.ref.Store(1)
	return d
}

func (d *descData) clear() {
	d.inputs = nil
	d.outputs = nil
	d.uniformBlocks = nil
	d.pushConstantBlocks = nil
	d.storageBlocks = nil
	d.combinedImageSamplers = nil
	d.storageImages = nil
}

func (d *descData) clone() *descData {
	c := newDescData()
	c.inputs = append([]InOutVariable(nil), d.inputs...)
	c.outputs = append([]InOutVariable(nil), d.outputs...)
	c.uniformBlocks = make([]UniformBlock, len(d.uniformBlocks))
	for i, b := range d.uniformBlocks {
		b.Members = cloneBlockVariables(b.Members)
		c.uniformBlocks[i] = b
	}
	c.pushConstantBlocks = make([]PushConstantBlock, len(d.pushConstantBlocks))
	for i, b := range d.pushConstantBlocks {
		b.Members = cloneBlockVariables(b.Members)
		c.pushConstantBlocks[i] = b
	}
	c.storageBlocks = make([]StorageBlock, len(d.storageBlocks))
	for i, b := range d.storageBlocks {
		b.Members = cloneBlockVariables(b.Members)
		c.storageBlocks[i] = b
	}
	c.combinedImageSamplers = append([]InOutVariable(nil), d.combinedImageSamplers...)
	c.storageImages = append([]InOutVariable(nil), d.storageImages...)
	return c
}

func cloneBlockVariables(vars []BlockVariable) []BlockVariable {
	if vars == nil {
		return nil
	}
	out := make([]BlockVariable, len(vars))
	for i, v := range vars {
		v.ArrayDims = append([]int(nil), v.ArrayDims...)
		v.StructMembers = cloneBlockVariables(v.StructMembers)
		out[i] = v
	}
	return out
}

// ShaderDescription describes the interface of a compiled shader: its
// inputs, outputs, and resource bindings.
//
// ShaderDescription is a handle over a shared representation. Clone
// returns a cheap copy that keeps sharing until either side mutates;
// the mutating side then detaches onto a private copy, so independent
// clones never observe each other's changes. The zero value is a valid,
// empty description.
type ShaderDescription struct {
	d *descData
}

// New returns an empty shader description. IsValid reports false until
// at least one variable or block is added.
func New() ShaderDescription {
	return ShaderDescription{d: newDescData()}
}

// Clone returns a copy sharing the receiver's representation. The copy
// detaches automatically on its first mutation.
//
// Use Clone rather than plain assignment when more than one holder will
// mutate: assignment aliases the same handle without participating in
// the reference count.
func (sd ShaderDescription) Clone() ShaderDescription {
	if sd.d != nil {
		sd.d.ref.Add(1)
	}
	return ShaderDescription{d: sd.d}
}

// detach gives sd a privately owned representation. The reference count
// is the sole synchronization point: a shared block is cloned before
// any write.
func (sd *ShaderDescription) detach() {
	switch {
	case sd.d == nil:
		sd.d = newDescData()
	case sd.d.ref.Load() > 1:
		c := sd.d.clone()
		sd.d.ref.Add(-1)
		sd.d = c
	}
}

// IsValid reports whether the description contains at least one entry
// in any of its variable and block lists.
func (sd ShaderDescription) IsValid() bool {
	d := sd.d
	if d == nil {
		return false
	}
	return len(d.inputs) > 0 || len(d.outputs) > 0 ||
		len(d.uniformBlocks) > 0 || len(d.pushConstantBlocks) > 0 || len(d.storageBlocks) > 0 ||
		len(d.combinedImageSamplers) > 0 || len(d.storageImages) > 0
}

// InputVariables returns the stage input variables in insertion order.
// The returned slice is shared with the description; treat it as
// read-only.
func (sd ShaderDescription) InputVariables() []InOutVariable {
	if sd.d == nil {
		return nil
	}
	return sd.d.inputs
}

// OutputVariables returns the stage output variables in insertion order.
func (sd ShaderDescription) OutputVariables() []InOutVariable {
	if sd.d == nil {
		return nil
	}
	return sd.d.outputs
}

// UniformBlocks returns the uniform blocks in insertion order.
func (sd ShaderDescription) UniformBlocks() []UniformBlock {
	if sd.d == nil {
		return nil
	}
	return sd.d.uniformBlocks
}

// PushConstantBlocks returns the push constant blocks in insertion order.
func (sd ShaderDescription) PushConstantBlocks() []PushConstantBlock {
	if sd.d == nil {
		return nil
	}
	return sd.d.pushConstantBlocks
}

// StorageBlocks returns the storage blocks in insertion order.
func (sd ShaderDescription) StorageBlocks() []StorageBlock {
	if sd.d == nil {
		return nil
	}
	return sd.d.storageBlocks
}

// CombinedImageSamplers returns the combined image sampler variables in
// insertion order.
func (sd ShaderDescription) CombinedImageSamplers() []InOutVariable {
	if sd.d == nil {
		return nil
	}
	return sd.d.combinedImageSamplers
}

// StorageImages returns the storage image variables in insertion order.
func (sd ShaderDescription) StorageImages() []InOutVariable {
	if sd.d == nil {
		return nil
	}
	return sd.d.storageImages
}

// AddInputVariable appends a stage input variable.
func (sd *ShaderDescription) AddInputVariable(v InOutVariable) {
	sd.detach()
	sd.d.inputs = append(sd.d.inputs, v)
}

// AddOutputVariable appends a stage output variable.
func (sd *ShaderDescription) AddOutputVariable(v InOutVariable) {
	sd.detach()
	sd.d.outputs = append(sd.d.outputs, v)
}

// AddUniformBlock appends a uniform block.
func (sd *ShaderDescription) AddUniformBlock(b UniformBlock) {
	sd.detach()
	sd.d.uniformBlocks = append(sd.d.uniformBlocks, b)
}

// AddPushConstantBlock appends a push constant block.
func (sd *ShaderDescription) AddPushConstantBlock(b PushConstantBlock) {
	sd.detach()
	sd.d.pushConstantBlocks = append(sd.d.pushConstantBlocks, b)
}

// AddStorageBlock appends a storage block.
func (sd *ShaderDescription) AddStorageBlock(b StorageBlock) {
	sd.detach()
	sd.d.storageBlocks = append(sd.d.storageBlocks, b)
}

// AddCombinedImageSampler appends a combined image sampler variable.
func (sd *ShaderDescription) AddCombinedImageSampler(v InOutVariable) {
	sd.detach()
	sd.d.combinedImageSamplers = append(sd.d.combinedImageSamplers, v)
}

// AddStorageImage appends a storage image variable.
func (sd *ShaderDescription) AddStorageImage(v InOutVariable) {
	sd.detach()
	sd.d.storageImages = append(sd.d.storageImages, v)
}

// SetInputVariables replaces the stage input variables. The slice is
// adopted, not copied.
func (sd *ShaderDescription) SetInputVariables(vars []InOutVariable) {
	sd.detach()
	sd.d.inputs = vars
}

// SetOutputVariables replaces the stage output variables.
func (sd *ShaderDescription) SetOutputVariables(vars []InOutVariable) {
	sd.detach()
	sd.d.outputs = vars
}

// SetUniformBlocks replaces the uniform blocks.
func (sd *ShaderDescription) SetUniformBlocks(blocks []UniformBlock) {
	sd.detach()
	sd.d.uniformBlocks = blocks
}

// SetPushConstantBlocks replaces the push constant blocks.
func (sd *ShaderDescription) SetPushConstantBlocks(blocks []PushConstantBlock) {
	sd.detach()
	sd.d.pushConstantBlocks = blocks
}

// SetStorageBlocks replaces the storage blocks.
func (sd *ShaderDescription) SetStorageBlocks(blocks []StorageBlock) {
	sd.detach()
	sd.d.storageBlocks = blocks
}

// SetCombinedImageSamplers replaces the combined image sampler variables.
func (sd *ShaderDescription) SetCombinedImageSamplers(vars []InOutVariable) {
	sd.detach()
	sd.d.combinedImageSamplers = vars
}

// SetStorageImages replaces the storage image variables.
func (sd *ShaderDescription) SetStorageImages(vars []InOutVariable) {
	sd.detach()
	sd.d.storageImages = vars
}
