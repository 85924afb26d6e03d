// Package introspect derives shader interface descriptions from naga
// IR modules.
//
// A compiled [ir.Module] already knows everything a
// [shaderdesc.ShaderDescription] records: entry point arguments and
// results carry location bindings, module globals carry resource
// bindings and struct layouts. EntryPoint walks those and produces the
// description a pipeline cache or device layer consumes, without
// touching the compilation pipeline itself.
package introspect

import (
	"fmt"

	"github.com/gogpu/naga/ir"

	"github.com/gogpu/shaderdesc"
)

// EntryPoint returns the interface description for the named entry
// point of m. Stage inputs and outputs come from the entry point's
// function signature; resource bindings come from the module's global
// variables, which naga scopes to the whole module.
func EntryPoint(m *ir.Module, name string) (shaderdesc.ShaderDescription, error) {
	for i := range m.EntryPoints {
		ep := &m.EntryPoints[i]
		if ep.Name != name {
			continue
		}
		if int(ep.Function) >= len(m.Functions) {
			return shaderdesc.ShaderDescription{}, fmt.Errorf("introspect: entry point %q has no function", name)
		}
		desc := shaderdesc.New()
		fn := &m.Functions[ep.Function]
		describeSignature(m, fn, &desc)
		describeGlobals(m, &desc)
		return desc, nil
	}
	return shaderdesc.ShaderDescription{}, fmt.Errorf("introspect: entry point %q not found", name)
}

// describeSignature records the entry point's user-facing inputs and
// outputs. Builtin bindings (position, vertex index, ...) are part of
// the pipeline contract rather than the application interface and are
// skipped.
func describeSignature(m *ir.Module, fn *ir.Function, desc *shaderdesc.ShaderDescription) {
	for _, arg := range fn.Arguments {
		describeIOVar(m, arg.Name, arg.Type, arg.Binding, desc.AddInputVariable)
	}
	if fn.Result != nil {
		describeIOVar(m, "", fn.Result.Type, fn.Result.Binding, desc.AddOutputVariable)
	}
}

func describeIOVar(m *ir.Module, name string, h ir.TypeHandle, binding *ir.Binding, add func(shaderdesc.InOutVariable)) {
	if loc, ok := locationOf(binding); ok {
		v := shaderdesc.NewInOutVariable(name, variableType(m, h))
		v.Location = loc
		add(v)
		return
	}
	if binding != nil {
		return // builtin
	}
	// An unbound struct carries the bindings on its members.
	if st, ok := typeInner(m, h).(ir.StructType); ok {
		for _, member := range st.Members {
			describeIOVar(m, member.Name, member.Type, member.Binding, add)
		}
	}
}

func locationOf(b *ir.Binding) (int, bool) {
	if b == nil {
		return 0, false
	}
	switch lb := (*b).(type) {
	case ir.LocationBinding:
		return int(lb.Location), true
	case *ir.LocationBinding:
		return int(lb.Location), true
	}
	return 0, false
}

func describeGlobals(m *ir.Module, desc *shaderdesc.ShaderDescription) {
	for _, g := range m.GlobalVariables {
		switch g.Space {
		case ir.SpaceUniform:
			desc.AddUniformBlock(uniformBlock(m, g))
		case ir.SpaceStorage:
			desc.AddStorageBlock(storageBlock(m, g))
		case ir.SpacePushConstant:
			desc.AddPushConstantBlock(pushConstantBlock(m, g))
		case ir.SpaceHandle:
			describeHandle(m, g, desc)
		}
	}
}

func uniformBlock(m *ir.Module, g ir.GlobalVariable) shaderdesc.UniformBlock {
	b := shaderdesc.NewUniformBlock(typeName(m, g.Type), g.Name)
	b.Binding, b.DescriptorSet = resourceBinding(g)
	b.Size = uint(typeSize(m, g.Type))
	b.Members = blockMembers(m, g.Type)
	return b
}

func pushConstantBlock(m *ir.Module, g ir.GlobalVariable) shaderdesc.PushConstantBlock {
	return shaderdesc.PushConstantBlock{
		Name:    g.Name,
		Size:    uint(typeSize(m, g.Type)),
		Members: blockMembers(m, g.Type),
	}
}

func storageBlock(m *ir.Module, g ir.GlobalVariable) shaderdesc.StorageBlock {
	b := shaderdesc.NewStorageBlock(typeName(m, g.Type), g.Name)
	b.Binding, b.DescriptorSet = resourceBinding(g)
	b.Members = blockMembers(m, g.Type)

	// A trailing runtime-sized array contributes nothing to the known
	// size; it reports size 0 and a dimension of 0.
	b.KnownSize = uint(typeSize(m, g.Type))
	if n := len(b.Members); n > 0 {
		tail := &b.Members[n-1]
		if len(tail.ArrayDims) > 0 && tail.ArrayDims[len(tail.ArrayDims)-1] == 0 {
			tail.Size = 0
			b.KnownSize = tail.Offset
		}
	}
	return b
}

func describeHandle(m *ir.Module, g ir.GlobalVariable, desc *shaderdesc.ShaderDescription) {
	img, ok := typeInner(m, g.Type).(ir.ImageType)
	if !ok {
		return // separate sampler objects have no slot in the description
	}
	v := shaderdesc.NewInOutVariable(g.Name, imageVariableType(img))
	v.Binding, v.DescriptorSet = resourceBinding(g)
	if img.Class == ir.ImageClassStorage {
		desc.AddStorageImage(v)
		return
	}
	desc.AddCombinedImageSampler(v)
}

func resourceBinding(g ir.GlobalVariable) (binding, set int) {
	if g.Binding == nil {
		return shaderdesc.Unset, shaderdesc.Unset
	}
	return int(g.Binding.Binding), int(g.Binding.Group)
}

// blockMembers describes a block's member layout. A non-struct block
// type degenerates to a single anonymous member.
func blockMembers(m *ir.Module, h ir.TypeHandle) []shaderdesc.BlockVariable {
	st, ok := typeInner(m, h).(ir.StructType)
	if !ok {
		return []shaderdesc.BlockVariable{blockVariable(m, "", 0, h)}
	}
	members := make([]shaderdesc.BlockVariable, 0, len(st.Members))
	for _, member := range st.Members {
		members = append(members, blockVariable(m, member.Name, uint(member.Offset), member.Type))
	}
	return members
}

func blockVariable(m *ir.Module, name string, offset uint, h ir.TypeHandle) shaderdesc.BlockVariable {
	v := shaderdesc.BlockVariable{
		Name:   name,
		Offset: offset,
	}
	switch inner := typeInner(m, h).(type) {
	case ir.ArrayType:
		v = blockVariable(m, name, offset, inner.Base)
		dim := 0
		if inner.Size.Constant != nil {
			dim = int(*inner.Size.Constant)
		}
		v.ArrayDims = append([]int{dim}, v.ArrayDims...)
		v.ArrayStride = uint(inner.Stride)
		v.Size = uint(inner.Stride) * uint(dim)
	case ir.StructType:
		v.Type = shaderdesc.TypeStruct
		v.Size = uint(inner.Span)
		v.StructMembers = make([]shaderdesc.BlockVariable, 0, len(inner.Members))
		for _, member := range inner.Members {
			v.StructMembers = append(v.StructMembers, blockVariable(m, member.Name, uint(member.Offset), member.Type))
		}
	case ir.MatrixType:
		v.Type = matrixVariableType(inner)
		stride := columnStride(inner)
		v.MatrixStride = stride
		v.Size = uint(inner.Columns) * stride
	default:
		v.Type = variableType(m, h)
		v.Size = uint(typeSize(m, h))
	}
	return v
}

func typeInner(m *ir.Module, h ir.TypeHandle) ir.TypeInner {
	if int(h) >= len(m.Types) {
		return nil
	}
	inner := m.Types[h].Inner
	if p, ok := inner.(ir.PointerType); ok {
		return typeInner(m, p.Base)
	}
	return inner
}

func typeName(m *ir.Module, h ir.TypeHandle) string {
	if int(h) >= len(m.Types) {
		return ""
	}
	return m.Types[h].Name
}

// typeSize returns the byte size of a type under the tight layout naga
// records (struct spans and array strides come from the IR itself).
func typeSize(m *ir.Module, h ir.TypeHandle) uint32 {
	switch inner := typeInner(m, h).(type) {
	case ir.ScalarType:
		return uint32(inner.Width)
	case ir.AtomicType:
		return uint32(inner.Scalar.Width)
	case ir.VectorType:
		return uint32(inner.Size) * uint32(inner.Scalar.Width)
	case ir.MatrixType:
		return uint32(inner.Columns) * uint32(columnStride(inner))
	case ir.StructType:
		return inner.Span
	case ir.ArrayType:
		if inner.Size.Constant == nil {
			return 0
		}
		return inner.Stride * *inner.Size.Constant
	default:
		return 0
	}
}

// columnStride is the byte distance between matrix columns. Columns
// with three rows pad to four, as in both std140 and std430.
func columnStride(mt ir.MatrixType) uint {
	rows := uint(mt.Rows)
	if rows == 3 {
		rows = 4
	}
	return rows * uint(mt.Scalar.Width)
}

func variableType(m *ir.Module, h ir.TypeHandle) shaderdesc.VariableType {
	switch inner := typeInner(m, h).(type) {
	case ir.ScalarType:
		return scalarVariableType(inner, 1)
	case ir.AtomicType:
		return scalarVariableType(inner.Scalar, 1)
	case ir.VectorType:
		return scalarVariableType(inner.Scalar, int(inner.Size))
	case ir.MatrixType:
		return matrixVariableType(inner)
	case ir.StructType:
		return shaderdesc.TypeStruct
	case ir.ImageType:
		return imageVariableType(inner)
	default:
		return shaderdesc.TypeUnknown
	}
}

var scalarTypes = map[ir.ScalarKind][4]shaderdesc.VariableType{
	ir.ScalarFloat: {shaderdesc.TypeFloat, shaderdesc.TypeVec2, shaderdesc.TypeVec3, shaderdesc.TypeVec4},
	ir.ScalarSint:  {shaderdesc.TypeInt, shaderdesc.TypeInt2, shaderdesc.TypeInt3, shaderdesc.TypeInt4},
	ir.ScalarUint:  {shaderdesc.TypeUint, shaderdesc.TypeUint2, shaderdesc.TypeUint3, shaderdesc.TypeUint4},
	ir.ScalarBool:  {shaderdesc.TypeBool, shaderdesc.TypeBool2, shaderdesc.TypeBool3, shaderdesc.TypeBool4},
}

var doubleTypes = [4]shaderdesc.VariableType{
	shaderdesc.TypeDouble, shaderdesc.TypeDouble2, shaderdesc.TypeDouble3, shaderdesc.TypeDouble4,
}

func scalarVariableType(s ir.ScalarType, components int) shaderdesc.VariableType {
	if components < 1 || components > 4 {
		return shaderdesc.TypeUnknown
	}
	if s.Kind == ir.ScalarFloat && s.Width == 8 {
		return doubleTypes[components-1]
	}
	if row, ok := scalarTypes[s.Kind]; ok {
		return row[components-1]
	}
	return shaderdesc.TypeUnknown
}

var matrixTypes = map[[2]int]shaderdesc.VariableType{
	{2, 2}: shaderdesc.TypeMat2, {2, 3}: shaderdesc.TypeMat2x3, {2, 4}: shaderdesc.TypeMat2x4,
	{3, 2}: shaderdesc.TypeMat3x2, {3, 3}: shaderdesc.TypeMat3, {3, 4}: shaderdesc.TypeMat3x4,
	{4, 2}: shaderdesc.TypeMat4x2, {4, 3}: shaderdesc.TypeMat4x3, {4, 4}: shaderdesc.TypeMat4,
}

var doubleMatrixTypes = map[[2]int]shaderdesc.VariableType{
	{2, 2}: shaderdesc.TypeDMat2, {2, 3}: shaderdesc.TypeDMat2x3, {2, 4}: shaderdesc.TypeDMat2x4,
	{3, 2}: shaderdesc.TypeDMat3x2, {3, 3}: shaderdesc.TypeDMat3, {3, 4}: shaderdesc.TypeDMat3x4,
	{4, 2}: shaderdesc.TypeDMat4x2, {4, 3}: shaderdesc.TypeDMat4x3, {4, 4}: shaderdesc.TypeDMat4,
}

func matrixVariableType(mt ir.MatrixType) shaderdesc.VariableType {
	shape := [2]int{int(mt.Columns), int(mt.Rows)}
	if mt.Scalar.Width == 8 {
		return doubleMatrixTypes[shape]
	}
	if t, ok := matrixTypes[shape]; ok {
		return t
	}
	return shaderdesc.TypeUnknown
}

var sampledImageTypes = map[ir.ImageDimension][2]shaderdesc.VariableType{
	ir.Dim1D:   {shaderdesc.TypeSampler1D, shaderdesc.TypeSampler1DArray},
	ir.Dim2D:   {shaderdesc.TypeSampler2D, shaderdesc.TypeSampler2DArray},
	ir.Dim3D:   {shaderdesc.TypeSampler3D, shaderdesc.TypeSampler3DArray},
	ir.DimCube: {shaderdesc.TypeSamplerCube, shaderdesc.TypeSamplerCubeArray},
}

var storageImageTypes = map[ir.ImageDimension][2]shaderdesc.VariableType{
	ir.Dim1D:   {shaderdesc.TypeImage1D, shaderdesc.TypeImage1DArray},
	ir.Dim2D:   {shaderdesc.TypeImage2D, shaderdesc.TypeImage2DArray},
	ir.Dim3D:   {shaderdesc.TypeImage3D, shaderdesc.TypeImage3DArray},
	ir.DimCube: {shaderdesc.TypeImageCube, shaderdesc.TypeImageCubeArray},
}

func imageVariableType(img ir.ImageType) shaderdesc.VariableType {
	if img.Multisampled && img.Dim == ir.Dim2D {
		if img.Class == ir.ImageClassStorage {
			if img.Arrayed {
				return shaderdesc.TypeImage2DMSArray
			}
			return shaderdesc.TypeImage2DMS
		}
		if img.Arrayed {
			return shaderdesc.TypeSampler2DMSArray
		}
		return shaderdesc.TypeSampler2DMS
	}
	table := sampledImageTypes
	if img.Class == ir.ImageClassStorage {
		table = storageImageTypes
	}
	row, ok := table[img.Dim]
	if !ok {
		return shaderdesc.TypeUnknown
	}
	if img.Arrayed {
		return row[1]
	}
	return row[0]
}
