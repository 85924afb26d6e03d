package shaderdesc

import (
	"fmt"
	"strings"
)

// String formats the variable compactly for logs and debugging, showing
// only the decorations that are set.
func (v InOutVariable) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "InOutVariable(%s %s", TypeName(v.Type), v.Name)
	if v.Location >= 0 {
		fmt.Fprintf(&b, " location=%d", v.Location)
	}
	if v.Binding >= 0 {
		fmt.Fprintf(&b, " binding=%d", v.Binding)
	}
	if v.DescriptorSet >= 0 {
		fmt.Fprintf(&b, " set=%d", v.DescriptorSet)
	}
	if v.ImageFormat != ImageFormatUnknown {
		fmt.Fprintf(&b, " imageFormat=%s", ImageFormatName(v.ImageFormat))
	}
	if v.ImageFlags != 0 {
		fmt.Fprintf(&b, " imageFlags=0x%x", uint32(v.ImageFlags))
	}
	b.WriteByte(')')
	return b.String()
}

// String formats the block member compactly for logs and debugging.
func (v BlockVariable) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "BlockVariable(%s %s offset=%d size=%d", TypeName(v.Type), v.Name, v.Offset, v.Size)
	if len(v.ArrayDims) > 0 {
		fmt.Fprintf(&b, " array=%v", v.ArrayDims)
	}
	if v.ArrayStride != 0 {
		fmt.Fprintf(&b, " arrayStride=%d", v.ArrayStride)
	}
	if v.MatrixStride != 0 {
		fmt.Fprintf(&b, " matrixStride=%d", v.MatrixStride)
	}
	if v.MatrixIsRowMajor {
		b.WriteString(" [rowmaj]")
	}
	if len(v.StructMembers) > 0 {
		fmt.Fprintf(&b, " structMembers=%v", v.StructMembers)
	}
	b.WriteByte(')')
	return b.String()
}

func (b UniformBlock) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "UniformBlock(%s %s size=%d", b.BlockName, b.StructName, b.Size)
	if b.Binding >= 0 {
		fmt.Fprintf(&sb, " binding=%d", b.Binding)
	}
	if b.DescriptorSet >= 0 {
		fmt.Fprintf(&sb, " set=%d", b.DescriptorSet)
	}
	fmt.Fprintf(&sb, " %v)", b.Members)
	return sb.String()
}

func (b PushConstantBlock) String() string {
	return fmt.Sprintf("PushConstantBlock(%s size=%d %v)", b.Name, b.Size, b.Members)
}

func (b StorageBlock) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "StorageBlock(%s %s knownSize=%d", b.BlockName, b.InstanceName, b.KnownSize)
	if b.Binding >= 0 {
		fmt.Fprintf(&sb, " binding=%d", b.Binding)
	}
	if b.DescriptorSet >= 0 {
		fmt.Fprintf(&sb, " set=%d", b.DescriptorSet)
	}
	fmt.Fprintf(&sb, " %v)", b.Members)
	return sb.String()
}

// String formats the whole description. An invalid description renders
// as "ShaderDescription(null)".
func (sd ShaderDescription) String() string {
	if !sd.IsValid() {
		return "ShaderDescription(null)"
	}
	d := sd.d
	return fmt.Sprintf("ShaderDescription(inputs %v outputs %v uniformBlocks %v pcBlocks %v storageBlocks %v combinedSamplers %v images %v)",
		d.inputs, d.outputs, d.uniformBlocks, d.pushConstantBlocks, d.storageBlocks, d.combinedImageSamplers, d.storageImages)
}
