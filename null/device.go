// Package null implements a device backend that performs no GPU work.
// Every create operation succeeds and every command is discarded, but
// pipeline creation still runs the full reflection path: shader
// descriptions are translated to bind group layouts exactly as a real
// backend would. That makes the package useful for tests, headless
// tools, and profiling the non-GPU side of a frame.
package null

import (
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/shaderdesc"
	"github.com/gogpu/shaderdesc/bind"
)

// Device is a no-op device. The zero value is ready to use.
type Device struct {
	buffers   atomic.Int64
	textures  atomic.Int64
	pipelines atomic.Int64
}

// NewDevice returns a new no-op device.
func NewDevice() *Device { return &Device{} }

// Buffer is a handle to a buffer that owns no memory.
type Buffer struct {
	Size uint64
}

// CreateBuffer allocates nothing and always succeeds.
func (d *Device) CreateBuffer(size uint64) *Buffer {
	d.buffers.Add(1)
	return &Buffer{Size: size}
}

// Texture is a handle to a texture that owns no memory.
type Texture struct {
	Format gputypes.TextureFormat
	Width  uint32
	Height uint32
	Usage  gputypes.TextureUsage
}

// CreateTexture allocates nothing and always succeeds.
func (d *Device) CreateTexture(format gputypes.TextureFormat, width, height uint32, usage gputypes.TextureUsage) *Texture {
	d.textures.Add(1)
	return &Texture{Format: format, Width: width, Height: height, Usage: usage}
}

// ShaderStage pairs a shader description with the pipeline stage it
// reflects.
type ShaderStage struct {
	Stage gputypes.ShaderStage
	Desc  shaderdesc.ShaderDescription
}

// Pipeline holds the bind group layouts derived from a pipeline's
// shader stages. The device compiles and executes nothing.
type Pipeline struct {
	layouts map[int][]gputypes.BindGroupLayoutEntry
}

// GroupLayout returns the layout entries for one descriptor set,
// ordered by binding number.
func (p *Pipeline) GroupLayout(set int) []gputypes.BindGroupLayoutEntry {
	return p.layouts[set]
}

// Groups returns the number of descriptor sets the pipeline uses.
func (p *Pipeline) Groups() int { return len(p.layouts) }

// CreatePipeline derives bind group layouts from the given stages and
// merges them. A resource visible from several stages gets a single
// entry with the combined stage visibility. Stages that disagree about
// the resource kind at a binding make the pipeline invalid.
func (d *Device) CreatePipeline(stages ...ShaderStage) (*Pipeline, error) {
	merged := make(map[int]map[uint32]gputypes.BindGroupLayoutEntry)
	for _, st := range stages {
		if !st.Desc.IsValid() {
			return nil, fmt.Errorf("null: stage %v has no shader description", st.Stage)
		}
		for set, entries := range bind.GroupLayouts(st.Desc, st.Stage) {
			bySlot := merged[set]
			if bySlot == nil {
				bySlot = make(map[uint32]gputypes.BindGroupLayoutEntry)
				merged[set] = bySlot
			}
			for _, e := range entries {
				prev, ok := bySlot[e.Binding]
				if !ok {
					bySlot[e.Binding] = e
					continue
				}
				if !sameKind(prev, e) {
					return nil, fmt.Errorf("null: set %d binding %d bound as different resource kinds", set, e.Binding)
				}
				prev.Visibility |= e.Visibility
				bySlot[e.Binding] = prev
			}
		}
	}

	p := &Pipeline{layouts: make(map[int][]gputypes.BindGroupLayoutEntry, len(merged))}
	for set, bySlot := range merged {
		entries := make([]gputypes.BindGroupLayoutEntry, 0, len(bySlot))
		for _, e := range bySlot {
			entries = append(entries, e)
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].Binding < entries[j].Binding })
		p.layouts[set] = entries
	}
	d.pipelines.Add(1)
	return p, nil
}

func sameKind(a, b gputypes.BindGroupLayoutEntry) bool {
	switch {
	case a.Buffer != nil:
		return b.Buffer != nil && a.Buffer.Type == b.Buffer.Type
	case a.Texture != nil:
		return b.Texture != nil
	case a.StorageTexture != nil:
		return b.StorageTexture != nil
	}
	return false
}

// Stats reports how many objects the device has handed out.
type Stats struct {
	Buffers   int64
	Textures  int64
	Pipelines int64
}

// Stats returns creation counters.
func (d *Device) Stats() Stats {
	return Stats{
		Buffers:   d.buffers.Load(),
		Textures:  d.textures.Load(),
		Pipelines: d.pipelines.Load(),
	}
}
