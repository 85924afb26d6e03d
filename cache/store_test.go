package cache

import (
	"fmt"
	"reflect"
	"sync"
	"testing"

	"github.com/gogpu/shaderdesc"
)

func sampleDescription(location int) shaderdesc.ShaderDescription {
	desc := shaderdesc.New()
	in := shaderdesc.NewInOutVariable("position", shaderdesc.TypeVec4)
	in.Location = location
	desc.AddInputVariable(in)

	blk := shaderdesc.NewUniformBlock("buf", "ubuf")
	blk.Size = 68
	blk.Binding = 0
	blk.DescriptorSet = 0
	mvp := shaderdesc.BlockVariable{Name: "mvp", Type: shaderdesc.TypeMat4, Offset: 0, Size: 64, MatrixStride: 16}
	opacity := shaderdesc.BlockVariable{Name: "opacity", Type: shaderdesc.TypeFloat, Offset: 64, Size: 4}
	blk.Members = append(blk.Members, mvp, opacity)
	desc.AddUniformBlock(blk)
	return desc
}

func TestPutGetRoundTrip(t *testing.T) {
	s := New(0)
	desc := sampleDescription(0)

	dg := s.Put(desc)
	got, ok := s.Get(dg)
	if !ok {
		t.Fatalf("Get(%x) missed after Put", dg[:4])
	}
	if !reflect.DeepEqual(got.InputVariables(), desc.InputVariables()) {
		t.Errorf("inputs = %+v, want %+v", got.InputVariables(), desc.InputVariables())
	}
	if !reflect.DeepEqual(got.UniformBlocks(), desc.UniformBlocks()) {
		t.Errorf("uniform blocks = %+v, want %+v", got.UniformBlocks(), desc.UniformBlocks())
	}
}

func TestDigestIsContentAddressed(t *testing.T) {
	s := New(0)
	a := s.Put(sampleDescription(0))
	b := s.Put(sampleDescription(0))
	if a != b {
		t.Errorf("identical descriptions produced digests %x and %x", a[:4], b[:4])
	}
	c := s.Put(sampleDescription(1))
	if a == c {
		t.Error("distinct descriptions produced the same digest")
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

func TestGetMiss(t *testing.T) {
	s := New(0)
	var dg Digest
	dg[0] = 0xab
	if _, ok := s.Get(dg); ok {
		t.Error("Get on empty store reported a hit")
	}
	st := s.Stats()
	if st.Misses != 1 || st.Hits != 0 {
		t.Errorf("stats = %d hits, %d misses, want 0/1", st.Hits, st.Misses)
	}
}

func TestPayloadMatchesSerialize(t *testing.T) {
	s := New(0)
	desc := sampleDescription(3)
	dg := s.Put(desc)

	payload, ok := s.Payload(dg)
	if !ok {
		t.Fatal("Payload missed after Put")
	}
	if DigestOf(payload) != dg {
		t.Error("stored payload does not hash to its digest")
	}
}

func TestEviction(t *testing.T) {
	s := New(2)
	var digests []Digest
	for i := 0; i < 3*shardCount; i++ {
		desc := sampleDescription(i)
		digests = append(digests, s.Put(desc))
	}
	if got, want := s.Len(), 2*shardCount; got > want {
		t.Errorf("Len() = %d, want at most %d", got, want)
	}
	if s.Stats().Evictions == 0 {
		t.Error("no evictions recorded after overfilling")
	}
	// The most recent entry survives its shard's evictions.
	last := digests[len(digests)-1]
	if !s.Contains(last) {
		t.Error("most recent entry was evicted")
	}
}

func TestDeleteAndClear(t *testing.T) {
	s := New(0)
	dg := s.Put(sampleDescription(0))
	s.Put(sampleDescription(1))

	s.Delete(dg)
	if s.Contains(dg) {
		t.Error("entry still present after Delete")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d after Delete, want 1", s.Len())
	}

	s.Clear()
	if s.Len() != 0 {
		t.Errorf("Len() = %d after Clear, want 0", s.Len())
	}
}

func TestStatsSizes(t *testing.T) {
	s := New(0)
	desc := sampleDescription(0)
	s.Put(desc)

	st := s.Stats()
	if st.Len != 1 {
		t.Errorf("Stats().Len = %d, want 1", st.Len)
	}
	if st.RawSize != len(desc.Serialize()) {
		t.Errorf("Stats().RawSize = %d, want %d", st.RawSize, len(desc.Serialize()))
	}
	if st.CompressedSize == 0 {
		t.Error("Stats().CompressedSize = 0 for a non-empty store")
	}
	if st.TotalCapacity != DefaultCapacity*shardCount {
		t.Errorf("Stats().TotalCapacity = %d, want %d", st.TotalCapacity, DefaultCapacity*shardCount)
	}
}

func TestConcurrentAccess(t *testing.T) {
	s := New(8)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				desc := sampleDescription(g*100 + i%10)
				dg := s.Put(desc)
				if _, ok := s.Get(dg); !ok {
					// Eviction between Put and Get is legal under
					// contention; only repeated total loss would be a bug.
					continue
				}
			}
		}(g)
	}
	wg.Wait()
	if s.Len() == 0 {
		t.Error("store empty after concurrent puts")
	}
}

func TestDigestOfStable(t *testing.T) {
	payload := []byte("payload")
	if DigestOf(payload) != DigestOf([]byte("payload")) {
		t.Error("DigestOf is not deterministic")
	}
	want := fmt.Sprintf("%x", DigestOf(payload))
	if len(want) != 64 {
		t.Errorf("digest hex length = %d, want 64", len(want))
	}
}
