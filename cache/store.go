// Package cache provides a sharded, content-addressed store for
// serialized shader descriptions. Payloads are keyed by the SHA-256
// digest of the binary form and held zstd-compressed, so the store can
// back an on-disk or over-the-wire pipeline cache without re-running
// reflection on shaders it has already seen.
package cache

import (
	"crypto/sha256"
	"sync"
	"sync/atomic"

	"github.com/klauspost/compress/zstd"

	"github.com/gogpu/shaderdesc"
)

// Digest identifies a serialized description by content.
type Digest [sha256.Size]byte

// DigestOf returns the digest of a binary description payload.
func DigestOf(payload []byte) Digest {
	return sha256.Sum256(payload)
}

const (
	shardCount = 16
	shardMask  = shardCount - 1

	// DefaultCapacity is the per-shard entry limit used by New(0).
	DefaultCapacity = 64
)

var (
	zstdEnc, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	zstdDec, _ = zstd.NewReader(nil)
)

type entry struct {
	digest     Digest
	compressed []byte
	rawSize    int
}

type shard struct {
	mu      sync.RWMutex
	entries map[Digest]*lruNode
	lru     lruList
}

// Store is a bounded, concurrency-safe description store. Entries are
// evicted per shard in least-recently-used order once a shard reaches
// its capacity.
type Store struct {
	shards   [shardCount]shard
	capacity int

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// New creates a store holding up to capacity entries per shard.
// A capacity of zero or less selects DefaultCapacity.
func New(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	s := &Store{capacity: capacity}
	for i := range s.shards {
		s.shards[i].entries = make(map[Digest]*lruNode, capacity)
	}
	return s
}

func (s *Store) shardFor(d Digest) *shard {
	return &s.shards[d[0]&shardMask]
}

// Put serializes desc, stores the compressed payload, and returns its
// digest. Storing a description that is already present refreshes its
// recency but keeps the existing payload.
func (s *Store) Put(desc shaderdesc.ShaderDescription) Digest {
	return s.PutPayload(desc.Serialize())
}

// PutPayload stores an already-serialized binary payload and returns
// its digest.
func (s *Store) PutPayload(payload []byte) Digest {
	dg := DigestOf(payload)
	sh := s.shardFor(dg)

	sh.mu.Lock()
	defer sh.mu.Unlock()

	if n, ok := sh.entries[dg]; ok {
		sh.lru.MoveToFront(n)
		return dg
	}
	if len(sh.entries) >= s.capacity {
		if old := sh.lru.RemoveOldest(); old != nil {
			delete(sh.entries, old.ent.digest)
			s.evictions.Add(1)
		}
	}
	n := sh.lru.PushFront(entry{
		digest:     dg,
		compressed: zstdEnc.EncodeAll(payload, nil),
		rawSize:    len(payload),
	})
	sh.entries[dg] = n
	return dg
}

// Get returns the description stored under dg. The second result is
// false when the digest is unknown or the stored payload no longer
// decodes.
func (s *Store) Get(dg Digest) (shaderdesc.ShaderDescription, bool) {
	payload, ok := s.Payload(dg)
	if !ok {
		return shaderdesc.ShaderDescription{}, false
	}
	desc := shaderdesc.New()
	if err := desc.Deserialize(payload); err != nil {
		return shaderdesc.ShaderDescription{}, false
	}
	return desc, true
}

// Payload returns the decompressed binary payload stored under dg.
func (s *Store) Payload(dg Digest) ([]byte, bool) {
	sh := s.shardFor(dg)

	sh.mu.RLock()
	n, ok := sh.entries[dg]
	sh.mu.RUnlock()
	if !ok {
		s.misses.Add(1)
		return nil, false
	}

	sh.mu.Lock()
	// Re-check under the write lock; the entry may have been evicted.
	if n, ok = sh.entries[dg]; !ok {
		sh.mu.Unlock()
		s.misses.Add(1)
		return nil, false
	}
	sh.lru.MoveToFront(n)
	compressed := n.ent.compressed
	rawSize := n.ent.rawSize
	sh.mu.Unlock()

	payload, err := zstdDec.DecodeAll(compressed, make([]byte, 0, rawSize))
	if err != nil {
		s.misses.Add(1)
		return nil, false
	}
	s.hits.Add(1)
	return payload, true
}

// Contains reports whether dg is stored without touching recency or
// hit counters.
func (s *Store) Contains(dg Digest) bool {
	sh := s.shardFor(dg)
	sh.mu.RLock()
	_, ok := sh.entries[dg]
	sh.mu.RUnlock()
	return ok
}

// Delete removes the entry stored under dg, if any.
func (s *Store) Delete(dg Digest) {
	sh := s.shardFor(dg)
	sh.mu.Lock()
	if n, ok := sh.entries[dg]; ok {
		sh.lru.Remove(n)
		delete(sh.entries, dg)
	}
	sh.mu.Unlock()
}

// Clear removes all entries.
func (s *Store) Clear() {
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.Lock()
		sh.entries = make(map[Digest]*lruNode, s.capacity)
		sh.lru.Clear()
		sh.mu.Unlock()
	}
}

// Len returns the number of stored entries across all shards.
func (s *Store) Len() int {
	total := 0
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.RLock()
		total += len(sh.entries)
		sh.mu.RUnlock()
	}
	return total
}

// Capacity returns the per-shard entry limit.
func (s *Store) Capacity() int { return s.capacity }

// TotalCapacity returns the entry limit across all shards.
func (s *Store) TotalCapacity() int { return s.capacity * shardCount }

// Stats is a point-in-time snapshot of store counters.
type Stats struct {
	Len            int
	Capacity       int
	TotalCapacity  int
	CompressedSize int
	RawSize        int
	Hits           uint64
	Misses         uint64
	HitRate        float64
	Evictions      uint64
}

// Stats returns current counters and sizes.
func (s *Store) Stats() Stats {
	st := Stats{
		Capacity:      s.capacity,
		TotalCapacity: s.capacity * shardCount,
		Hits:          s.hits.Load(),
		Misses:        s.misses.Load(),
		Evictions:     s.evictions.Load(),
	}
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.RLock()
		st.Len += len(sh.entries)
		for _, n := range sh.entries {
			st.CompressedSize += len(n.ent.compressed)
			st.RawSize += n.ent.rawSize
		}
		sh.mu.RUnlock()
	}
	if total := st.Hits + st.Misses; total > 0 {
		st.HitRate = float64(st.Hits) / float64(total)
	}
	return st
}

// ResetStats zeroes the hit, miss, and eviction counters.
func (s *Store) ResetStats() {
	s.hits.Store(0)
	s.misses.Store(0)
	s.evictions.Store(0)
}
