package recording

import (
	"slices"

	"github.com/gogpu/framegraph"
)

// BarrierBatch is one PipelineBarrier call: every barrier in it is
// recorded at the same point in the command stream.
type BarrierBatch struct {
	Images  []framegraph.ImageBarrier
	Buffers []framegraph.BufferBarrier
}

// Len returns the number of barriers in the batch.
func (b *BarrierBatch) Len() int {
	return len(b.Images) + len(b.Buffers)
}

// ResourcePool stores the barrier batches referenced by recording commands.
// Each Add operation copies its input so that a recording never aliases
// caller-owned slices.
//
// ResourcePool is not safe for concurrent use. If concurrent access is needed,
// external synchronization must be provided.
type ResourcePool struct {
	batches  []BarrierBatch
	barriers int
}

// NewResourcePool creates an empty resource pool with pre-allocated capacity.
func NewResourcePool() *ResourcePool {
	return &ResourcePool{
		batches: make([]BarrierBatch, 0, 16),
	}
}

// AddBarriers adds a batch to the pool and returns its reference.
func (p *ResourcePool) AddBarriers(images []framegraph.ImageBarrier, buffers []framegraph.BufferBarrier) BarrierRef {
	p.batches = append(p.batches, BarrierBatch{
		Images:  slices.Clone(images),
		Buffers: slices.Clone(buffers),
	})
	p.barriers += len(images) + len(buffers)
	// #nosec G115 -- pool size is bounded by available memory, well under uint32 max
	return BarrierRef(uint32(len(p.batches) - 1))
}

// GetBarriers returns the batch for the given reference.
// Returns nil if the reference is invalid.
func (p *ResourcePool) GetBarriers(ref BarrierRef) *BarrierBatch {
	if int(ref) >= len(p.batches) {
		return nil
	}
	return &p.batches[ref]
}

// BatchCount returns the number of batches in the pool.
func (p *ResourcePool) BatchCount() int {
	return len(p.batches)
}

// BarrierCount returns the number of barriers across all batches.
func (p *ResourcePool) BarrierCount() int {
	return p.barriers
}

// Clear removes all resources from the pool.
// This does not release the underlying memory; use NewResourcePool for that.
func (p *ResourcePool) Clear() {
	p.batches = p.batches[:0]
	p.barriers = 0
}

// Clone creates a deep copy of the resource pool.
func (p *ResourcePool) Clone() *ResourcePool {
	clone := &ResourcePool{
		batches:  make([]BarrierBatch, len(p.batches)),
		barriers: p.barriers,
	}
	for i, b := range p.batches {
		clone.batches[i] = BarrierBatch{
			Images:  slices.Clone(b.Images),
			Buffers: slices.Clone(b.Buffers),
		}
	}
	return clone
}
