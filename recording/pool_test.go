package recording

import (
	"testing"

	"github.com/gogpu/framegraph"
)

func TestNewResourcePool(t *testing.T) {
	pool := NewResourcePool()
	if pool == nil {
		t.Fatal("NewResourcePool returned nil")
	}
	if pool.BatchCount() != 0 {
		t.Errorf("BatchCount() = %d, want 0", pool.BatchCount())
	}
	if pool.BarrierCount() != 0 {
		t.Errorf("BarrierCount() = %d, want 0", pool.BarrierCount())
	}
}

func TestResourcePool_AddBarriers(t *testing.T) {
	pool := NewResourcePool()
	images := []framegraph.ImageBarrier{
		{Alias: framegraph.ImageGeometryColor, NewLayout: framegraph.LayoutShaderReadOnly},
	}
	buffers := []framegraph.BufferBarrier{
		{Alias: framegraph.BufferIndirectCommand},
		{Alias: framegraph.BufferVisibility},
	}

	first := pool.AddBarriers(images, nil)
	second := pool.AddBarriers(nil, buffers)

	if first != 0 || second != 1 {
		t.Errorf("refs = %d, %d, want 0, 1", first, second)
	}
	if pool.BatchCount() != 2 {
		t.Errorf("BatchCount() = %d, want 2", pool.BatchCount())
	}
	if pool.BarrierCount() != 3 {
		t.Errorf("BarrierCount() = %d, want 3", pool.BarrierCount())
	}

	got := pool.GetBarriers(second)
	if got == nil || got.Len() != 2 || got.Buffers[1].Alias != framegraph.BufferVisibility {
		t.Errorf("GetBarriers(%d) = %+v", second, got)
	}
}

func TestResourcePool_AddBarriersCopies(t *testing.T) {
	pool := NewResourcePool()
	images := []framegraph.ImageBarrier{{Alias: framegraph.ImageDepth}}
	ref := pool.AddBarriers(images, nil)

	images[0].Alias = framegraph.ImageSwapchain

	if got := pool.GetBarriers(ref).Images[0].Alias; got != framegraph.ImageDepth {
		t.Errorf("pooled alias = %v, want Depth (pool must not alias the caller's slice)", got)
	}
}

func TestResourcePool_GetBarriersInvalid(t *testing.T) {
	pool := NewResourcePool()
	pool.AddBarriers([]framegraph.ImageBarrier{{}}, nil)

	tests := []struct {
		name string
		ref  BarrierRef
	}{
		{"out of range", BarrierRef(5)},
		{"invalid sentinel", BarrierRef(InvalidRef)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pool.GetBarriers(tt.ref); got != nil {
				t.Errorf("GetBarriers(%d) = %+v, want nil", tt.ref, got)
			}
		})
	}
}

func TestResourcePool_Clear(t *testing.T) {
	pool := NewResourcePool()
	pool.AddBarriers([]framegraph.ImageBarrier{{}}, []framegraph.BufferBarrier{{}})
	pool.Clear()

	if pool.BatchCount() != 0 || pool.BarrierCount() != 0 {
		t.Errorf("after Clear: %d batches, %d barriers", pool.BatchCount(), pool.BarrierCount())
	}
}

func TestResourcePool_Clone(t *testing.T) {
	pool := NewResourcePool()
	ref := pool.AddBarriers(nil, []framegraph.BufferBarrier{{Alias: framegraph.BufferLight, Size: 64}})

	clone := pool.Clone()
	if clone.BatchCount() != 1 || clone.BarrierCount() != 1 {
		t.Fatalf("clone: %d batches, %d barriers", clone.BatchCount(), clone.BarrierCount())
	}

	clone.GetBarriers(ref).Buffers[0].Size = 128
	if got := pool.GetBarriers(ref).Buffers[0].Size; got != 64 {
		t.Errorf("original Size = %d after clone mutation, want 64", got)
	}

	pool.AddBarriers(nil, nil)
	if clone.BatchCount() != 1 {
		t.Error("clone shares batches with the original")
	}
}
