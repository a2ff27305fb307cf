package vulkan

import (
	"testing"

	vk "github.com/goki/vulkan"
)

func TestVertexLayout(t *testing.T) {
	if VertexStride != 40 {
		t.Fatalf("stride = %d, want 40", VertexStride)
	}

	want := []struct {
		location uint32
		format   vk.Format
		offset   uint32
	}{
		{LocationPosition, vk.FormatR32g32b32Sfloat, 0},
		{LocationUV, vk.FormatR32g32Sfloat, 12},
		{LocationColor, vk.FormatR32g32b32a32Sfloat, 20},
		{LocationTextureIndex, vk.FormatR32Uint, 36},
	}
	got := VertexAttributeDescriptions(2)
	if len(got) != len(want) {
		t.Fatalf("got %d attributes", len(got))
	}
	for i, w := range want {
		a := got[i]
		if a.Binding != 2 || a.Location != w.location || a.Format != w.format || a.Offset != w.offset {
			t.Errorf("attribute %d = %+v, want location %d format %v offset %d", i, a, w.location, w.format, w.offset)
		}
	}

	b := VertexBindingDescription(2)
	if b.Binding != 2 || b.Stride != VertexStride || b.InputRate != vk.VertexInputRateVertex {
		t.Errorf("binding = %+v", b)
	}

	state := VertexInputState(0)
	if state.VertexAttributeDescriptionCount != 4 || len(state.PVertexBindingDescriptions) != 1 {
		t.Errorf("vertex input state = %+v", state)
	}
	if InputAssemblyState().Topology != vk.PrimitiveTopologyTriangleList {
		t.Error("quads must be drawn as triangle lists")
	}
}
