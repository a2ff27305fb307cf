// Package vulkan describes the quad vertex format to a Vulkan graphics
// pipeline. Pipeline and swapchain creation live with the host renderer.
package vulkan

import (
	"unsafe"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/quadrant/engine/geometry"
)

/**
 * @brief Shader input locations of the quad vertex attributes.
 */
const (
	LocationPosition uint32 = iota
	LocationUV
	LocationColor
	LocationTextureIndex
)

/**
 * @brief Size of a single VertexData as uploaded to the vertex buffer.
 */
const VertexStride = uint32(unsafe.Sizeof(geometry.VertexData{}))

/**
 * @brief Describes the per-vertex binding for quad vertex data.
 * @param binding The binding index the vertex buffer is bound to.
 */
func VertexBindingDescription(binding uint32) vk.VertexInputBindingDescription {
	return vk.VertexInputBindingDescription{
		Binding:   binding,
		Stride:    VertexStride,
		InputRate: vk.VertexInputRateVertex, // Move to next data entry for each vertex.
	}
}

/**
 * @brief Describes every attribute of VertexData, in field order.
 * @param binding The binding index the vertex buffer is bound to.
 */
func VertexAttributeDescriptions(binding uint32) []vk.VertexInputAttributeDescription {
	var v geometry.VertexData
	return []vk.VertexInputAttributeDescription{
		{
			Binding:  binding,
			Location: LocationPosition,
			Format:   vk.FormatR32g32b32Sfloat,
			Offset:   uint32(unsafe.Offsetof(v.Position)),
		},
		{
			Binding:  binding,
			Location: LocationUV,
			Format:   vk.FormatR32g32Sfloat,
			Offset:   uint32(unsafe.Offsetof(v.UV)),
		},
		{
			Binding:  binding,
			Location: LocationColor,
			Format:   vk.FormatR32g32b32a32Sfloat,
			Offset:   uint32(unsafe.Offsetof(v.Color)),
		},
		{
			Binding:  binding,
			Location: LocationTextureIndex,
			Format:   vk.FormatR32Uint,
			Offset:   uint32(unsafe.Offsetof(v.TextureIndex)),
		},
	}
}

/**
 * @brief Builds the vertex input state for a pipeline drawing quads from a
 * single interleaved buffer.
 */
func VertexInputState(binding uint32) vk.PipelineVertexInputStateCreateInfo {
	attributes := VertexAttributeDescriptions(binding)
	return vk.PipelineVertexInputStateCreateInfo{
		SType:                           vk.StructureTypePipelineVertexInputStateCreateInfo,
		VertexBindingDescriptionCount:   1,
		PVertexBindingDescriptions:      []vk.VertexInputBindingDescription{VertexBindingDescription(binding)},
		VertexAttributeDescriptionCount: uint32(len(attributes)),
		PVertexAttributeDescriptions:    attributes,
	}
}

/**
 * @brief Quads are drawn as indexed triangle lists.
 */
func InputAssemblyState() vk.PipelineInputAssemblyStateCreateInfo {
	return vk.PipelineInputAssemblyStateCreateInfo{
		SType:                  vk.StructureTypePipelineInputAssemblyStateCreateInfo,
		Topology:               vk.PrimitiveTopologyTriangleList,
		PrimitiveRestartEnable: vk.False,
	}
}

/**
 * @brief Index type matching the 16-bit quad indices.
 */
const IndexType = vk.IndexTypeUint16
