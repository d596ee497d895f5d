package renderer

import (
	"log"

	vk "github.com/goki/vulkan"
	"github.com/pkg/errors"
	com "vehicle_viewer/common"
	"vehicle_viewer/model"
)

// GpuMesh is a model.Mesh with its device resources: immutable vertex and index buffers plus a uniform buffer and a
// descriptor set for every frame in flight.
type GpuMesh struct {
	*model.Mesh

	device    *com.Device
	technique *Technique

	vertexBuffer   *com.Buffer
	indexBuffer    *com.Buffer
	uniformBuffers []*com.Buffer
	descriptors    *DescriptorProvisioner

	// Material maps in binding order, nil slots are bound to the matching fallback
	textures  [TEXTURE_SLOTS]*GpuTexture
	fallback  [TEXTURE_SLOTS]*GpuTexture
	bindings  *model.FrameBindings
	boundPass uint32
}

// NewGpuMesh uploads m. The textures stay owned by the caller, fallback provides the map of every slot that has not
// been set. See defaultMaps.
func NewGpuMesh(c *Core, t *Technique, m *model.Mesh, fallback [TEXTURE_SLOTS]*GpuTexture) (*GpuMesh, error) {
	if len(m.Vertices) == 0 || len(m.Indices) == 0 {
		return nil, errors.Errorf("mesh %s has no geometry", m.Name)
	}
	gm := &GpuMesh{
		Mesh:      m,
		device:    c.device,
		technique: t,
		fallback:  fallback,
		bindings:  model.NewFrameBindings(c.FramesInFlight()),
		boundPass: m.PassIdx(),
	}
	gm.vertexBuffer = com.CreateDeviceLocalBuffer(c.device, c.commandPool, m.GetVBufferBytes(),
		vk.BufferUsageFlags(vk.BufferUsageVertexBufferBit))
	gm.indexBuffer = com.CreateDeviceLocalBuffer(c.device, c.commandPool, m.GetIdxBufferBytes(),
		vk.BufferUsageFlags(vk.BufferUsageIndexBufferBit))
	log.Printf(
		"Created buffers for \"%s\" (vertices: %d Byte, indices: %d Byte)",
		m.Name, m.GetVBufferSize(), m.GetIdxBufferSize(),
	)

	gm.uniformBuffers = make([]*com.Buffer, c.FramesInFlight())
	for i := range gm.uniformBuffers {
		ubo := com.CreateBuffer(
			c.device,
			model.SizeOfMeshUniforms(),
			vk.BufferUsageFlags(vk.BufferUsageUniformBufferBit),
			vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit),
		)
		ubo.MapPersistent(c.device)
		gm.uniformBuffers[i] = ubo
	}
	gm.descriptors = NewDescriptorProvisioner(c.device.D, t.SetLayout, c.FramesInFlight())
	return gm, nil
}

func (m *GpuMesh) SetDiffuseMap(t *GpuTexture) {
	m.setTexture(BINDING_DIFFUSE, t)
}

func (m *GpuMesh) SetNormalMap(t *GpuTexture) {
	m.setTexture(BINDING_NORMAL, t)
}

func (m *GpuMesh) SetSpecularMap(t *GpuTexture) {
	m.setTexture(BINDING_SPECULAR, t)
}

func (m *GpuMesh) SetGlossinessMap(t *GpuTexture) {
	m.setTexture(BINDING_GLOSSINESS, t)
}

// setTexture keeps the previous texture when t is nil.
func (m *GpuMesh) setTexture(binding uint32, t *GpuTexture) {
	if t == nil {
		return
	}
	m.textures[binding-BINDING_DIFFUSE] = t
	m.bindings.Invalidate()
}

// defaultMaps binds white to every slot except the normal map, which gets a flat tangent space normal.
func defaultMaps(white, flatNormal *GpuTexture) [TEXTURE_SLOTS]*GpuTexture {
	var maps [TEXTURE_SLOTS]*GpuTexture
	for i := range maps {
		maps[i] = white
	}
	maps[BINDING_NORMAL-BINDING_DIFFUSE] = flatNormal
	return maps
}

func (m *GpuMesh) boundTextures() [TEXTURE_SLOTS]*GpuTexture {
	bound := m.textures
	for i, t := range bound {
		if t == nil {
			bound[i] = m.fallback[i]
		}
	}
	return bound
}

func (m *GpuMesh) views() [TEXTURE_SLOTS]vk.ImageView {
	var views [TEXTURE_SLOTS]vk.ImageView
	for i, t := range m.boundTextures() {
		views[i] = t.View()
	}
	return views
}

// Render records the draw of the mesh into cmd for frame slot. slot's fence must have been waited on, its uniform
// buffer and descriptor set are rewritten. A pass index the technique does not have draws nothing.
func (m *GpuMesh) Render(cmd vk.CommandBuffer, slot int) {
	pass, ok := m.technique.Pass(m.PassIdx())
	if !ok {
		return
	}
	// The sampler is part of the descriptor set, a new pass needs every set rewritten
	if m.PassIdx() != m.boundPass {
		m.boundPass = m.PassIdx()
		m.bindings.Invalidate()
	}

	vk.CmdBindPipeline(cmd, vk.PipelineBindPointGraphics, pass.Pipeline)
	vk.CmdBindVertexBuffers(cmd, 0, 1, []vk.Buffer{m.vertexBuffer.Handle}, []vk.DeviceSize{0})
	vk.CmdBindIndexBuffer(cmd, m.indexBuffer.Handle, 0, vk.IndexTypeUint32)

	uniforms := m.Uniforms()
	m.uniformBuffers[slot].Write(uniforms.Bytes())
	if m.bindings.Consume(slot) {
		m.descriptors.Write(slot, m.uniformBuffers[slot], pass.Sampler, m.views())
	}
	vk.CmdBindDescriptorSets(cmd, vk.PipelineBindPointGraphics, m.technique.PipelineLayout, 0, 1,
		[]vk.DescriptorSet{m.descriptors.Set(slot)}, 0, nil)

	vk.CmdDrawIndexed(cmd, m.IndexCount(), 1, 0, 0, 0)
}

// Destroy releases the mesh's buffers and descriptors. Textures are not touched.
func (m *GpuMesh) Destroy() {
	m.descriptors.Destroy()
	for _, ubo := range m.uniformBuffers {
		com.DestroyBuffer(m.device, ubo)
	}
	m.uniformBuffers = nil
	com.DestroyBuffer(m.device, m.vertexBuffer)
	com.DestroyBuffer(m.device, m.indexBuffer)
}
