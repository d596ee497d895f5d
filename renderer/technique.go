package renderer

import (
	"log"

	vk "github.com/goki/vulkan"
	com "vehicle_viewer/common"
	"vehicle_viewer/model"
)

// Pass indices of the mesh technique. The first three only differ in the sampler used for the material maps.
const (
	PASS_POINT uint32 = iota
	PASS_LINEAR
	PASS_ANISOTROPIC
	PASS_FIRE
)

// Descriptor bindings shared by all passes, see shaders/mesh.frag.
const (
	BINDING_UNIFORMS uint32 = iota
	BINDING_DIFFUSE
	BINDING_NORMAL
	BINDING_SPECULAR
	BINDING_GLOSSINESS

	TEXTURE_SLOTS = 4
)

// passDesc is the fixed function state that makes one pass differ from another.
type passDesc struct {
	name       string
	fragShader string
	filter     vk.Filter
	anisotropy bool
	blend      bool
	depthWrite bool
	cullMode   vk.CullModeFlagBits
}

func describePass(i uint32) (passDesc, bool) {
	opaque := passDesc{
		fragShader: MESH_FRAG_SHADER,
		depthWrite: true,
		cullMode:   vk.CullModeBackBit,
	}
	switch i {
	case PASS_POINT:
		opaque.name = "Point"
		opaque.filter = vk.FilterNearest
		return opaque, true
	case PASS_LINEAR:
		opaque.name = "Linear"
		opaque.filter = vk.FilterLinear
		return opaque, true
	case PASS_ANISOTROPIC:
		opaque.name = "Anisotropic"
		opaque.filter = vk.FilterLinear
		opaque.anisotropy = true
		return opaque, true
	case PASS_FIRE:
		return passDesc{
			name:       "Fire",
			fragShader: FIRE_FRAG_SHADER,
			filter:     vk.FilterLinear,
			blend:      true,
			depthWrite: false,
			cullMode:   vk.CullModeNone,
		}, true
	}
	return passDesc{}, false
}

// Pass is a ready to bind pipeline together with the sampler its material maps are read with.
type Pass struct {
	Name     string
	Pipeline vk.Pipeline
	Sampler  vk.Sampler
}

// Technique bundles the descriptor set layout, the pipeline layout and all passes a mesh can be drawn with.
type Technique struct {
	device vk.Device

	SetLayout      vk.DescriptorSetLayout
	PipelineLayout vk.PipelineLayout
	passes         []Pass
}

func NewTechnique(c *Core) *Technique {
	t := &Technique{device: c.device.D}
	t.createDescriptorSetLayout()
	t.createPipelineLayout()
	t.createPasses(c)
	return t
}

func (t *Technique) PassCount() uint32 {
	return uint32(len(t.passes))
}

// Pass returns pass i. ok is false if there is no such pass.
func (t *Technique) Pass(i uint32) (Pass, bool) {
	if i >= t.PassCount() {
		return Pass{}, false
	}
	return t.passes[i], true
}

func (t *Technique) Destroy() {
	for _, p := range t.passes {
		vk.DestroyPipeline(t.device, p.Pipeline, nil)
		vk.DestroySampler(t.device, p.Sampler, nil)
	}
	t.passes = nil
	vk.DestroyPipelineLayout(t.device, t.PipelineLayout, nil)
	vk.DestroyDescriptorSetLayout(t.device, t.SetLayout, nil)
}

func (t *Technique) createDescriptorSetLayout() {
	bindings := []vk.DescriptorSetLayoutBinding{
		{
			Binding:            BINDING_UNIFORMS,
			DescriptorType:     vk.DescriptorTypeUniformBuffer,
			DescriptorCount:    1,
			StageFlags:         vk.ShaderStageFlags(vk.ShaderStageVertexBit | vk.ShaderStageFragmentBit),
			PImmutableSamplers: nil,
		},
	}
	for b := BINDING_DIFFUSE; b <= BINDING_GLOSSINESS; b++ {
		bindings = append(bindings, vk.DescriptorSetLayoutBinding{
			Binding:            b,
			DescriptorType:     vk.DescriptorTypeCombinedImageSampler,
			DescriptorCount:    1,
			StageFlags:         vk.ShaderStageFlags(vk.ShaderStageFragmentBit),
			PImmutableSamplers: nil,
		})
	}
	layoutInfo := vk.DescriptorSetLayoutCreateInfo{
		SType:        vk.StructureTypeDescriptorSetLayoutCreateInfo,
		PNext:        nil,
		Flags:        0,
		BindingCount: uint32(len(bindings)),
		PBindings:    bindings,
	}
	dsl, err := com.VkCreateDescriptorSetLayout(t.device, &layoutInfo, nil)
	if err != nil {
		log.Panicf("Failed to create descriptor set layout: %s", err)
	}
	t.SetLayout = dsl
}

func (t *Technique) createPipelineLayout() {
	pipelineLayoutInfo := vk.PipelineLayoutCreateInfo{
		SType:                  vk.StructureTypePipelineLayoutCreateInfo,
		PNext:                  nil,
		Flags:                  0,
		SetLayoutCount:         1,
		PSetLayouts:            []vk.DescriptorSetLayout{t.SetLayout},
		PushConstantRangeCount: 0,
		PPushConstantRanges:    nil,
	}
	layout, err := com.VkCreatePipelineLayout(t.device, &pipelineLayoutInfo, nil)
	if err != nil {
		log.Panicf("Failed to create pipeline layout: %s", err)
	}
	t.PipelineLayout = layout
}

func (t *Technique) createPasses(c *Core) {
	// Shader module deletion can be done right after pipeline creation
	vertShaderMod, vertStageInfo := LoadVert(t.device, c.cfg.ShaderPath(MESH_VERT_SHADER))
	defer DeleteShaderMod(t.device, vertShaderMod)

	fragStages := map[string]vk.PipelineShaderStageCreateInfo{}
	for i := PASS_POINT; i <= PASS_FIRE; i++ {
		desc, _ := describePass(i)
		if _, ok := fragStages[desc.fragShader]; ok {
			continue
		}
		fragShaderMod, fragStageInfo := LoadFrag(t.device, c.cfg.ShaderPath(desc.fragShader))
		defer DeleteShaderMod(t.device, fragShaderMod)
		fragStages[desc.fragShader] = fragStageInfo
	}

	maxAnisotropy := c.device.MaxSamplerAnisotropy()
	for i := PASS_POINT; i <= PASS_FIRE; i++ {
		desc, _ := describePass(i)
		stages := []vk.PipelineShaderStageCreateInfo{vertStageInfo, fragStages[desc.fragShader]}
		pipeline := t.createPipeline(c.renderPass, stages, desc)

		anisotropy := float32(1)
		if desc.anisotropy {
			anisotropy = maxAnisotropy
		}
		sampler, err := com.VKCreateSampler(t.device, desc.filter, anisotropy)
		if err != nil {
			log.Panicf("Failed to create %s sampler: %s", desc.name, err)
		}
		t.passes = append(t.passes, Pass{Name: desc.name, Pipeline: pipeline, Sampler: sampler})
	}
	log.Printf("Successfully created %d technique passes", len(t.passes))
}

func (t *Technique) createPipeline(renderPass vk.RenderPass, shaderStages []vk.PipelineShaderStageCreateInfo, desc passDesc) vk.Pipeline {
	// Viewport and scissor follow the swap chain, so they are set per frame
	dynamicStates := []vk.DynamicState{
		vk.DynamicStateViewport,
		vk.DynamicStateScissor,
	}
	dynamicStateCreateInfo := vk.PipelineDynamicStateCreateInfo{
		SType:             vk.StructureTypePipelineDynamicStateCreateInfo,
		DynamicStateCount: uint32(len(dynamicStates)),
		PDynamicStates:    dynamicStates,
	}
	bindingDesc := []vk.VertexInputBindingDescription{model.GetVertexBindingDescription()}
	attributeDesc := model.GetVertexAttributeDescriptions()
	vertexInputInfo := vk.PipelineVertexInputStateCreateInfo{
		SType:                           vk.StructureTypePipelineVertexInputStateCreateInfo,
		VertexBindingDescriptionCount:   1,
		PVertexBindingDescriptions:      bindingDesc,
		VertexAttributeDescriptionCount: uint32(len(attributeDesc)),
		PVertexAttributeDescriptions:    attributeDesc,
	}
	inputAssemblyInfo := vk.PipelineInputAssemblyStateCreateInfo{
		SType:                  vk.StructureTypePipelineInputAssemblyStateCreateInfo,
		Topology:               vk.PrimitiveTopologyTriangleList,
		PrimitiveRestartEnable: vk.False,
	}
	viewportStateInfo := vk.PipelineViewportStateCreateInfo{
		SType:         vk.StructureTypePipelineViewportStateCreateInfo,
		ViewportCount: 1,
		ScissorCount:  1,
	}
	// Meshes are wound clockwise when seen from the front, the loader converts OBJ data accordingly
	rasterizerInfo := vk.PipelineRasterizationStateCreateInfo{
		SType:                   vk.StructureTypePipelineRasterizationStateCreateInfo,
		DepthClampEnable:        vk.False,
		RasterizerDiscardEnable: vk.False,
		PolygonMode:             vk.PolygonModeFill,
		CullMode:                vk.CullModeFlags(desc.cullMode),
		FrontFace:               vk.FrontFaceClockwise,
		DepthBiasEnable:         vk.False,
		LineWidth:               1.0,
	}
	multisamplingInfo := vk.PipelineMultisampleStateCreateInfo{
		SType:                vk.StructureTypePipelineMultisampleStateCreateInfo,
		RasterizationSamples: vk.SampleCount1Bit,
		SampleShadingEnable:  vk.False,
		MinSampleShading:     1.0,
	}
	blendEnable := vk.Bool32(vk.False)
	if desc.blend {
		blendEnable = vk.True
	}
	colorBlendAttachmentInfo := vk.PipelineColorBlendAttachmentState{
		BlendEnable:         blendEnable,
		SrcColorBlendFactor: vk.BlendFactorSrcAlpha,
		DstColorBlendFactor: vk.BlendFactorOneMinusSrcAlpha,
		ColorBlendOp:        vk.BlendOpAdd,
		SrcAlphaBlendFactor: vk.BlendFactorOne,
		DstAlphaBlendFactor: vk.BlendFactorZero,
		AlphaBlendOp:        vk.BlendOpAdd,
		ColorWriteMask:      vk.ColorComponentFlags(vk.ColorComponentRBit | vk.ColorComponentGBit | vk.ColorComponentBBit | vk.ColorComponentABit),
	}
	colorBlendingInfo := vk.PipelineColorBlendStateCreateInfo{
		SType:           vk.StructureTypePipelineColorBlendStateCreateInfo,
		LogicOpEnable:   vk.False,
		LogicOp:         vk.LogicOpCopy,
		AttachmentCount: 1,
		PAttachments:    []vk.PipelineColorBlendAttachmentState{colorBlendAttachmentInfo},
	}
	depthWrite := vk.Bool32(vk.False)
	if desc.depthWrite {
		depthWrite = vk.True
	}
	depthStencil := vk.PipelineDepthStencilStateCreateInfo{
		SType:                 vk.StructureTypePipelineDepthStencilStateCreateInfo,
		DepthTestEnable:       vk.True,
		DepthWriteEnable:      depthWrite,
		DepthCompareOp:        vk.CompareOpLess,
		DepthBoundsTestEnable: vk.False,
		StencilTestEnable:     vk.False,
		MinDepthBounds:        0,
		MaxDepthBounds:        1,
	}

	pipelineInfo := vk.GraphicsPipelineCreateInfo{
		SType:               vk.StructureTypeGraphicsPipelineCreateInfo,
		StageCount:          uint32(len(shaderStages)),
		PStages:             shaderStages,
		PVertexInputState:   &vertexInputInfo,
		PInputAssemblyState: &inputAssemblyInfo,
		PViewportState:      &viewportStateInfo,
		PRasterizationState: &rasterizerInfo,
		PMultisampleState:   &multisamplingInfo,
		PDepthStencilState:  &depthStencil,
		PColorBlendState:    &colorBlendingInfo,
		PDynamicState:       &dynamicStateCreateInfo,
		Layout:              t.PipelineLayout,
		RenderPass:          renderPass,
		Subpass:             0,
		BasePipelineHandle:  nil,
		BasePipelineIndex:   -1,
	}
	pipelines, err := com.VkCreateGraphicsPipelines(t.device, nil, 1, []vk.GraphicsPipelineCreateInfo{pipelineInfo}, nil)
	if err != nil {
		log.Panicf("Failed to create %s pipeline: %s", desc.name, err)
	}
	return pipelines[0]
}
