package renderer

import (
	"os"
	"path/filepath"
	"testing"

	vk "github.com/goki/vulkan"
)

func TestDescribePass(t *testing.T) {
	for i := PASS_POINT; i <= PASS_ANISOTROPIC; i++ {
		desc, ok := describePass(i)
		if !ok {
			t.Fatalf("Pass %d should exist", i)
		}
		if desc.blend || !desc.depthWrite || desc.cullMode != vk.CullModeBackBit || desc.fragShader != MESH_FRAG_SHADER {
			t.Errorf("Pass %d should be opaque: %+v", i, desc)
		}
	}
	if p, _ := describePass(PASS_POINT); p.filter != vk.FilterNearest || p.anisotropy {
		t.Errorf("Point pass should sample the nearest texel without anisotropy")
	}
	if p, _ := describePass(PASS_ANISOTROPIC); p.filter != vk.FilterLinear || !p.anisotropy {
		t.Errorf("Anisotropic pass should filter linearly with anisotropy")
	}

	fire, ok := describePass(PASS_FIRE)
	if !ok {
		t.Fatalf("Fire pass should exist")
	}
	if !fire.blend || fire.depthWrite || fire.cullMode != vk.CullModeNone || fire.fragShader != FIRE_FRAG_SHADER {
		t.Errorf("Fire pass should blend without depth writes or culling: %+v", fire)
	}

	if _, ok := describePass(PASS_FIRE + 1); ok {
		t.Errorf("There is no pass after the fire pass")
	}
}

func TestPoolSizes(t *testing.T) {
	sizes := poolSizes(3)
	if len(sizes) != 2 {
		t.Fatalf("Expected 2 pool sizes but got %d", len(sizes))
	}
	if sizes[0].Type != vk.DescriptorTypeUniformBuffer || sizes[0].DescriptorCount != 3 {
		t.Errorf("Each set needs one uniform buffer, got %+v", sizes[0])
	}
	if sizes[1].Type != vk.DescriptorTypeCombinedImageSampler || sizes[1].DescriptorCount != 3*TEXTURE_SLOTS {
		t.Errorf("Each set needs a sampler per texture slot, got %+v", sizes[1])
	}
}

func TestLayoutBarrier(t *testing.T) {
	b, src, dst, ok := layoutBarrier(nil, TEXTURE_FORMAT, vk.ImageLayoutUndefined, vk.ImageLayoutTransferDstOptimal)
	if !ok {
		t.Fatalf("Upload transition should be supported")
	}
	if b.DstAccessMask != vk.AccessFlags(vk.AccessTransferWriteBit) || src != vk.PipelineStageFlags(vk.PipelineStageTopOfPipeBit) || dst != vk.PipelineStageFlags(vk.PipelineStageTransferBit) {
		t.Errorf("Unexpected upload barrier %+v (%d -> %d)", b, src, dst)
	}

	b, _, dst, ok = layoutBarrier(nil, TEXTURE_FORMAT, vk.ImageLayoutTransferDstOptimal, vk.ImageLayoutShaderReadOnlyOptimal)
	if !ok || b.DstAccessMask != vk.AccessFlags(vk.AccessShaderReadBit) || dst != vk.PipelineStageFlags(vk.PipelineStageFragmentShaderBit) {
		t.Errorf("Sampling transition should make the image readable by fragment shaders")
	}
	if b.SubresourceRange.AspectMask != vk.ImageAspectFlags(vk.ImageAspectColorBit) {
		t.Errorf("Textures are colour images")
	}

	b, _, _, ok = layoutBarrier(nil, vk.FormatD24UnormS8Uint, vk.ImageLayoutUndefined, vk.ImageLayoutDepthStencilAttachmentOptimal)
	if !ok {
		t.Fatalf("Depth transition should be supported")
	}
	if b.SubresourceRange.AspectMask != vk.ImageAspectFlags(vk.ImageAspectDepthBit|vk.ImageAspectStencilBit) {
		t.Errorf("Depth formats with stencil need both aspects")
	}
	b, _, _, _ = layoutBarrier(nil, vk.FormatD32Sfloat, vk.ImageLayoutUndefined, vk.ImageLayoutDepthStencilAttachmentOptimal)
	if b.SubresourceRange.AspectMask != vk.ImageAspectFlags(vk.ImageAspectDepthBit) {
		t.Errorf("D32 has no stencil aspect")
	}

	if _, _, _, ok := layoutBarrier(nil, TEXTURE_FORMAT, vk.ImageLayoutShaderReadOnlyOptimal, vk.ImageLayoutUndefined); ok {
		t.Errorf("Transitions back to undefined are not supported")
	}
}

func TestSupportsFeatures(t *testing.T) {
	depth := vk.FormatFeatureFlags(vk.FormatFeatureDepthStencilAttachmentBit)
	props := vk.FormatProperties{OptimalTilingFeatures: depth}
	if !supportsFeatures(props, vk.ImageTilingOptimal, depth) {
		t.Errorf("Optimal tiling supports depth attachments")
	}
	if supportsFeatures(props, vk.ImageTilingLinear, depth) {
		t.Errorf("Linear tiling has no features")
	}
}

func TestReadShaderCode(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.spv")
	if err := os.WriteFile(good, []byte{0x03, 0x02, 0x23, 0x07, 0, 0, 1, 0}, 0o644); err != nil {
		t.Fatal(err)
	}
	if code, err := readShaderCode(good); err != nil || len(code) != 8 {
		t.Errorf("Expected 8 Byte of code but got %d (%v)", len(code), err)
	}

	odd := filepath.Join(dir, "odd.spv")
	if err := os.WriteFile(odd, []byte{1, 2, 3}, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := readShaderCode(odd); err == nil {
		t.Errorf("Code that is not made of whole words should be rejected")
	}
	if _, err := readShaderCode(filepath.Join(dir, "missing.spv")); err == nil {
		t.Errorf("A missing file should be an error")
	}
}
