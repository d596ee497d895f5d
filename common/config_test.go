package common

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if c.Width != 640 || c.Height != 480 {
		t.Errorf("Default window should be 640x480 but was %dx%d", c.Width, c.Height)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Default config should be valid: %v", err)
	}
	if p := c.ResourcePath("vehicle.obj"); p != filepath.Join("resources", "vehicle.obj") {
		t.Errorf("Unexpected resource path %s", p)
	}
	if c.ValidationLayers() != nil {
		t.Errorf("Validation is off by default")
	}
	c.Validation = true
	if l := c.ValidationLayers(); len(l) != 1 || l[0] != "VK_LAYER_KHRONOS_validation" {
		t.Errorf("Unexpected validation layers %v", l)
	}
}

func TestConfigValidate(t *testing.T) {
	c := DefaultConfig()
	c.Width = 0
	if c.Validate() == nil {
		t.Errorf("A zero width window should be rejected")
	}
	c = DefaultConfig()
	c.FramesInFlight = 0
	if c.Validate() == nil {
		t.Errorf("Zero frames in flight should be rejected")
	}
	c = DefaultConfig()
	c.ShaderDir = ""
	if c.Validate() == nil {
		t.Errorf("An empty shader directory should be rejected")
	}
}
