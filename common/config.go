package common

import (
	"path/filepath"

	"github.com/pkg/errors"
)

// Config gathers everything the viewer needs to know before a window exists.
type Config struct {
	Title  string
	Width  int32
	Height int32

	VSync      bool
	Validation bool

	ResourceDir string
	ShaderDir   string

	// FramesInFlight is the number of frames the CPU may record ahead of the GPU.
	FramesInFlight int
}

func DefaultConfig() Config {
	return Config{
		Title:          "Vehicle viewer",
		Width:          640,
		Height:         480,
		VSync:          false,
		Validation:     false,
		ResourceDir:    "resources",
		ShaderDir:      "shaders",
		FramesInFlight: 2,
	}
}

// Validate rejects settings the renderer cannot start with.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Errorf("window size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.FramesInFlight < 1 {
		return errors.Errorf("at least one frame in flight is required, got %d", c.FramesInFlight)
	}
	if c.ResourceDir == "" || c.ShaderDir == "" {
		return errors.New("resource and shader directories must be set")
	}
	return nil
}

func (c Config) ResourcePath(name string) string {
	return filepath.Join(c.ResourceDir, name)
}

func (c Config) ShaderPath(name string) string {
	return filepath.Join(c.ShaderDir, name)
}

// ValidationLayers returns the layers to enable for the current configuration.
func (c Config) ValidationLayers() []string {
	if !c.Validation {
		return nil
	}
	return []string{"VK_LAYER_KHRONOS_validation"}
}
