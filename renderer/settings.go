package renderer

import "log"

// SampleMethod selects the sampler the vehicle's material maps are read with. Its value is the technique pass.
type SampleMethod uint32

const (
	SAMPLE_POINT       = SampleMethod(PASS_POINT)
	SAMPLE_LINEAR      = SampleMethod(PASS_LINEAR)
	SAMPLE_ANISOTROPIC = SampleMethod(PASS_ANISOTROPIC)

	sampleMethodCount = 3
)

func (s SampleMethod) String() string {
	switch s {
	case SAMPLE_POINT:
		return "Point"
	case SAMPLE_LINEAR:
		return "Linear"
	case SAMPLE_ANISOTROPIC:
		return "Anisotropic"
	}
	return "Unknown"
}

// Settings are the toggles bound to the function keys.
type Settings struct {
	Rotate       bool
	UseNormalMap bool
	UseFireFX    bool
	SampleMethod SampleMethod
}

func DefaultSettings() Settings {
	return Settings{
		Rotate:       true,
		UseNormalMap: true,
		UseFireFX:    true,
		SampleMethod: SAMPLE_POINT,
	}
}

func onOff(b bool) string {
	if b {
		return "On"
	}
	return "Off"
}

func (s *Settings) ToggleRotation() {
	s.Rotate = !s.Rotate
	log.Printf("Rotation is %s", onOff(s.Rotate))
}

func (s *Settings) ToggleNormalVisibility() {
	s.UseNormalMap = !s.UseNormalMap
	log.Printf("Normal map is %s", onOff(s.UseNormalMap))
}

func (s *Settings) ToggleFireFX() {
	s.UseFireFX = !s.UseFireFX
	log.Printf("FireFx is %s", onOff(s.UseFireFX))
}

// CycleSamplerState advances Point -> Linear -> Anisotropic -> Point and returns the pass to draw the vehicle with.
func (s *Settings) CycleSamplerState() uint32 {
	s.SampleMethod = (s.SampleMethod + 1) % sampleMethodCount
	log.Printf("Current sampling method is %s", s.SampleMethod)
	return uint32(s.SampleMethod)
}
