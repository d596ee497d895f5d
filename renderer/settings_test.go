package renderer

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func captureLog(t *testing.T) *bytes.Buffer {
	var buf bytes.Buffer
	flags, out := log.Flags(), log.Writer()
	log.SetFlags(0)
	log.SetOutput(&buf)
	t.Cleanup(func() {
		log.SetFlags(flags)
		log.SetOutput(out)
	})
	return &buf
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if !s.Rotate || !s.UseNormalMap || !s.UseFireFX {
		t.Errorf("Rotation, normal map and fire should start enabled: %+v", s)
	}
	if s.SampleMethod != SAMPLE_POINT {
		t.Errorf("Sampling should start at Point but was %s", s.SampleMethod)
	}
}

func TestSettingsToggles(t *testing.T) {
	buf := captureLog(t)
	s := DefaultSettings()

	s.ToggleRotation()
	s.ToggleNormalVisibility()
	s.ToggleFireFX()
	if s.Rotate || s.UseNormalMap || s.UseFireFX {
		t.Errorf("Every toggle should have switched its flag off: %+v", s)
	}
	s.ToggleRotation()
	if !s.Rotate {
		t.Errorf("Toggling twice should restore rotation")
	}

	want := "Rotation is Off\nNormal map is Off\nFireFx is Off\nRotation is On\n"
	if buf.String() != want {
		t.Errorf("Unexpected log output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestCycleSamplerState(t *testing.T) {
	buf := captureLog(t)
	s := DefaultSettings()

	wantPasses := []uint32{PASS_LINEAR, PASS_ANISOTROPIC, PASS_POINT, PASS_LINEAR}
	for i, want := range wantPasses {
		if got := s.CycleSamplerState(); got != want {
			t.Errorf("Cycle %d should select pass %d but selected %d", i, want, got)
		}
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	wantLines := []string{
		"Current sampling method is Linear",
		"Current sampling method is Anisotropic",
		"Current sampling method is Point",
		"Current sampling method is Linear",
	}
	if len(lines) != len(wantLines) {
		t.Fatalf("Expected %d log lines but got %d: %q", len(wantLines), len(lines), lines)
	}
	for i := range wantLines {
		if lines[i] != wantLines[i] {
			t.Errorf("Line %d: expected %q but got %q", i, wantLines[i], lines[i])
		}
	}
}

func TestSampleMethodString(t *testing.T) {
	if SampleMethod(7).String() != "Unknown" {
		t.Errorf("Out of range sample methods have no name")
	}
	for m := SAMPLE_POINT; m <= SAMPLE_ANISOTROPIC; m++ {
		desc, ok := describePass(uint32(m))
		if !ok || desc.name != m.String() {
			t.Errorf("Sample method %s should map onto the pass of the same name, got %q", m, desc.name)
		}
	}
}
