package renderer

import (
	"testing"

	"vehicle_viewer/model"
)

func TestSceneBookkeeping(t *testing.T) {
	var s Scene
	vehicle := &GpuMesh{Mesh: model.NewMesh("vehicle", nil, nil)}
	fire := &GpuMesh{Mesh: model.NewMesh("fireFX", nil, nil)}

	if err := s.AddToScene(vehicle); err != nil {
		t.Fatal(err)
	}
	if err := s.AddToScene(fire); err != nil {
		t.Fatal(err)
	}
	if err := s.AddToScene(&GpuMesh{Mesh: model.NewMesh("vehicle", nil, nil)}); err == nil {
		t.Errorf("A second mesh called vehicle should be rejected")
	}
	if len(s.Meshes()) != 2 {
		t.Errorf("Expected 2 meshes but got %d", len(s.Meshes()))
	}

	if m, err := s.FindInScene("fireFX"); err != nil || m != fire {
		t.Errorf("fireFX should be found, got %v (%v)", m, err)
	}
	if _, err := s.FindInScene("wheel"); err == nil {
		t.Errorf("Unknown meshes should not be found")
	}

	if got := s.Meshes(); got[0] != vehicle || got[1] != fire {
		t.Errorf("Meshes should be drawn in the order they were added")
	}
}
