package renderer

import (
	"log"

	"github.com/pkg/errors"
)

// Scene keeps the meshes uploaded to the device and owns their lifetime. Meshes are told apart by name.
type Scene struct {
	meshes []*GpuMesh
}

// Meshes lists the meshes in the order they were added, which is also the draw order.
func (s *Scene) Meshes() []*GpuMesh {
	return s.meshes
}

func (s *Scene) FindInScene(name string) (*GpuMesh, error) {
	for i, v := range s.meshes {
		if v.Name == name {
			return s.meshes[i], nil
		}
	}
	return nil, errors.Errorf("mesh '%s' not found", name)
}

// AddToScene takes ownership of m. A mesh with the same name is rejected.
func (s *Scene) AddToScene(m *GpuMesh) error {
	if _, err := s.FindInScene(m.Name); err == nil {
		return errors.Errorf("mesh '%s' is already part of the scene", m.Name)
	}
	s.meshes = append(s.meshes, m)
	return nil
}

// ClearScene destroys every mesh. The device has to be idle.
func (s *Scene) ClearScene() {
	for _, m := range s.meshes {
		m.Destroy()
	}
	if len(s.meshes) > 0 {
		log.Printf("Released %d meshes", len(s.meshes))
	}
	s.meshes = nil
}
