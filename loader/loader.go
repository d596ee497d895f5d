package loader

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"vehicle_viewer/model"
)

// LoadMesh reads a mesh file and picks the parser by extension. OBJ geometry is flipped into the left-handed
// convention, STL geometry is taken as is. The mesh is named after the file without extension.
func LoadMesh(path string) (*model.Mesh, error) {
	log.Printf("Reading mesh file %s", path)
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open mesh %s", path)
	}
	defer f.Close()

	var v []model.Vertex
	var id []uint32
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		v, id, err = ParseOBJ(f, true)
	case ".stl":
		v, id, err = ReadStl(f)
	default:
		return nil, errors.Errorf("unsupported mesh format '%s' of %s", ext, path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load mesh %s", path)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return model.NewMesh(name, v, id), nil
}
