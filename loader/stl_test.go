package loader

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	vm "vehicle_viewer/vector_math"
)

func putVec3(b []byte, v vm.Vec3) {
	binary.LittleEndian.PutUint32(b[0:4], math.Float32bits(v.X))
	binary.LittleEndian.PutUint32(b[4:8], math.Float32bits(v.Y))
	binary.LittleEndian.PutUint32(b[8:12], math.Float32bits(v.Z))
}

func stlBytes(triangles [][4]vm.Vec3, announced uint32) []byte {
	b := make([]byte, stlHeaderSize+4+len(triangles)*stlTriangleSize)
	copy(b, "test solid")
	binary.LittleEndian.PutUint32(b[stlHeaderSize:], announced)
	for i, tri := range triangles {
		rec := b[stlHeaderSize+4+i*stlTriangleSize:]
		for j, v := range tri {
			putVec3(rec[j*12:], v)
		}
	}
	return b
}

func TestReadStl(t *testing.T) {
	tris := [][4]vm.Vec3{
		{{Z: 2}, {}, {X: 1}, {Y: 1}},
		{{Y: 1}, {X: 5}, {X: 6}, {X: 5, Z: 1}},
	}
	v, id, err := ReadStl(bytes.NewReader(stlBytes(tris, 2)))
	if err != nil {
		t.Fatalf("Reading stl failed: %v", err)
	}
	if len(v) != 6 || len(id) != 6 {
		t.Fatalf("Expected 6 unshared corners but got %d vertices, %d indices", len(v), len(id))
	}
	for i := range id {
		if id[i] != uint32(i) {
			t.Errorf("Indices should be sequential but were %v", id)
			break
		}
	}
	if v[4].Pos != (vm.Vec3{X: 6}) {
		t.Errorf("Second corner of triangle 1 should be (6,0,0) but was %v", v[4].Pos)
	}
	for i := 0; i < 3; i++ {
		if !v[i].Normal.ApproxEqual(vm.UnitZ, eps) || !v[i+3].Normal.ApproxEqual(vm.UnitY, eps) {
			t.Errorf("Face normals were not normalised onto the corners: %v %v", v[i].Normal, v[i+3].Normal)
		}
		if d := v[i].Tangent.Dot(v[i].Normal); d > eps || d < -eps {
			t.Errorf("Tangent %v should be orthogonal to %v", v[i].Tangent, v[i].Normal)
		}
	}
}

func TestReadStlTruncated(t *testing.T) {
	tris := [][4]vm.Vec3{{{Z: 1}, {}, {X: 1}, {Y: 1}}}
	if _, _, err := ReadStl(bytes.NewReader(stlBytes(tris, 3))); err == nil {
		t.Errorf("Announcing more triangles than present should fail")
	}
	if _, _, err := ReadStl(bytes.NewReader(make([]byte, 40))); err == nil {
		t.Errorf("A file shorter than the header should fail")
	}
}
