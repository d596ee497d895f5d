package loader

import (
	"io"
	"log"
	"strings"

	"github.com/g3n/engine/loader/obj"
	"github.com/pkg/errors"
	"vehicle_viewer/model"
	vm "vehicle_viewer/vector_math"
)

// corner identifies a unique vertex of an OBJ file: the combination of position, uv and normal index. Missing uv or
// normal references are stored as -1.
type corner struct {
	pos, uv, normal int
}

// ParseOBJ decodes Wavefront OBJ geometry into an indexed triangle list. Polygons are triangulated as fans, corners
// sharing the same position/uv/normal triple are merged and per-vertex tangents are derived from the uv layout.
//
// With flipAxisAndWinding set, Z is negated on positions, normals and tangents and every triangle's winding is
// reversed. That turns the right-handed data most exporters write into the left-handed convention used for
// rendering, without mirroring the model.
func ParseOBJ(r io.Reader, flipAxisAndWinding bool) ([]model.Vertex, []uint32, error) {
	// Faces listed before any 'o' statement still need an object to land in. Material libraries are not used, an
	// empty one keeps the decoder from looking for a file.
	src := io.MultiReader(strings.NewReader("o default\n"), r)
	decoder, err := obj.DecodeReader(src, strings.NewReader(""))
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to decode obj")
	}

	var vertices []model.Vertex
	var indices []uint32
	unique := make(map[corner]uint32)

	addCorner := func(face obj.Face, i int) error {
		c := corner{
			pos:    face.Vertices[i],
			uv:     indexAt(face.Uvs, i),
			normal: indexAt(face.Normals, i),
		}
		if idx, ok := unique[c]; ok {
			indices = append(indices, idx)
			return nil
		}
		if c.pos < 0 || c.pos*3+2 >= len(decoder.Vertices) {
			return errors.Errorf("face references missing position %d", c.pos)
		}
		v := model.NewVertex(vm.Vec3{
			X: decoder.Vertices[c.pos*3],
			Y: decoder.Vertices[c.pos*3+1],
			Z: decoder.Vertices[c.pos*3+2],
		})
		if c.uv >= 0 && c.uv*2+1 < len(decoder.Uvs) {
			v.UV = vm.Vec2{
				X: decoder.Uvs[c.uv*2],
				Y: 1.0 - decoder.Uvs[c.uv*2+1],
			}
		}
		if c.normal >= 0 && c.normal*3+2 < len(decoder.Normals) {
			v.Normal = vm.Vec3{
				X: decoder.Normals[c.normal*3],
				Y: decoder.Normals[c.normal*3+1],
				Z: decoder.Normals[c.normal*3+2],
			}.Norm()
		}
		v.Tangent = vm.Vec3{}

		idx := uint32(len(vertices))
		vertices = append(vertices, v)
		unique[c] = idx
		indices = append(indices, idx)
		return nil
	}

	for _, o := range decoder.Objects {
		for _, face := range o.Faces {
			// We need to triangularize faces
			for i := 2; i < len(face.Vertices); i++ {
				for _, fi := range [3]int{0, i - 1, i} {
					if err := addCorner(face, fi); err != nil {
						return nil, nil, err
					}
				}
			}
		}
	}
	if len(indices) == 0 {
		return nil, nil, errors.New("obj contains no faces")
	}

	accumulateTangents(vertices, indices)
	for i := range vertices {
		vertices[i].Tangent = orthoTangent(vertices[i].Tangent, vertices[i].Normal)
	}

	if flipAxisAndWinding {
		for i := range vertices {
			vertices[i].Pos.Z = -vertices[i].Pos.Z
			vertices[i].Normal.Z = -vertices[i].Normal.Z
			vertices[i].Tangent.Z = -vertices[i].Tangent.Z
		}
		for i := 0; i+2 < len(indices); i += 3 {
			indices[i+1], indices[i+2] = indices[i+2], indices[i+1]
		}
	}

	log.Printf("Parsed obj: %d objects, %d vertices, %d triangles", objectsWithFaces(decoder), len(vertices), len(indices)/3)
	return vertices, indices, nil
}

// objectsWithFaces skips the placeholder object ParseOBJ puts in front of the file unless faces landed in it.
func objectsWithFaces(d *obj.Decoder) int {
	n := 0
	for _, o := range d.Objects {
		if len(o.Faces) > 0 {
			n++
		}
	}
	return n
}

func indexAt(list []int, i int) int {
	if i < len(list) && list[i] >= 0 {
		return list[i]
	}
	return -1
}

// accumulateTangents adds every triangle's uv aligned tangent onto its three corners. Triangles with a degenerate uv
// mapping contribute nothing.
func accumulateTangents(vertices []model.Vertex, indices []uint32) {
	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		p0, p1, p2 := vertices[i0].Pos, vertices[i1].Pos, vertices[i2].Pos
		uv0, uv1, uv2 := vertices[i0].UV, vertices[i1].UV, vertices[i2].UV

		edge0 := p1.Sub(p0)
		edge1 := p2.Sub(p0)
		diffX := vm.Vec2{X: uv1.X - uv0.X, Y: uv2.X - uv0.X}
		diffY := vm.Vec2{X: uv1.Y - uv0.Y, Y: uv2.Y - uv0.Y}
		det := diffX.X*diffY.Y - diffX.Y*diffY.X
		if det == 0 {
			continue
		}
		tangent := edge0.ScalarMul(diffY.Y).Sub(edge1.ScalarMul(diffY.X)).ScalarMul(1 / det)

		vertices[i0].Tangent = vertices[i0].Tangent.Add(tangent)
		vertices[i1].Tangent = vertices[i1].Tangent.Add(tangent)
		vertices[i2].Tangent = vertices[i2].Tangent.Add(tangent)
	}
}

// orthoTangent makes t a unit vector orthogonal to the unit normal n. When t has nothing left after removing its
// normal component, any unit vector orthogonal to n is returned instead.
func orthoTangent(t vm.Vec3, n vm.Vec3) vm.Vec3 {
	const minLen = 1e-6
	if r := t.Reject(n); r.Len() > minLen {
		return r.Norm()
	}
	if r := vm.UnitX.Reject(n); r.Len() > minLen {
		return r.Norm()
	}
	return vm.UnitY.Reject(n).Norm()
}
