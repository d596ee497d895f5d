package loader

import (
	"encoding/binary"
	"io"
	"log"
	"math"

	"github.com/pkg/errors"
	"vehicle_viewer/model"
	vm "vehicle_viewer/vector_math"
)

const (
	stlHeaderSize   = 80
	stlTriangleSize = 50
)

// ReadStl decodes a binary STL stream: an 80 Byte header, a little endian uint32 triangle count and one 50 Byte
// record per triangle (normal, three corners, attribute word). Corners are not shared, the face normal is copied onto
// all three of them.
func ReadStl(r io.Reader) ([]model.Vertex, []uint32, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to read stl")
	}
	if len(b) < stlHeaderSize+4 {
		return nil, nil, errors.Errorf("stl too short for header: %d Byte", len(b))
	}
	header := b[:stlHeaderSize]
	tCnt := binary.LittleEndian.Uint32(b[stlHeaderSize : stlHeaderSize+4])
	body := b[stlHeaderSize+4:]
	if uint64(len(body)) < uint64(tCnt)*stlTriangleSize {
		return nil, nil, errors.Errorf("stl truncated: %d triangles announced, %d Byte of triangle data", tCnt, len(body))
	}
	log.Printf("Read stl, Header: '%s', Triangle Count: %d, Triangle memory size: %d KiB", trimHeader(header), tCnt, len(body)/1024)
	v, id := toMesh(body, tCnt)
	return v, id, nil
}

func toMesh(bytes []byte, triangleCnt uint32) ([]model.Vertex, []uint32) {
	v := make([]model.Vertex, 0, triangleCnt*3)
	id := make([]uint32, 0, triangleCnt*3)

	for t := uint32(0); t < triangleCnt; t++ {
		rec := bytes[t*stlTriangleSize : (t+1)*stlTriangleSize]
		normal := toVec3(rec[0:12]).Norm()
		tangent := orthoTangent(vm.Vec3{}, normal)
		for c := 0; c < 3; c++ {
			start := 12 + c*12
			vert := model.NewVertex(toVec3(rec[start : start+12]))
			vert.Normal = normal
			vert.Tangent = tangent
			id = append(id, uint32(len(v)))
			v = append(v, vert)
		}
	}
	return v, id
}

func trimHeader(h []byte) string {
	end := len(h)
	for end > 0 && (h[end-1] == 0 || h[end-1] == ' ') {
		end--
	}
	return string(h[:end])
}

func toVec3(bytes []byte) vm.Vec3 {
	return vm.Vec3{
		X: toFloat32(bytes[:4]),
		Y: toFloat32(bytes[4:8]),
		Z: toFloat32(bytes[8:12]),
	}
}

func toFloat32(bytes []byte) float32 {
	bits := binary.LittleEndian.Uint32(bytes)
	float := math.Float32frombits(bits)
	return float
}
