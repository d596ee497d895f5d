package loader

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	vm "vehicle_viewer/vector_math"
)

const eps = 1e-4

const quadObj = `# unit quad in the xy plane
o quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func TestParseOBJQuad(t *testing.T) {
	v, id, err := ParseOBJ(strings.NewReader(quadObj), false)
	if err != nil {
		t.Fatalf("Parsing quad failed: %v", err)
	}
	if len(v) != 4 {
		t.Errorf("Shared corners should be merged into 4 vertices but got %d", len(v))
	}
	want := []uint32{0, 1, 2, 0, 2, 3}
	if len(id) != len(want) {
		t.Fatalf("Quad should be split into 2 triangles, got indices %v", id)
	}
	for i := range want {
		if id[i] != want[i] {
			t.Errorf("Unexpected fan triangulation %v, want %v", id, want)
			break
		}
	}
	// v is flipped so that the image origin is top left
	if v[0].UV != (vm.Vec2{X: 0, Y: 1}) || v[2].UV != (vm.Vec2{X: 1, Y: 0}) {
		t.Errorf("UVs were not flipped: %v %v", v[0].UV, v[2].UV)
	}
	for i, vert := range v {
		if !vert.Normal.ApproxEqual(vm.UnitZ, eps) {
			t.Errorf("Vertex %d normal should be +Z but was %v", i, vert.Normal)
		}
		if d := vert.Tangent.Dot(vert.Normal); d > eps || d < -eps {
			t.Errorf("Vertex %d tangent %v is not orthogonal to its normal", i, vert.Tangent)
		}
		if l := vert.Tangent.Len(); l < 1-eps || l > 1+eps {
			t.Errorf("Vertex %d tangent should be unit length but was %f", i, l)
		}
	}
	// u grows along +x, flipped v shrinks along +y
	if !v[0].Tangent.ApproxEqual(vm.UnitX, eps) {
		t.Errorf("Tangent should follow +u along +X but was %v", v[0].Tangent)
	}
}

func TestParseOBJFlipsAxisAndWinding(t *testing.T) {
	plain, plainID, err := ParseOBJ(strings.NewReader(quadObj), false)
	if err != nil {
		t.Fatal(err)
	}
	flipped, flippedID, err := ParseOBJ(strings.NewReader(quadObj), true)
	if err != nil {
		t.Fatal(err)
	}
	for i := range plain {
		if flipped[i].Pos.Z != -plain[i].Pos.Z || flipped[i].Normal.Z != -plain[i].Normal.Z {
			t.Errorf("Vertex %d z was not negated: %v vs %v", i, flipped[i], plain[i])
		}
	}
	for i := 0; i < len(plainID); i += 3 {
		if flippedID[i] != plainID[i] || flippedID[i+1] != plainID[i+2] || flippedID[i+2] != plainID[i+1] {
			t.Errorf("Triangle %d winding was not reversed: %v vs %v", i/3, flippedID[i:i+3], plainID[i:i+3])
		}
	}
}

func TestParseOBJWithoutObjectOrAttributes(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"
	v, id, err := ParseOBJ(strings.NewReader(src), false)
	if err != nil {
		t.Fatalf("Faces without an object should still parse: %v", err)
	}
	if len(v) != 3 || len(id) != 3 {
		t.Fatalf("Expected one triangle but got %d vertices, %d indices", len(v), len(id))
	}
	for i, vert := range v {
		if l := vert.Tangent.Len(); l < 1-eps || l > 1+eps {
			t.Errorf("Vertex %d should get a fallback unit tangent but was %v", i, vert.Tangent)
		}
	}
}

func TestParseOBJWithoutFaces(t *testing.T) {
	if _, _, err := ParseOBJ(strings.NewReader("v 0 0 0\n"), false); err == nil {
		t.Errorf("An obj without faces should be rejected")
	}
}

func TestOrthoTangentFallback(t *testing.T) {
	for _, n := range []vm.Vec3{vm.UnitX, vm.UnitY, vm.UnitZ, {X: 1, Y: 1, Z: 1}} {
		n = n.Norm()
		tan := orthoTangent(n, n)
		if d := tan.Dot(n); d > eps || d < -eps {
			t.Errorf("Fallback tangent %v is not orthogonal to %v", tan, n)
		}
		if l := tan.Len(); l < 1-eps || l > 1+eps {
			t.Errorf("Fallback tangent %v is not unit length", tan)
		}
	}
}

func TestLoadMesh(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quad.obj")
	if err := os.WriteFile(path, []byte(quadObj), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := LoadMesh(path)
	if err != nil {
		t.Fatalf("Loading %s failed: %v", path, err)
	}
	if m.Name != "quad" || m.IndexCount() != 6 {
		t.Errorf("Unexpected mesh %s with %d indices", m.Name, m.IndexCount())
	}

	if _, err := LoadMesh(filepath.Join(dir, "missing.obj")); err == nil {
		t.Errorf("Loading a missing file should fail")
	}
	other := filepath.Join(dir, "quad.fbx")
	if err := os.WriteFile(other, []byte(quadObj), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadMesh(other); err == nil {
		t.Errorf("Unknown extensions should be rejected")
	}
}

func TestParseOBJCountsOnlyObjectsWithFaces(t *testing.T) {
	var buf bytes.Buffer
	flags, out := log.Flags(), log.Writer()
	log.SetFlags(0)
	log.SetOutput(&buf)
	defer func() {
		log.SetFlags(flags)
		log.SetOutput(out)
	}()

	if _, _, err := ParseOBJ(strings.NewReader(quadObj), false); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Parsed obj: 1 objects,") {
		t.Errorf("A file with one object should report one object, log was %q", buf.String())
	}
}

func TestParseOBJRelativeIndices(t *testing.T) {
	src := "o tri\nv 0 0 0\nv 1 0 0\nv 0 1 0\nvt 0 0\nvt 1 0\nvt 0 1\nf -3/-3 -2/-2 -1/-1\n"
	v, id, err := ParseOBJ(strings.NewReader(src), false)
	if err != nil {
		t.Fatalf("Relative indices should parse: %v", err)
	}
	if len(v) != 3 || len(id) != 3 {
		t.Fatalf("Expected one triangle but got %d vertices, %d indices", len(v), len(id))
	}
	wantPos := []vm.Vec3{{}, {X: 1}, {Y: 1}}
	wantUV := []vm.Vec2{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 0, Y: 0}}
	for i := range wantPos {
		if v[id[i]].Pos != wantPos[i] || v[id[i]].UV != wantUV[i] {
			t.Errorf("Corner %d should be at %v with uv %v but was %v with uv %v",
				i, wantPos[i], wantUV[i], v[id[i]].Pos, v[id[i]].UV)
		}
	}
}
