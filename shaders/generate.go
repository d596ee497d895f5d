// Package shaders holds the GLSL sources of the mesh technique. The renderer loads the compiled '.spv' files from
// this directory at start up, run 'go generate ./shaders' after changing a source.
package shaders

//go:generate glslc mesh.vert -o mesh.vert.spv
//go:generate glslc mesh.frag -o mesh.frag.spv
//go:generate glslc fire.frag -o fire.frag.spv
