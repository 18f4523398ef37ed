// Package mesh holds renderable triangle meshes and their materials.
//
// A [Mesh] is CPU-side vertex data ready for upload: positions, normals,
// texture coordinates and a uint32 index buffer forming a triangle list.
// [Data] is the transient output of a mesh generator; [Mesh.Apply]
// overwrites a mesh's buffers with it in place so that handles and pointers
// to the mesh stay valid across regenerations.
package mesh
