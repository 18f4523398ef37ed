// Package export writes the synchronized meshes of an App to disk.
//
// Collect gathers one Entry per object with a mesh, with positions and
// normals already placed by the object's global transform. The entries can
// then be written as a Wavefront OBJ file, a compressed snapshot that
// ReadSnapshot loads back, or rows of a SQLite index.
package export
