package textmesh

import (
	"github.com/gogpu/textmesh/asset"
	"github.com/gogpu/textmesh/internal/logging"
	"github.com/gogpu/textmesh/mesh"
	"github.com/gogpu/textmesh/meshcache"
	"github.com/gogpu/textmesh/world"
)

// PassStats summarizes one Synchronizer run.
type PassStats struct {
	// Visited counts objects whose text or readiness changed.
	Visited int
	// Generated counts successful generator calls.
	Generated int
	// Created counts new meshes.
	Created int
	// Updated counts meshes overwritten in place.
	Updated int
	// Skipped counts objects whose font did not resolve.
	Skipped int
	// Failed counts generator errors.
	Failed int
}

// Synchronizer regenerates meshes of text objects whose declaration or
// readiness state changed since its previous run.
//
// A Synchronizer remembers the scene tick of its last run, so it must be
// used with a single Scene.
type Synchronizer struct {
	fonts     FontStore
	meshes    *asset.Store[*mesh.Mesh]
	materials *asset.Store[*mesh.Material]
	cache     *meshcache.Cache
	gen       Generator

	lastRun world.Tick
}

// NewSynchronizer creates a synchronizer. A nil gen means NewMeshGenerator;
// a nil cache disables caching.
func NewSynchronizer(
	fonts FontStore,
	meshes *asset.Store[*mesh.Mesh],
	materials *asset.Store[*mesh.Material],
	cache *meshcache.Cache,
	gen Generator,
) *Synchronizer {
	if gen == nil {
		gen = NewMeshGenerator()
	}
	return &Synchronizer{
		fonts:     fonts,
		meshes:    meshes,
		materials: materials,
		cache:     cache,
		gen:       gen,
	}
}

// Run performs one pass over sc.
//
// For each changed object the font is resolved. Objects without a font are
// skipped and counted in their readiness state; after more than five skips a
// single warning is logged for the object. Otherwise the generator output is
// written into the object's mesh, creating the mesh and, if the object has
// none, an unlit material in the text color.
//
// Writes made by Run are not seen as changes by its next run.
func (s *Synchronizer) Run(sc *Scene) PassStats {
	var stats PassStats
	since := s.lastRun
	log := logging.Logger()

	for e, o := range sc.All() {
		if !o.text.ChangedSince(since) && !o.state.ChangedSince(since) {
			continue
		}
		stats.Visited++

		tm := o.text.Get()
		f, ok := s.fonts.Get(tm.Style.Font)
		if !ok || f == nil {
			stats.Skipped++
			var warn bool
			o.state.Mutate(&sc.clock, func(st *ReadinessState) {
				warn = st.recordMissingFont()
			})
			if warn {
				log.Warn(missingFontMessage, "entity", e, "font", tm.Style.Font)
			}
			continue
		}

		data, err := s.gen.Generate(tm, f, s.cache)
		if err != nil {
			stats.Failed++
			log.Error("text mesh generation failed", "entity", e, "font", f.Name(), "error", err)
			continue
		}
		stats.Generated++

		if s.update(o, data) {
			stats.Updated++
			log.Debug("text mesh updated", "entity", e, "mesh", o.Mesh, "vertices", data.VertexCount())
			continue
		}
		s.create(o, tm, data)
		stats.Created++
		log.Debug("text mesh created", "entity", e, "mesh", o.Mesh, "material", o.Material,
			"vertices", data.VertexCount())
	}

	s.lastRun = sc.clock.Now()
	return stats
}

// update overwrites the buffers of the object's existing mesh and reports
// whether there was one.
func (s *Synchronizer) update(o *Object, data mesh.Data) bool {
	if !o.Mesh.IsValid() {
		return false
	}
	m, ok := s.meshes.Get(o.Mesh)
	if !ok || m == nil {
		logging.Logger().Debug("mesh handle not in store, creating a new mesh", "mesh", o.Mesh)
		return false
	}
	m.Apply(data)
	s.meshes.MarkModified(o.Mesh)
	return true
}

// create attaches a new mesh, and a material unless one is set.
func (s *Synchronizer) create(o *Object, tm TextMesh, data mesh.Data) {
	m := mesh.New()
	m.Apply(data)
	o.Mesh = s.meshes.Add(m)
	if !o.Material.IsValid() {
		o.Material = s.materials.Add(mesh.NewTextMaterial(tm.Style.Color))
	}
}
