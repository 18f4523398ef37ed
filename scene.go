package textmesh

import (
	"iter"
	"slices"

	"github.com/gogpu/textmesh/asset"
	"github.com/gogpu/textmesh/mesh"
	"github.com/gogpu/textmesh/world"
)

// Object is one text object of a scene.
//
// The text declaration and the readiness state are change tracked and can
// only be written through the Scene. Transform, visibility and the
// renderable handles are plain fields.
type Object struct {
	text  world.Tracked[TextMesh]
	state world.Tracked[ReadinessState]

	Transform  world.Transform
	Global     world.GlobalTransform
	Visibility world.Visibility

	// Mesh is invalid until the synchronizer first generates geometry.
	Mesh asset.Handle[*mesh.Mesh]

	// Material is created with the mesh unless set beforehand.
	Material asset.Handle[*mesh.Material]
}

// Text returns the current declaration.
func (o *Object) Text() TextMesh { return o.text.Get() }

// State returns the current readiness state.
func (o *Object) State() ReadinessState { return o.state.Get() }

// Bundle holds the initial values of a new object.
type Bundle struct {
	Text       TextMesh
	Transform  world.Transform
	Visibility world.Visibility

	// Material is optional; the synchronizer creates one when it is invalid.
	Material asset.Handle[*mesh.Material]
}

// Scene owns the text objects and the change clock.
//
// Scene is not safe for concurrent use.
type Scene struct {
	clock    world.Clock
	entities world.Entities
	objects  map[world.Entity]*Object
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{objects: make(map[world.Entity]*Object)}
}

// Spawn adds an object. A zero Transform in b is replaced by the identity.
// The new object counts as changed for every component.
func (s *Scene) Spawn(b Bundle) world.Entity {
	tr := b.Transform
	if tr == (world.Transform{}) {
		tr = world.IdentityTransform()
	}
	e := s.entities.Spawn()
	s.objects[e] = &Object{
		text:       world.NewTracked(&s.clock, b.Text),
		state:      world.NewTracked(&s.clock, ReadinessState{}),
		Transform:  tr,
		Global:     world.GlobalFrom(tr),
		Visibility: b.Visibility,
		Material:   b.Material,
	}
	return e
}

// Despawn removes the object and its readiness state. The mesh and
// material stay in their stores.
func (s *Scene) Despawn(e world.Entity) bool {
	if !s.entities.Despawn(e) {
		return false
	}
	delete(s.objects, e)
	return true
}

// Get returns the object e.
func (s *Scene) Get(e world.Entity) (*Object, bool) {
	o, ok := s.objects[e]
	return o, ok
}

// Len returns the number of objects.
func (s *Scene) Len() int { return len(s.objects) }

// Entities returns the live entities in ascending order.
func (s *Scene) Entities() []world.Entity {
	es := make([]world.Entity, 0, len(s.objects))
	for e := range s.objects {
		es = append(es, e)
	}
	slices.Sort(es)
	return es
}

// All iterates the objects in ascending entity order.
func (s *Scene) All() iter.Seq2[world.Entity, *Object] {
	return func(yield func(world.Entity, *Object) bool) {
		for _, e := range s.Entities() {
			if !yield(e, s.objects[e]) {
				return
			}
		}
	}
}

// SetTextMesh replaces the declaration of e. Writing an identical value is
// not a change. It reports whether the declaration changed.
func (s *Scene) SetTextMesh(e world.Entity, tm TextMesh) bool {
	o, ok := s.objects[e]
	if !ok {
		return false
	}
	return world.SetIfChanged(&o.text, &s.clock, tm)
}

// SetText replaces the text of e, keeping its style.
func (s *Scene) SetText(e world.Entity, text string) bool {
	o, ok := s.objects[e]
	if !ok {
		return false
	}
	tm := o.text.Get()
	tm.Text = text
	return world.SetIfChanged(&o.text, &s.clock, tm)
}

// SetStyle replaces the style of e, keeping its text.
func (s *Scene) SetStyle(e world.Entity, st Style) bool {
	o, ok := s.objects[e]
	if !ok {
		return false
	}
	tm := o.text.Get()
	tm.Style = st
	return world.SetIfChanged(&o.text, &s.clock, tm)
}

// TouchText marks the declaration of e changed without altering it, which
// forces regeneration on the next pass.
func (s *Scene) TouchText(e world.Entity) bool {
	o, ok := s.objects[e]
	if !ok {
		return false
	}
	o.text.Mutate(&s.clock, func(*TextMesh) {})
	return true
}

// SetTransform moves e and recomputes its global transform.
func (s *Scene) SetTransform(e world.Entity, t world.Transform) bool {
	o, ok := s.objects[e]
	if !ok {
		return false
	}
	o.Transform = t
	o.Global = world.GlobalFrom(t)
	return true
}

// SetVisibility changes the visibility of e.
func (s *Scene) SetVisibility(e world.Entity, v world.Visibility) bool {
	o, ok := s.objects[e]
	if !ok {
		return false
	}
	o.Visibility = v
	return true
}

// SetMaterial attaches a material to e.
func (s *Scene) SetMaterial(e world.Entity, m asset.Handle[*mesh.Material]) bool {
	o, ok := s.objects[e]
	if !ok {
		return false
	}
	o.Material = m
	return true
}

// Now returns the scene's current change tick.
func (s *Scene) Now() world.Tick { return s.clock.Now() }
