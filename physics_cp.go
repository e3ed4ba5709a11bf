package sunline

import (
	"math"

	"github.com/jakecoffman/cp"
)

const (
	collisionTrigger cp.CollisionType = 1

	defaultBodyMass = 1.0

	// maxStepTravel is the farthest a continuous body may move in one
	// substep. It sits below half the thinnest line collider.
	maxStepTravel = 0.1
	maxSubsteps   = 8
)

type chipmunkBody struct {
	body       *cp.Body
	kind       BodyType
	layer      LayerMask
	continuous bool
	// segments[i] is the collider built from arena segment i.
	segments []*cp.Shape
}

// ChipmunkWorld implements Physics on a Chipmunk2D space.
type ChipmunkWorld struct {
	space   *cp.Space
	bodies  map[BodyID]*chipmunkBody
	nextID  BodyID
	onEnter func(TriggerEnter)
	pending []TriggerEnter
}

// NewChipmunkWorld creates an empty space pulling bodies toward +Y with the
// given gravity.
func NewChipmunkWorld(gravity float64) *ChipmunkWorld {
	w := &ChipmunkWorld{
		space:  cp.NewSpace(),
		bodies: make(map[BodyID]*chipmunkBody),
	}
	w.space.SetGravity(cp.Vector{X: 0, Y: gravity})

	// Shapes may not be added or removed inside callbacks, so enters are
	// queued and delivered once Step returns.
	h := w.space.NewWildcardCollisionHandler(collisionTrigger)
	h.BeginFunc = func(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
		a, b := arb.Shapes()
		if !a.Sensor() {
			a, b = b, a
		}
		trig, ok1 := a.Body().UserData.(BodyID)
		other, ok2 := b.Body().UserData.(BodyID)
		if ok1 && ok2 {
			ob := w.bodies[other]
			if ob != nil {
				w.pending = append(w.pending, TriggerEnter{Trigger: trig, Other: other, Layer: ob.layer})
			}
		}
		return true
	}
	return w
}

func vec(v Vec2) cp.Vector    { return cp.Vector{X: v.X, Y: v.Y} }
func fromVec(v cp.Vector) Vec2 { return Vec2{v.X, v.Y} }

func layerFilter(layer LayerMask) cp.ShapeFilter {
	return cp.ShapeFilter{Group: cp.NO_GROUP, Categories: uint(layer), Mask: cp.ALL_CATEGORIES}
}

func queryFilter(layers LayerMask) cp.ShapeFilter {
	return cp.ShapeFilter{Group: cp.NO_GROUP, Categories: cp.ALL_CATEGORIES, Mask: uint(layers)}
}

func applyMaterial(s *cp.Shape, mat *Material) {
	if mat == nil {
		return
	}
	s.SetFriction(mat.Friction)
	s.SetElasticity(mat.Elasticity)
}

// Raycast implements Physics.
func (w *ChipmunkWorld) Raycast(origin, dir Vec2, maxDistance float64, layers LayerMask) bool {
	filter := queryFilter(layers)
	if dir.IsZero() {
		return w.space.PointQueryNearest(vec(origin), 0, filter).Shape != nil
	}
	end := origin.Add(dir.Normalize().Scale(maxDistance))
	return w.space.SegmentQueryFirst(vec(origin), vec(end), 0, filter).Shape != nil
}

// CreateBody implements Physics.
func (w *ChipmunkWorld) CreateBody(kind BodyType, pos Vec2, layer LayerMask) BodyID {
	var rb *cp.Body
	switch kind {
	case BodyStatic:
		rb = cp.NewStaticBody()
	case BodyKinematic:
		rb = cp.NewKinematicBody()
	default:
		rb = cp.NewBody(defaultBodyMass, defaultBodyMass)
	}
	w.nextID++
	id := w.nextID
	rb.UserData = id
	rb.SetPosition(vec(pos))
	w.space.AddBody(rb)
	w.bodies[id] = &chipmunkBody{body: rb, kind: kind, layer: layer}
	return id
}

// SetAngle implements Physics.
func (w *ChipmunkWorld) SetAngle(body BodyID, angle float64) {
	b := w.bodies[body]
	if b == nil {
		return
	}
	b.body.SetAngle(angle)
}

func (w *ChipmunkWorld) addShape(b *chipmunkBody, s *cp.Shape) *cp.Shape {
	s.SetFilter(layerFilter(b.layer))
	return w.space.AddShape(s)
}

// AddBox implements Physics.
func (w *ChipmunkWorld) AddBox(body BodyID, width, height float64, mat *Material) {
	b := w.bodies[body]
	if b == nil {
		return
	}
	s := cp.NewBox(b.body, width, height, 0)
	applyMaterial(s, mat)
	w.addShape(b, s)
}

// AddPolygon implements Physics.
func (w *ChipmunkWorld) AddPolygon(body BodyID, verts []Vec2, sensor bool) {
	b := w.bodies[body]
	if b == nil || len(verts) < 3 {
		return
	}
	cv := make([]cp.Vector, len(verts))
	for i, v := range verts {
		cv[i] = vec(v)
	}
	s := cp.NewPolyShape(b.body, len(cv), cv, cp.NewTransformIdentity(), 0)
	if sensor {
		s.SetSensor(true)
		s.SetCollisionType(collisionTrigger)
	}
	w.addShape(b, s)
}

// AddSegmentColliders implements Physics.
func (w *ChipmunkWorld) AddSegmentColliders(body BodyID, arena *SegmentArena, from int) {
	b := w.bodies[body]
	if b == nil {
		return
	}
	for i := max(from, len(b.segments)); i < arena.Len(); i++ {
		seg := arena.At(i)
		corners := seg.Corners()
		cv := make([]cp.Vector, len(corners))
		for j, c := range corners {
			cv[j] = vec(c)
		}
		s := cp.NewPolyShape(b.body, len(cv), cv, cp.NewTransformIdentity(), 0)
		applyMaterial(s, seg.Material)
		b.segments = append(b.segments, w.addShape(b, s))
	}
}

// SyncMaterials implements Physics.
func (w *ChipmunkWorld) SyncMaterials(body BodyID, arena *SegmentArena) {
	b := w.bodies[body]
	if b == nil {
		return
	}
	for i, s := range b.segments {
		if i >= arena.Len() {
			break
		}
		applyMaterial(s, arena.At(i).Material)
	}
}

// SetMaterial implements Physics.
func (w *ChipmunkWorld) SetMaterial(body BodyID, mat *Material) {
	b := w.bodies[body]
	if b == nil || mat == nil {
		return
	}
	b.body.EachShape(func(s *cp.Shape) { applyMaterial(s, mat) })
}

// velocityFunc applies gravity scale and drag on top of the default
// integrator.
func velocityFunc(p BodyParams) cp.BodyVelocityFunc {
	return func(rb *cp.Body, gravity cp.Vector, damping, dt float64) {
		cp.BodyUpdateVelocity(rb, gravity.Mult(p.GravityScale), damping, dt)
		if p.LinearDrag > 0 {
			rb.SetVelocityVector(rb.Velocity().Mult(1 / (1 + dt*p.LinearDrag)))
		}
		if p.AngularDrag > 0 {
			rb.SetAngularVelocity(rb.AngularVelocity() / (1 + dt*p.AngularDrag))
		}
	}
}

// SetDynamic implements Physics. The mass is spread evenly over the body's
// colliders so the center of gravity follows the drawn shape.
func (w *ChipmunkWorld) SetDynamic(body BodyID, p BodyParams) {
	b := w.bodies[body]
	if b == nil || b.kind == BodyDynamic {
		return
	}
	if p.Mass <= 0 {
		p.Mass = defaultBodyMass
	}
	var shapes []*cp.Shape
	b.body.EachShape(func(s *cp.Shape) { shapes = append(shapes, s) })
	for _, s := range shapes {
		s.SetMass(p.Mass / float64(len(shapes)))
	}
	b.body.SetType(cp.BODY_DYNAMIC)
	if len(shapes) == 0 {
		b.body.SetMass(p.Mass)
		b.body.SetMoment(p.Mass)
	}
	b.body.SetVelocityUpdateFunc(velocityFunc(p))
	b.kind = BodyDynamic
	b.continuous = p.Continuous
}

// ApplyImpulse implements Physics.
func (w *ChipmunkWorld) ApplyImpulse(body BodyID, impulse Vec2) {
	b := w.bodies[body]
	if b == nil || b.kind != BodyDynamic {
		return
	}
	m := b.body.Mass()
	if m <= 0 || math.IsInf(m, 0) {
		return
	}
	b.body.SetVelocityVector(b.body.Velocity().Add(vec(impulse.Scale(1 / m))))
}

// SpawnParticle implements Physics.
func (w *ChipmunkWorld) SpawnParticle(pos Vec2, radius float64, p BodyParams) BodyID {
	if p.Mass <= 0 {
		p.Mass = defaultBodyMass
	}
	rb := cp.NewBody(p.Mass, cp.MomentForCircle(p.Mass, 0, radius, cp.Vector{}))
	w.nextID++
	id := w.nextID
	rb.UserData = id
	rb.SetPosition(vec(pos))
	rb.SetVelocityUpdateFunc(velocityFunc(p))
	w.space.AddBody(rb)
	b := &chipmunkBody{body: rb, kind: BodyDynamic, layer: LayerParticle, continuous: p.Continuous}
	w.bodies[id] = b
	s := cp.NewCircle(rb, radius, cp.Vector{})
	s.SetFriction(0.3)
	w.addShape(b, s)
	return id
}

// Freeze implements Physics.
func (w *ChipmunkWorld) Freeze(body BodyID, pos Vec2) {
	b := w.bodies[body]
	if b == nil {
		return
	}
	b.body.SetType(cp.BODY_KINEMATIC)
	b.body.SetPosition(vec(pos))
	b.body.SetVelocity(0, 0)
	b.body.SetAngularVelocity(0)
	b.body.EachShape(func(s *cp.Shape) {
		s.SetFilter(cp.ShapeFilter{Group: cp.NO_GROUP})
	})
	b.kind = BodyKinematic
	b.continuous = false
}

// DestroyBody implements Physics.
func (w *ChipmunkWorld) DestroyBody(body BodyID) {
	b := w.bodies[body]
	if b == nil {
		return
	}
	var shapes []*cp.Shape
	b.body.EachShape(func(s *cp.Shape) { shapes = append(shapes, s) })
	for _, s := range shapes {
		w.space.RemoveShape(s)
	}
	w.space.RemoveBody(b.body)
	delete(w.bodies, body)
}

// Transform implements Physics.
func (w *ChipmunkWorld) Transform(body BodyID) (Vec2, float64) {
	b := w.bodies[body]
	if b == nil {
		return Vec2{}, 0
	}
	return fromVec(b.body.Position()), b.body.Angle()
}

// LocalToWorld implements Physics.
func (w *ChipmunkWorld) LocalToWorld(body BodyID, local Vec2) Vec2 {
	b := w.bodies[body]
	if b == nil {
		return local
	}
	return fromVec(b.body.LocalToWorld(vec(local)))
}

// Velocity returns the body's linear velocity.
func (w *ChipmunkWorld) Velocity(body BodyID) Vec2 {
	b := w.bodies[body]
	if b == nil {
		return Vec2{}
	}
	return fromVec(b.body.Velocity())
}

// Type implements Physics.
func (w *ChipmunkWorld) Type(body BodyID) BodyType {
	b := w.bodies[body]
	if b == nil {
		return BodyStatic
	}
	return b.kind
}

// BodyCount returns the number of live bodies.
func (w *ChipmunkWorld) BodyCount() int { return len(w.bodies) }

// OnTriggerEnter implements Physics.
func (w *ChipmunkWorld) OnTriggerEnter(fn func(TriggerEnter)) { w.onEnter = fn }

// substeps returns how many substeps keep every continuous body under
// maxStepTravel per step.
func (w *ChipmunkWorld) substeps(dt float64) int {
	var fastest float64
	for _, b := range w.bodies {
		if b.continuous && b.kind == BodyDynamic {
			fastest = max(fastest, b.body.Velocity().Length())
		}
	}
	n := int(math.Ceil(fastest * dt / maxStepTravel))
	return min(max(n, 1), maxSubsteps)
}

// Step implements Physics.
func (w *ChipmunkWorld) Step(dt float64) {
	if dt <= 0 {
		return
	}
	n := w.substeps(dt)
	for range n {
		w.space.Step(dt / float64(n))
	}
	pending := w.pending
	w.pending = nil
	for _, e := range pending {
		if w.onEnter != nil {
			w.onEnter(e)
		}
	}
}
