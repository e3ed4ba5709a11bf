package sunline

// Material is a physics surface shared by colliders.
type Material struct {
	Name       string  `json:"name"`
	Friction   float64 `json:"friction"`
	Elasticity float64 `json:"elasticity"`
}

// BodyParams are the tuned rigid-body settings applied when a body turns
// dynamic.
type BodyParams struct {
	// Mass is the total body mass. Values <= 0 are replaced by the default.
	Mass float64 `json:"mass"`
	// GravityScale multiplies world gravity for this body.
	GravityScale float64 `json:"gravityScale"`
	// LinearDrag damps linear velocity: v *= 1 / (1 + dt*LinearDrag).
	LinearDrag float64 `json:"linearDrag"`
	// AngularDrag damps angular velocity the same way.
	AngularDrag float64 `json:"angularDrag"`
	// Continuous enables swept collision so fast bodies cannot pass
	// through thin colliders between steps.
	Continuous bool `json:"continuous"`
}

// TriggerEnter is delivered when a body first overlaps a trigger region.
type TriggerEnter struct {
	Trigger BodyID
	Other   BodyID
	Layer   LayerMask
}

// Physics is the rigid-body substrate a Level drives. Implementations own
// every body and collider; the core refers to them only by BodyID and feeds
// collider geometry through a SegmentArena.
//
// All methods are called from the frame goroutine. Trigger callbacks are
// delivered from Step on the same goroutine after the simulation has
// advanced, so handlers may create, freeze, or destroy bodies.
type Physics interface {
	// Raycast reports whether a ray from origin along dir, at most
	// maxDistance long, hits a collider on any of the given layers. A zero
	// dir is a probe along the view axis, which in 2D reduces to testing
	// whether origin lies inside a collider.
	Raycast(origin, dir Vec2, maxDistance float64, layers LayerMask) bool

	// CreateBody adds an empty body of the given type at pos. Colliders
	// added later inherit layer.
	CreateBody(kind BodyType, pos Vec2, layer LayerMask) BodyID
	// SetAngle rotates body about its origin. Call it before adding colliders
	// to a static body.
	SetAngle(body BodyID, angle float64)
	// AddBox attaches a box collider centered on the body origin.
	AddBox(body BodyID, width, height float64, mat *Material)
	// AddPolygon attaches a convex polygon collider in body-local
	// coordinates. Sensor polygons report overlaps through OnTriggerEnter
	// without generating contacts.
	AddPolygon(body BodyID, verts []Vec2, sensor bool)
	// AddSegmentColliders creates box colliders for arena segments
	// [from, arena.Len()) in body-local coordinates.
	AddSegmentColliders(body BodyID, arena *SegmentArena, from int)
	// SyncMaterials reapplies arena segment materials to the colliders
	// created from them.
	SyncMaterials(body BodyID, arena *SegmentArena)
	// SetMaterial assigns mat to every collider of body. A nil mat is
	// ignored.
	SetMaterial(body BodyID, mat *Material)

	// SetDynamic switches body to dynamic and applies p.
	SetDynamic(body BodyID, p BodyParams)
	// ApplyImpulse changes the body's momentum by impulse at its center of
	// gravity.
	ApplyImpulse(body BodyID, impulse Vec2)
	// SpawnParticle creates a dynamic circle body at pos.
	SpawnParticle(pos Vec2, radius float64, p BodyParams) BodyID
	// Freeze makes body kinematic at pos, clears its velocity, and disables
	// its colliders.
	Freeze(body BodyID, pos Vec2)
	// DestroyBody removes body and its colliders. Unknown ids are ignored.
	DestroyBody(body BodyID)

	// Transform returns the body position and rotation in radians.
	Transform(body BodyID) (pos Vec2, angle float64)
	// LocalToWorld converts a body-local point to world space.
	LocalToWorld(body BodyID, local Vec2) Vec2
	// Type returns the body's current type.
	Type(body BodyID) BodyType

	// OnTriggerEnter registers the trigger handler, replacing any previous
	// one.
	OnTriggerEnter(fn func(TriggerEnter))
	// Step advances the simulation by dt seconds.
	Step(dt float64)
}
