package sunline

import (
	"fmt"
	"math"
	"testing"
)

const tol = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func approxVec(a, b Vec2, eps float64) bool {
	return approxEqual(a.X, b.X, eps) && approxEqual(a.Y, b.Y, eps)
}

// captureLogs collects Logf output for the duration of the test.
func captureLogs(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	prev := Logf
	Logf = func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}
	t.Cleanup(func() { Logf = prev })
	return &lines
}

type fakeBody struct {
	kind     BodyType
	pos      Vec2
	angle    float64
	layer    LayerMask
	boxes    int
	polygon  []Vec2
	sensor   bool
	segments int
	material *Material
	params   BodyParams
	impulses []Vec2
	frozen   bool
}

type rayCall struct {
	origin, dir Vec2
	maxDistance float64
	layers      LayerMask
}

// fakePhysics records calls. Raycasts hit only when hit says so.
type fakePhysics struct {
	bodies    map[BodyID]*fakeBody
	next      BodyID
	destroyed []BodyID
	rays      []rayCall
	syncs     int
	steps     int
	onEnter   func(TriggerEnter)

	hit func(origin, dir Vec2, maxDistance float64, layers LayerMask) bool
}

func newFakePhysics() *fakePhysics {
	return &fakePhysics{bodies: make(map[BodyID]*fakeBody)}
}

func (f *fakePhysics) Raycast(origin, dir Vec2, maxDistance float64, layers LayerMask) bool {
	f.rays = append(f.rays, rayCall{origin, dir, maxDistance, layers})
	return f.hit != nil && f.hit(origin, dir, maxDistance, layers)
}

func (f *fakePhysics) CreateBody(kind BodyType, pos Vec2, layer LayerMask) BodyID {
	f.next++
	f.bodies[f.next] = &fakeBody{kind: kind, pos: pos, layer: layer}
	return f.next
}

func (f *fakePhysics) SetAngle(body BodyID, angle float64) {
	if b := f.bodies[body]; b != nil {
		b.angle = angle
	}
}

func (f *fakePhysics) AddBox(body BodyID, width, height float64, mat *Material) {
	if b := f.bodies[body]; b != nil {
		b.boxes++
		if mat != nil {
			b.material = mat
		}
	}
}

func (f *fakePhysics) AddPolygon(body BodyID, verts []Vec2, sensor bool) {
	if b := f.bodies[body]; b != nil {
		b.polygon = verts
		b.sensor = sensor
	}
}

func (f *fakePhysics) AddSegmentColliders(body BodyID, arena *SegmentArena, from int) {
	if b := f.bodies[body]; b != nil {
		b.segments += arena.Len() - from
	}
}

func (f *fakePhysics) SyncMaterials(body BodyID, arena *SegmentArena) { f.syncs++ }

func (f *fakePhysics) SetMaterial(body BodyID, mat *Material) {
	if b := f.bodies[body]; b != nil && mat != nil {
		b.material = mat
	}
}

func (f *fakePhysics) SetDynamic(body BodyID, p BodyParams) {
	if b := f.bodies[body]; b != nil {
		b.kind = BodyDynamic
		b.params = p
	}
}

func (f *fakePhysics) ApplyImpulse(body BodyID, impulse Vec2) {
	if b := f.bodies[body]; b != nil {
		b.impulses = append(b.impulses, impulse)
	}
}

func (f *fakePhysics) SpawnParticle(pos Vec2, radius float64, p BodyParams) BodyID {
	f.next++
	f.bodies[f.next] = &fakeBody{kind: BodyDynamic, pos: pos, layer: LayerParticle, params: p}
	return f.next
}

func (f *fakePhysics) Freeze(body BodyID, pos Vec2) {
	if b := f.bodies[body]; b != nil {
		b.kind = BodyKinematic
		b.pos = pos
		b.frozen = true
	}
}

func (f *fakePhysics) DestroyBody(body BodyID) {
	if _, ok := f.bodies[body]; ok {
		delete(f.bodies, body)
		f.destroyed = append(f.destroyed, body)
	}
}

func (f *fakePhysics) Transform(body BodyID) (Vec2, float64) {
	if b := f.bodies[body]; b != nil {
		return b.pos, b.angle
	}
	return Vec2{}, 0
}

func (f *fakePhysics) LocalToWorld(body BodyID, local Vec2) Vec2 {
	if b := f.bodies[body]; b != nil {
		return RigidTransform(b.pos, b.angle).Apply(local)
	}
	return local
}

func (f *fakePhysics) Type(body BodyID) BodyType {
	if b := f.bodies[body]; b != nil {
		return b.kind
	}
	return BodyStatic
}

func (f *fakePhysics) OnTriggerEnter(fn func(TriggerEnter)) { f.onEnter = fn }

func (f *fakePhysics) Step(dt float64) { f.steps++ }

// enter delivers a trigger enter as Step would.
func (f *fakePhysics) enter(trigger, other BodyID) {
	if f.onEnter == nil {
		return
	}
	layer := LayerDefault
	if b := f.bodies[other]; b != nil {
		layer = b.layer
	}
	f.onEnter(TriggerEnter{Trigger: trigger, Other: other, Layer: layer})
}

// fakeStar records the last SetLit value.
type fakeStar struct {
	lit   bool
	calls int
}

func (s *fakeStar) SetLit(lit bool) {
	s.lit = lit
	s.calls++
}

// fakeBar records the last fraction.
type fakeBar struct {
	fraction float64
	calls    int
}

func (b *fakeBar) SetFraction(f float64) {
	b.fraction = f
	b.calls++
}

type fakePanel struct {
	shown, hidden int
	stars         [3]*fakeStar
}

func newFakePanel() *fakePanel {
	return &fakePanel{stars: [3]*fakeStar{{}, {}, {}}}
}

func (p *fakePanel) Show() { p.shown++ }
func (p *fakePanel) Hide() { p.hidden++ }
func (p *fakePanel) Stars() [3]StarIndicator {
	return [3]StarIndicator{p.stars[0], p.stars[1], p.stars[2]}
}

// eventLog records published events.
type eventLog struct {
	events []GameEvent
}

func (l *eventLog) Publish(e GameEvent) { l.events = append(l.events, e) }

func (l *eventLog) count(t EventType) int {
	n := 0
	for _, e := range l.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

// testConfig returns the default level with a sun origin and a tree.
func testConfig() LevelConfig {
	cfg := DefaultLevelConfig()
	o := Vec2{0, -4}
	cfg.Sunshine.Origin = &o
	cfg.Collector = Vec2{4, 0}
	return cfg
}
