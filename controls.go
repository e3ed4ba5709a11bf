package sunline

// ControlID names a UI control.
type ControlID string

// Controls the level screens expose.
const (
	ControlPause   ControlID = "pause"
	ControlResume  ControlID = "resume"
	ControlRestart ControlID = "restart"
	ControlHome    ControlID = "home"
	ControlNext    ControlID = "next"
)

// Binding connects a control to its action.
type Binding struct {
	Control ControlID
	Handler func()
}

// Button is a clickable screen rectangle.
type Button struct {
	ID    ControlID
	Label string
	// Bounds is in screen pixels.
	Bounds  Rect
	Visible bool

	handler func()
}

// Press runs the bound action. Unbound buttons do nothing.
func (b *Button) Press() {
	if b.handler != nil {
		b.handler()
	}
}

// Bound reports whether an action is attached.
func (b *Button) Bound() bool { return b.handler != nil }

// Controls is an ordered set of buttons. Later buttons are hit first.
type Controls struct {
	buttons []*Button
}

// Add appends b.
func (c *Controls) Add(b *Button) { c.buttons = append(c.buttons, b) }

// Buttons returns every button in draw order.
func (c *Controls) Buttons() []*Button { return c.buttons }

// Find returns the button with id, or nil.
func (c *Controls) Find(id ControlID) *Button {
	for _, b := range c.buttons {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// HitTest returns the topmost visible button containing the screen point.
func (c *Controls) HitTest(sx, sy float64) *Button {
	for i := len(c.buttons) - 1; i >= 0; i-- {
		b := c.buttons[i]
		if b.Visible && b.Bounds.Contains(sx, sy) {
			return b
		}
	}
	return nil
}

// SetVisible shows or hides every button with one of ids.
func (c *Controls) SetVisible(visible bool, ids ...ControlID) {
	for _, id := range ids {
		if b := c.Find(id); b != nil {
			b.Visible = visible
		}
	}
}

// BindControls attaches every binding to its button once, in order. A
// binding naming a missing control is logged and skipped. It returns the
// number of bindings attached.
func BindControls(c *Controls, bindings []Binding) int {
	n := 0
	for _, bnd := range bindings {
		b := c.Find(bnd.Control)
		if b == nil {
			logf("sunline: control %q not found; binding skipped", bnd.Control)
			continue
		}
		if bnd.Handler == nil {
			logf("sunline: control %q has no handler", bnd.Control)
			continue
		}
		b.handler = bnd.Handler
		n++
	}
	return n
}
