package input

// Point is a pointer or touch position in logical playfield units.
type Point struct {
	X, Y float64
}

type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Button is one on-screen control.
type Button struct {
	Action Action
	Label  string
	Bounds Rect
}

// TouchPad is the set of on-screen controls for pointer-only devices.
type TouchPad struct {
	Buttons []Button
}

// DefaultTouchPad lays out move buttons bottom-left and fire/think buttons
// bottom-right of a width x height playfield.
func DefaultTouchPad(width, height float64) TouchPad {
	const size, gap, margin = 70.0, 12.0, 16.0
	y := height - size - margin
	return TouchPad{Buttons: []Button{
		{Action: ActionLeft, Label: "<", Bounds: Rect{X: margin, Y: y, W: size, H: size}},
		{Action: ActionRight, Label: ">", Bounds: Rect{X: margin + size + gap, Y: y, W: size, H: size}},
		{Action: ActionThink, Label: "?", Bounds: Rect{X: width - margin - 2*size - gap, Y: y, W: size, H: size}},
		{Action: ActionFire, Label: "*", Bounds: Rect{X: width - margin - size, Y: y, W: size, H: size}},
	}}
}

// Resolve returns the actions whose buttons contain at least one point.
func (p TouchPad) Resolve(points []Point) Snapshot {
	var s Snapshot
	for _, b := range p.Buttons {
		for _, pt := range points {
			if b.Bounds.Contains(pt) {
				s.held[b.Action] = true
				break
			}
		}
	}
	return s
}
