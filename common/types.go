// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

// Point is a 2D position in page (or window) coordinates.
type Point struct {
	X float64
	Y float64
}

// Sub returns the component-wise difference p - q.
func (p Point) Sub(q Point) Movement {
	return Movement{DX: p.X - q.X, DY: p.Y - q.Y}
}

// Movement is a transient 2D pointer delta accumulated between two frame ticks.
// The zero value means "no movement".
type Movement struct {
	// DX is the horizontal delta; positive moves right.
	DX float64
	// DY is the vertical delta; positive moves down.
	DY float64
}

// IsZero reports whether the movement has no horizontal or vertical component.
func (m Movement) IsZero() bool {
	return m.DX == 0 && m.DY == 0
}

// Scale returns the movement multiplied by s on both axes.
func (m Movement) Scale(s float64) Movement {
	return Movement{DX: m.DX * s, DY: m.DY * s}
}
