package domain

import "fmt"

// Direction is the head movement after a write. Its value is the source letter.
type Direction byte

const (
	Left  Direction = 'L'
	Right Direction = 'R'
	Stay  Direction = 'S'
)

// ParseDirection maps a source letter to a Direction. Letters are case sensitive.
func ParseDirection(r rune) (Direction, error) {
	switch Direction(r) {
	case Left, Right, Stay:
		return Direction(r), nil
	default:
		return 0, fmt.Errorf("invalid direction %q, expected one of L, R, S", r)
	}
}

// String returns the source letter.
func (d Direction) String() string { return string(rune(d)) }

// Name returns the long form of the direction.
func (d Direction) Name() string {
	switch d {
	case Left:
		return "Left"
	case Right:
		return "Right"
	case Stay:
		return "Stay"
	default:
		return "Unknown"
	}
}
