package core

// Box is an axis-aligned rectangle in unscaled pixel units
// Coordinates are relative to the owning entity's anchor unless translated
type Box struct {
	X, Y          int // Top-left corner
	Width, Height int
}

// Right returns the exclusive right edge
func (b Box) Right() int {
	return b.X + b.Width
}

// Bottom returns the exclusive bottom edge
func (b Box) Bottom() int {
	return b.Y + b.Height
}

// Empty reports whether the box has no area
func (b Box) Empty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// CloneBoxes returns a private copy of a box set
func CloneBoxes(boxes []Box) []Box {
	if boxes == nil {
		return nil
	}
	out := make([]Box, len(boxes))
	copy(out, boxes)
	return out
}
