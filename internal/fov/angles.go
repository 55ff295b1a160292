package fov

// angles is the angular footprint of a cell within its octant, normalized so
// that a line at distance d is divided into d equal spans.
type angles struct {
	start, middle, end float64
}

func cellAngles(i, dist int) angles {
	span := 1.0 / float64(dist)
	start := float64(i) * span
	return angles{
		start:  start,
		middle: start + span/2,
		end:    start + span,
	}
}

// blocked reports whether angle a lies inside any wall. Bounds are inclusive.
func blocked(a float64, walls []angles) bool {
	for _, w := range walls {
		if w.start <= a && a <= w.end {
			return true
		}
	}
	return false
}

// isVisible tests a cell against the accumulated walls. Opaque cells show if
// any sample angle is clear. Transparent cells need two neighbouring samples
// clear, so light does not leak around corners.
func isVisible(a angles, walls []angles, opaque bool) bool {
	start := !blocked(a.start, walls)
	middle := !blocked(a.middle, walls)
	end := !blocked(a.end, walls)

	if opaque {
		return start || middle || end
	}
	return (start && middle) || (middle && end)
}

// addWall merges w into walls. Every existing wall that overlaps the growing
// interval is absorbed into it; the rest are kept as they are.
func addWall(walls []angles, w angles) []angles {
	merged := w
	kept := make([]angles, 0, len(walls)+1)
	for _, old := range walls {
		if !combine(old, &merged) {
			kept = append(kept, old)
		}
	}
	return append(kept, merged)
}

// combine widens next to cover old when the two intervals overlap or touch.
func combine(old angles, next *angles) bool {
	switch {
	case old.start == next.start:
		next.end = max(old.end, next.end)
		return true
	case old.start < next.start:
		if old.end >= next.start {
			next.start = old.start
			next.end = max(old.end, next.end)
			return true
		}
	default:
		if next.end >= old.start {
			next.end = max(old.end, next.end)
			return true
		}
	}
	return false
}
