package matcher

import "math"

// countState tracks numeric prefix accumulation. The value is an unsigned
// 32-bit integer; a digit that would push it past the representable range is
// reported as overflow rather than wrapped.
type countState struct {
	value  uint32
	active bool
}

// add folds one digit into the count. It returns false on overflow, leaving
// the state unchanged for the caller to reset.
func (c *countState) add(digit uint8) bool {
	d := uint32(digit)
	if c.value > (math.MaxUint32-d)/10 {
		return false
	}
	c.value = c.value*10 + d
	c.active = true
	return true
}

// get returns the accumulated value and whether any digit was consumed.
func (c *countState) get() (uint32, bool) {
	return c.value, c.active
}

// reset clears the accumulator.
func (c *countState) reset() {
	c.value = 0
	c.active = false
}
