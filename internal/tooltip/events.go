package tooltip

// Enter shows the tooltip for a marker the pointer moved onto. Unknown keys
// are ignored.
func (c *Controller) Enter(markerID, key string, x, y float64) State {
	if c.reg == nil {
		return c.state
	}
	term, ok := c.reg.Lookup(key)
	if !ok {
		return c.state
	}
	c.Show(term, x, y)
	c.state.MarkerID = markerID
	return c.state
}

// Move follows the pointer while a marker's tooltip is shown.
func (c *Controller) Move(x, y float64) (State, bool) {
	if c.state.MarkerID == "" {
		return c.state, false
	}
	return c.Reposition(x, y)
}

// Leave handles the pointer leaving the active marker. relatedID is the
// marker the pointer moved onto, or "" when it left markers altogether;
// moving onto another marker leaves the update to that marker's Enter.
func (c *Controller) Leave(relatedID string) State {
	if c.state.MarkerID == "" || relatedID != "" {
		return c.state
	}
	return c.Hide()
}

// FocusIn shows the tooltip for a keyboard-focused marker, anchored below
// the centre of its bounding rectangle.
func (c *Controller) FocusIn(markerID, key string, bounds Rect) State {
	return c.Enter(markerID, key, bounds.X+bounds.W/2, bounds.Y+bounds.H+focusOffset)
}

// FocusOut hides the tooltip when focus leaves a marker. A stale event for
// a marker that is no longer active is ignored.
func (c *Controller) FocusOut(markerID string) State {
	if markerID != "" && c.state.MarkerID != "" && markerID != c.state.MarkerID {
		return c.state
	}
	return c.Hide()
}
