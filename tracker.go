package cursor

// HitTestUpdate reports the object currently under the cursor ray ("" for
// none) and the intersection point. Scene raycasters outside this package
// call it per render tick; Update calls it with the internal raycast result.
//
// A change of target fires hover-leave for the old object, then updates the
// intersected reference, then fires hover-enter for the new one. A dwell
// running on the old target is canceled before hover-leave is delivered.
func (c *Cursor) HitTestUpdate(targetID string, point Vec3) {
	if c.disposed {
		return
	}
	if targetID != "" {
		c.point = point
	}
	old := c.state.Intersected
	if targetID == old {
		return
	}

	if old != "" {
		oldObj := c.scene.Lookup(old)
		c.ctrl.hoverLeave(old)
		c.appearance.Hover(false)
		c.fireHoverLeave(oldObj, old, point)
	}

	c.state.Intersected = targetID

	if targetID != "" {
		obj := c.scene.Lookup(targetID)
		c.appearance.Hover(true)
		c.fireHoverEnter(obj, targetID, point)
		// A hover-enter handler may have moved the cursor on already.
		if c.state.Intersected == targetID {
			c.ctrl.hoverEnter(targetID)
		}
	}
	c.ctrl.syncPhase()
}

// Point returns the latest intersection point.
func (c *Cursor) Point() Vec3 { return c.point }
