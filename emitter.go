package cursor

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// trigger is the click emitter: the single place a trigger signal becomes a
// selection. The target is resolved and checked again here, so every adapter
// gets the same protection against stale or disqualified targets. It reports
// whether a select was emitted. Repeated triggers are not de-duplicated.
func (c *Cursor) trigger(targetID string) bool {
	_, span := c.tracer.Start(c.ctx, "cursor.select")
	defer span.End()
	span.SetAttributes(
		attribute.String("cursor.id", c.id),
		attribute.String("cursor.mode", c.state.Mode.String()),
		attribute.String("cursor.target", targetID),
	)

	obj := c.scene.Lookup(targetID)
	if obj == nil || !c.scene.Attached(obj) {
		c.log.Debug().Str("target", targetID).Msg("select aborted: target not in scene")
		span.SetStatus(codes.Error, "target not in scene")
		return false
	}
	if !c.selectable(obj) {
		c.log.Debug().Str("target", targetID).Msg("select aborted: target not selectable")
		span.SetStatus(codes.Error, "target not selectable")
		return false
	}

	c.state.Phase = PhaseTriggered
	point := c.point

	if seeker := obj.SeekTarget(); seeker != nil {
		seeker.Seek(SeekRequest{CursorID: c.id, TargetID: targetID, Point: point})
		span.SetAttributes(attribute.Bool("cursor.seek", true))
	} else {
		c.log.Debug().Str("target", targetID).Msg("no seek capability")
	}

	ev := SelectEvent{
		CursorID: c.id,
		TargetID: targetID,
		Target:   obj,
		Point:    point,
		Mode:     c.state.Mode,
	}
	if obj.OnSelect != nil {
		obj.OnSelect(ev)
	}
	// A select handler may dispose the cursor.
	if c.disposed {
		return true
	}
	for _, h := range c.handlers.selects {
		h.fn(ev)
	}
	if c.disposed {
		return true
	}
	c.appearance.Clicked()
	c.emitInteraction(EventSelect, obj, targetID, point)
	c.log.Debug().Str("target", targetID).Stringer("mode", ev.Mode).Msg("select")

	c.ctrl.syncPhase()
	return true
}
