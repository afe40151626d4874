package cursor

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Ring scales used by Appearance.
const (
	RestScale  = 1.0
	HoverScale = 1.25
	FusedScale = 0.2

	settleSeconds = 0.15
	pulseSeconds  = 0.25
)

// Appearance is the cursor's visual feedback state: a ring that grows on
// hover, shrinks over the fuse duration and pulses on select. Hosts read the
// exported fields when drawing. The cursor calls Update every frame; there is
// no other animation manager.
type Appearance struct {
	Scale    float64
	Pulse    float64 // 1 right after a select, easing to 0
	Hovering bool
	Fusing   bool
	Clicks   int

	scaleTween *gween.Tween
	pulseTween *gween.Tween
}

// NewAppearance returns an appearance at rest.
func NewAppearance() *Appearance {
	return &Appearance{Scale: RestScale}
}

// Hover marks the ring as hovering (or not) and eases it to the matching
// scale. A running fuse shrink is left alone.
func (a *Appearance) Hover(on bool) {
	a.Hovering = on
	if a.Fusing {
		return
	}
	a.tweenScale(a.restingScale(), settleSeconds, ease.OutQuad)
}

// FuseStart shrinks the ring linearly over d.
func (a *Appearance) FuseStart(d time.Duration) {
	a.Fusing = true
	a.tweenScale(FusedScale, float32(d.Seconds()), ease.Linear)
}

// FuseCancel stops a fuse shrink and eases back to the resting scale.
func (a *Appearance) FuseCancel() {
	if !a.Fusing {
		return
	}
	a.Fusing = false
	a.tweenScale(a.restingScale(), settleSeconds, ease.OutQuad)
}

// Clicked starts the select pulse.
func (a *Appearance) Clicked() {
	a.Clicks++
	a.Fusing = false
	a.Pulse = 1
	a.pulseTween = gween.New(1, 0, pulseSeconds, ease.OutQuad)
	a.tweenScale(a.restingScale(), settleSeconds, ease.OutBack)
}

// Update advances the running tweens by dt.
func (a *Appearance) Update(dt time.Duration) {
	step := float32(dt.Seconds())
	if a.scaleTween != nil {
		v, done := a.scaleTween.Update(step)
		a.Scale = float64(v)
		if done {
			a.scaleTween = nil
		}
	}
	if a.pulseTween != nil {
		v, done := a.pulseTween.Update(step)
		a.Pulse = float64(v)
		if done {
			a.pulseTween = nil
		}
	}
}

func (a *Appearance) restingScale() float64 {
	if a.Hovering {
		return HoverScale
	}
	return RestScale
}

func (a *Appearance) tweenScale(to float64, seconds float32, fn ease.TweenFunc) {
	if seconds <= 0 {
		a.Scale = to
		a.scaleTween = nil
		return
	}
	a.scaleTween = gween.New(float32(a.Scale), float32(to), seconds, fn)
}
