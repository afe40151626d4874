package cursor

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/xwill007/cursor"

// rayOrigin selects where the internal raycast takes its ray from.
type rayOrigin uint8

const (
	rayPointer rayOrigin = iota // host pointing device (mouse, touch)
	raySession                  // immersive session primary ray (head or controller)
)

// Option configures a Cursor at construction.
type Option func(*Cursor)

// WithLogger sets the logger. The default writes warnings to stderr.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Cursor) { c.log = l }
}

// WithSpeechRecognizer sets the speech service used by voice mode. Without
// one, voice mode stays inert and logs a warning.
func WithSpeechRecognizer(r SpeechRecognizer) Option {
	return func(c *Cursor) { c.speech = r }
}

// WithSession attaches the cursor to a shared immersive session. Without
// one, the cursor gets its own session, available from Cursor.Session.
func WithSession(s *Session) Option {
	return func(c *Cursor) { c.session = s }
}

// WithTracer sets the tracer used for select spans. The default is the
// global otel tracer provider.
func WithTracer(t trace.Tracer) Option {
	return func(c *Cursor) { c.tracer = t }
}

// Cursor selects scene objects through whichever input mode is active.
// All methods except PostKey must be called from the host thread, the same
// goroutine that calls Update.
type Cursor struct {
	id     string
	cfg    Config
	scene  *Scene
	log    zerolog.Logger
	tracer trace.Tracer

	ctx    context.Context
	cancel context.CancelFunc

	sched      scheduler
	state      CursorState
	handlers   handlerRegistry
	keyboard   keyboard
	inbox      inbox
	inboxBuf   []inboxItem
	appearance *Appearance

	ctrl controller

	speech     SpeechRecognizer
	speechSeq  uint64
	liveSpeech uint64 // generation of the running speech session, 0 for none

	session    *Session
	sessionSub *sessionSub

	point         Vec3 // latest intersection point
	origin        rayOrigin
	pointerRay    Ray
	hasPointerRay bool

	disposed bool
}

// New creates a cursor over scene. cfg is normalized first; every replaced
// value is logged as a warning. The initial mode's adapter is installed
// before New returns.
func New(id string, scene *Scene, cfg Config, opts ...Option) *Cursor {
	if scene == nil {
		scene = NewScene()
	}
	c := &Cursor{
		id:         id,
		scene:      scene,
		log:        zerolog.New(os.Stderr).Level(zerolog.WarnLevel).With().Timestamp().Logger(),
		appearance: NewAppearance(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With().Str("cursor", id).Logger()
	if c.tracer == nil {
		c.tracer = otel.Tracer(tracerName)
	}
	if c.session == nil {
		c.session = NewSession()
	}
	c.ctx, c.cancel = context.WithCancel(context.Background())

	normalized, problems := cfg.Normalize()
	for _, p := range problems {
		c.log.Warn().Str("field", p.Field).Interface("value", p.Value).Msg(p.Message)
	}
	c.cfg = normalized

	c.ctrl.c = c
	c.ctrl.dwell = dwellTimer{
		sched:    &c.sched,
		validate: c.validTarget,
		onStale: func(id string) {
			c.log.Debug().Str("target", id).Msg("dwell expired on stale target")
			c.appearance.FuseCancel()
			c.ctrl.syncPhase()
		},
	}
	c.sessionSub = c.session.subscribe(c.ctrl.onSessionEnter, c.ctrl.onSessionExit)

	c.state.Mode = c.cfg.Mode
	if c.session.Active() {
		c.ctrl.onSessionEnter()
	} else {
		c.ctrl.setMode(c.cfg.Mode)
	}
	return c
}

// ID returns the cursor id.
func (c *Cursor) ID() string { return c.id }

// Config returns the normalized configuration.
func (c *Cursor) Config() Config { return c.cfg }

// Scene returns the scene the cursor selects from.
func (c *Cursor) Scene() *Scene { return c.scene }

// Session returns the immersive session the cursor observes.
func (c *Cursor) Session() *Session { return c.session }

// Appearance returns the cursor's feedback model.
func (c *Cursor) Appearance() *Appearance { return c.appearance }

// State returns a snapshot of the cursor state.
func (c *Cursor) State() CursorState { return c.state }

// Mode returns the active mode.
func (c *Cursor) Mode() Mode { return c.state.Mode }

// SetMode switches the input mode. The previous mode is fully torn down
// (timers canceled, listeners removed, speech stopped) before the new one is
// installed. Setting the current mode re-installs it.
func (c *Cursor) SetMode(m Mode) {
	if c.disposed {
		return
	}
	c.ctrl.setMode(m)
}

// SetPointerRay updates the pointing-device ray used by the internal raycast.
func (c *Cursor) SetPointerRay(r Ray) {
	c.pointerRay = r
	c.hasPointerRay = true
}

// ClearPointerRay removes the pointing-device ray, e.g. when the mouse
// leaves the window.
func (c *Cursor) ClearPointerRay() {
	c.hasPointerRay = false
}

// activeRay returns the ray the current adapter aims with.
func (c *Cursor) activeRay() (Ray, bool) {
	if c.origin == raySession {
		if r, ok := c.session.PrimaryRay(); ok {
			return r, true
		}
	}
	if c.hasPointerRay {
		return c.pointerRay, true
	}
	return Ray{}, false
}

// Click delivers a native pointer click (press and release on the host).
// Only pointer mode, directly or through auto mode, acts on it.
func (c *Cursor) Click() {
	if c.disposed || c.ctrl.active == nil {
		return
	}
	c.ctrl.active.click()
}

// Update advances the cursor by one frame: queued input is applied, the
// active ray is cast into the scene, and due timers fire.
func (c *Cursor) Update(dt time.Duration) {
	if c.disposed {
		return
	}
	c.drainInbox()
	if ray, ok := c.activeRay(); ok {
		if hit, found := c.scene.Raycast(ray, c.cfg.RaycastFar); found {
			c.HitTestUpdate(hit.Object.ID, hit.Point)
		} else {
			c.HitTestUpdate("", Vec3{})
		}
	}
	c.sched.advance(dt)
	c.appearance.Update(dt)
}

// Dispose tears the cursor down: the active adapter is uninstalled, every
// timer canceled, the speech session stopped and the session subscription
// removed. The cursor is inert afterwards.
func (c *Cursor) Dispose() {
	if c.disposed {
		return
	}
	c.ctrl.dispose()
	c.sessionSub.remove()
	c.sessionSub = nil
	c.sched.cancelAll()
	c.keyboard.clear()
	c.inbox.drain(nil)
	c.cancel()
	c.state = CursorState{}
	c.disposed = true
}

// --- Selectable predicate ---

func (c *Cursor) selectable(o *Object) bool {
	return o != nil && o.HasTag(c.cfg.SelectableTag)
}

func (c *Cursor) selectableID(id string) bool {
	return c.selectable(c.scene.Lookup(id))
}

// validTarget is the expiry re-validation: the target must still be the
// intersected object, still selectable and still attached to the scene.
func (c *Cursor) validTarget(id string) bool {
	if id == "" || id != c.state.Intersected {
		return false
	}
	o := c.scene.Lookup(id)
	return c.scene.Attached(o) && c.selectable(o)
}
