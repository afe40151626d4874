package cursor

// CursorState is the mutable selection state of one cursor. It is owned by
// the mode controller; Intersected changes only through the intersection
// tracker.
type CursorState struct {
	Mode Mode
	// Dwelling is true only while a dwell is running against Intersected.
	Dwelling bool
	// Intersected is the id of the currently intersected object, "" for none.
	Intersected string
	// PreSessionMode is the mode saved by an immersive-session override.
	// It is meaningful only while HasPreSession is true.
	PreSessionMode Mode
	HasPreSession  bool
	SessionActive  bool
	Phase          Phase
}
