// Package cursor is a pointer-agnostic selection cursor for 3D scenes.
//
// One [Cursor] lets a user select scene objects with whichever input is
// available: a pointing device, dwell time ("fuse"), a single trigger key,
// short voice commands or gaze dwell. It follows an immersive [Session] and
// can force fuse mode while the session is active.
//
// # Quick start
//
//	scene := cursor.NewScene()
//	play := cursor.NewObject("play", "selectable")
//	play.Position = cursor.Vec3{Z: -3}
//	play.HitShape = cursor.HitSphere{Radius: 0.5}
//	play.OnSelect = func(ev cursor.SelectEvent) { fmt.Println("play") }
//	scene.Add(play)
//
//	cfg := cursor.DefaultConfig()
//	cfg.Mode = cursor.ModeFuse
//	c := cursor.New("main", scene, cfg)
//
//	// every frame:
//	c.SetPointerRay(camera.ScreenRay(mx, my))
//	c.Update(dt)
//
// # Threading
//
// The cursor is single-threaded. Every method is called from the host
// thread, the goroutine that calls [Cursor.Update]. Dwell and gaze timers
// are advanced by Update, so their callbacks run on that thread too. Input
// produced elsewhere (global key hooks, speech recognizers) goes through
// [Cursor.PostKey] or the recognizer callback and is applied at the start of
// the next Update.
//
// # Selection
//
// An object is selectable when it carries [Config.SelectableTag]. Every
// trigger, whatever the mode, goes through one emitter that re-checks the
// target, forwards a [SeekRequest] to the nearest [Seekable] on the target
// or its ancestors, then delivers a [SelectEvent] to the object's OnSelect
// and to the cursor's [Cursor.OnSelect] handlers. With
// [Config.NativeEvents] the event is also published to the scene's
// [EntityStore]. A target with no seek capability anywhere on its ancestry
// is still selected; the missing capability is logged at debug level, not
// as a warning, since most targets are not seekable.
//
// # Scripts
//
// [LoadScript] and [Runner] play JSON interaction scripts against a cursor
// with a fixed frame step. The cursorsim command runs them from the shell.
package cursor
