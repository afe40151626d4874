package cursor

import "context"

// voiceAdapter runs a continuous speech session and selects the intersected
// object when a final result matches the configured vocabulary. Without a
// usable recognizer it logs a warning and stays inert.
type voiceAdapter struct {
	baseAdapter
	c      *Cursor
	gen    uint64
	cancel context.CancelFunc
}

func newVoiceAdapter(c *Cursor) adapter { return &voiceAdapter{c: c} }

func (a *voiceAdapter) setup() {
	c := a.c
	c.origin = c.aimOrigin()
	if c.speech == nil {
		c.log.Warn().Msg("speech recognition unavailable, voice mode inert")
		return
	}

	ctx, cancel := context.WithCancel(c.ctx)
	c.speechSeq++
	gen := c.speechSeq
	err := startSpeech(ctx, c.speech, func(res SpeechResult) {
		c.inbox.push(inboxItem{kind: inboxSpeech, speech: res, gen: gen})
	})
	if err != nil {
		cancel()
		c.log.Warn().Err(err).Msg("speech recognition failed to start, voice mode inert")
		return
	}
	a.gen = gen
	a.cancel = cancel
	c.liveSpeech = gen
}

func (a *voiceAdapter) teardown() {
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	if a.c.liveSpeech == a.gen {
		a.c.liveSpeech = 0
	}
	a.gen = 0
}

func (a *voiceAdapter) heard(res SpeechResult) {
	if !res.IsFinal || !matchPhrase(res.Text, a.c.cfg.VoiceCommands) {
		return
	}
	a.c.triggerIntersected("voice")
}
