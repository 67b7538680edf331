package tui

import (
	"time"

	"github.com/vovakirdan/jaimp/internal/config"
	"github.com/vovakirdan/jaimp/internal/core"
)

// heldActions are the actions a terminal can only approximate: it reports
// presses and auto-repeats, never releases.
var heldActions = []core.Action{
	core.ActionLeft,
	core.ActionRight,
	core.ActionCrouch,
	core.ActionJump,
}

// HoldTracker turns key presses into held actions. A fresh press holds its
// action for the initial window, which outlasts the keyboard's auto-repeat
// delay. Once repeats arrive each one refreshes the shorter repeat window.
// Edge actions (AnyKey, Pause) last exactly one frame.
//
// Presses carry no release, so a press during a live hold is either an
// auto-repeat or the key pressed again. A press that follows the previous
// one within the repeat gap is a repeat, unless no repeat stream can have
// started yet. A press after a longer silence while repeating means the key
// was let go and pressed again. The first press after the initial silence
// is ambiguous until the next frame past the repeat gap: if no further
// press arrives it was a new press. A new press drops the action for one
// frame so the game sees a fresh edge.
type HoldTracker struct {
	hold    time.Duration
	initial time.Duration
	gap     time.Duration
	keys    map[core.Action]*heldKey
	edges   core.InputFrame
}

type heldKey struct {
	last      time.Time // latest press
	until     time.Time
	repeating bool // auto-repeat stream confirmed
	pending   bool // latest press may be a repeat or a new press
	released  bool // drop the action for the next frame
}

// NewHoldTracker creates a tracker with the windows of cfg. Zero values
// fall back to the defaults.
func NewHoldTracker(cfg config.InputConfig) *HoldTracker {
	def := config.DefaultJaimpConfig().Input
	if cfg.HoldMs <= 0 {
		cfg.HoldMs = def.HoldMs
	}
	if cfg.InitialHoldMs < cfg.HoldMs {
		cfg.InitialHoldMs = max(def.InitialHoldMs, cfg.HoldMs)
	}
	if cfg.RepeatGapMs <= 0 {
		cfg.RepeatGapMs = def.RepeatGapMs
	}
	return &HoldTracker{
		hold:    cfg.Hold(),
		initial: cfg.InitialHold(),
		gap:     cfg.RepeatGap(),
		keys:    make(map[core.Action]*heldKey),
		edges:   core.NewInputFrame(),
	}
}

// Press records a key press at now. Every press also raises AnyKey.
func (h *HoldTracker) Press(a core.Action, now time.Time) {
	h.edges.Set(core.ActionAnyKey)
	switch a {
	case core.ActionLeft:
		delete(h.keys, core.ActionRight)
	case core.ActionRight:
		delete(h.keys, core.ActionLeft)
	case core.ActionPause:
		h.edges.Set(core.ActionPause)
		return
	case core.ActionNone, core.ActionQuit, core.ActionAnyKey:
		return
	}

	k, ok := h.keys[a]
	if !ok {
		h.keys[a] = &heldKey{last: now, until: now.Add(h.initial)}
		return
	}
	if now.After(k.until) {
		// Lapsed but not yet observed by a frame.
		*k = heldKey{last: now, until: now.Add(h.initial), released: true}
		return
	}

	silence := now.Sub(k.last)
	k.last = now
	switch {
	case silence <= h.gap && k.pending:
		k.pending = false
		k.repeating = true
	case silence <= h.gap && !k.repeating:
		// Faster than any auto-repeat delay.
		k.released = true
	case silence <= h.gap:
	case k.repeating:
		k.repeating = false
		k.released = true
	case k.pending:
		k.released = true
	default:
		k.pending = true
	}

	if k.repeating {
		k.until = now.Add(h.hold)
	} else {
		k.until = now.Add(h.initial)
	}
}

// Frame returns the input for the tick at now and consumes the edges.
func (h *HoldTracker) Frame(now time.Time) core.InputFrame {
	f := h.edges.Clone()
	h.edges.Clear()
	for _, a := range heldActions {
		k, ok := h.keys[a]
		if !ok {
			continue
		}
		if now.After(k.until) {
			delete(h.keys, a)
			continue
		}
		if k.pending && now.Sub(k.last) > h.gap {
			k.pending = false
			k.released = true
		}
		if k.released {
			k.released = false
			continue
		}
		f.Set(a)
	}
	return f
}

// Release drops every held action.
func (h *HoldTracker) Release() {
	clear(h.keys)
	h.edges.Clear()
}
