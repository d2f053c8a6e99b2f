package undo

import "sync/atomic"

// Flag is a settable boolean that hosts can hand to WithBusy, e.g. to mark
// that an animation started by an undo or redo is still running.
type Flag struct {
	v atomic.Bool
}

func (f *Flag) Set() {
	f.v.Store(true)
}

func (f *Flag) Clear() {
	f.v.Store(false)
}

func (f *Flag) IsSet() bool {
	return f.v.Load()
}
