package input

import (
	"sync/atomic"
)

// Stats counts events seen by a Dispatcher.
type Stats struct {
	keysHandled  atomic.Uint64
	keysPassed   atomic.Uint64
	mouseHandled atomic.Uint64
	mousePassed  atomic.Uint64
	pastes       atomic.Uint64
	notices      atomic.Uint64
}

// StatsSnapshot is a point-in-time copy of Stats.
type StatsSnapshot struct {
	KeysHandled  uint64
	KeysPassed   uint64
	MouseHandled uint64
	MousePassed  uint64
	Pastes       uint64
	Notices      uint64
}

func (s *Stats) recordKey(handled bool) {
	if handled {
		s.keysHandled.Add(1)
	} else {
		s.keysPassed.Add(1)
	}
}

func (s *Stats) recordMouse(handled bool) {
	if handled {
		s.mouseHandled.Add(1)
	} else {
		s.mousePassed.Add(1)
	}
}

// Snapshot returns the current counts.
func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		KeysHandled:  s.keysHandled.Load(),
		KeysPassed:   s.keysPassed.Load(),
		MouseHandled: s.mouseHandled.Load(),
		MousePassed:  s.mousePassed.Load(),
		Pastes:       s.pastes.Load(),
		Notices:      s.notices.Load(),
	}
}
