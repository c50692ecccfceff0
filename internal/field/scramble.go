package field

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Scramble TTLs: every entry expires between these two bounds.
const (
	scrambleTTLMin = 200 * time.Millisecond
	scrambleTTLMax = 350 * time.Millisecond
)

type scrambleEntry struct {
	glyph int
	until time.Time
}

// ScrambleSet maps cell indices to temporary replacement glyphs with an
// expiry. Owned solely by the frame step; time comes from a clockwork.Clock
// so expiry is testable with a fake clock.
type ScrambleSet struct {
	clock   clockwork.Clock
	entries map[int]scrambleEntry
}

func NewScrambleSet(clock clockwork.Clock) *ScrambleSet {
	return &ScrambleSet{
		clock:   clock,
		entries: make(map[int]scrambleEntry),
	}
}

// Put inserts or replaces the entry for cell, expiring ttl from now.
func (s *ScrambleSet) Put(cell, glyph int, ttl time.Duration) {
	s.entries[cell] = scrambleEntry{glyph: glyph, until: s.clock.Now().Add(ttl)}
}

// Lookup returns the replacement glyph for cell. An entry whose expiry has
// been reached is never returned, even before the next Purge.
func (s *ScrambleSet) Lookup(cell int) (int, bool) {
	e, ok := s.entries[cell]
	if !ok || !s.clock.Now().Before(e.until) {
		return 0, false
	}
	return e.glyph, true
}

// Purge drops all expired entries.
func (s *ScrambleSet) Purge() {
	now := s.clock.Now()
	for cell, e := range s.entries {
		if !now.Before(e.until) {
			delete(s.entries, cell)
		}
	}
}

// Clear drops everything, expired or not.
func (s *ScrambleSet) Clear() {
	clear(s.entries)
}

func (s *ScrambleSet) Len() int { return len(s.entries) }
