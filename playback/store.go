package playback

import (
	"sync"
)

// Store owns the single NowPlaying record. Writes are serialized through
// the mutex and readers get a value copy, so a snapshot is always either
// the pre-update or post-update record, never a torn mix. The store does
// no I/O and cannot fail.
type Store struct {
	mu  sync.RWMutex
	now NowPlaying
}

func NewStore() *Store {
	return &Store{
		now: NowPlaying{State: StatusStopped},
	}
}

// Apply folds one decoded instruction into the record. Each instruction
// replaces exactly one field wholesale; last write per field wins and no
// other field is touched. Malformed payloads never get this far, they are
// rejected by Decode.
func (s *Store) Apply(instruction Instruction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch instruction.Kind {
	case KindText:
		text := instruction.Text
		switch instruction.Field {
		case FieldTitle:
			s.now.Title = &text
		case FieldArtist:
			s.now.Artist = &text
		case FieldAlbum:
			s.now.Album = &text
		case FieldGenre:
			s.now.Genre = &text
		case FieldClientName:
			s.now.ClientName = &text
		}
	case KindVolume:
		volume := instruction.Volume
		s.now.Volume = &volume
	case KindArtwork:
		// Replaced wholesale, never merged. The previous slice is left
		// untouched for any snapshot still holding it.
		s.now.Artwork = instruction.Artwork
	case KindTransition:
		s.now.State = instruction.State
	}
}

// Snapshot returns the record as of this instant. Pointer and slice
// contents are shared with the store but the store only ever swaps them
// out, never edits them in place, so the returned value is stable.
func (s *Store) Snapshot() NowPlaying {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.now
}

// IsAlive reports process liveness. It is deliberately independent of
// feed connectivity: a disconnected feed means stale snapshots, not an
// unhealthy process.
func (s *Store) IsAlive() bool {
	return true
}
