// Package backtrack provides the branch store used by the traversal engine to resume
// exploration after a dead end.
package backtrack

import "github.com/arloliu/polycode/format"

// Mode selects the order in which saved frames are restored.
type Mode uint8

const (
	Stack Mode = iota // Stack restores the most recently saved frame first.
	Queue             // Queue restores the oldest saved frame first.
)

func (m Mode) String() string {
	if m == Queue {
		return "queue"
	}

	return "stack"
}

// ModeOf returns the store mode selected by a traversal configuration.
func ModeOf(cfg format.Config) Mode {
	if cfg.UseQueue {
		return Queue
	}

	return Stack
}

// Frame is a saved branch point.
type Frame struct {
	Dir format.Direction // Facing at the time of the push
	X   int
	Y   int
	// PushAt is the position of the frame's push command in the command log.
	// It is -1 when the frame has no associated log entry.
	PushAt int
}

// Store is a stack or queue of frames.
//
// Queue mode pops from a moving head index instead of shifting the slice, so both modes
// run in amortized O(1).
type Store struct {
	frames []Frame
	head   int
	mode   Mode
}

// New creates an empty store.
func New(mode Mode) *Store {
	return &Store{mode: mode}
}

// Push saves a frame.
func (s *Store) Push(f Frame) {
	s.frames = append(s.frames, f)
}

// Pop removes and returns the next frame according to the store mode.
// ok is false when the store is empty.
func (s *Store) Pop() (f Frame, ok bool) {
	if s.Len() == 0 {
		return Frame{}, false
	}

	if s.mode == Queue {
		f = s.frames[s.head]
		s.head++
		if s.head == len(s.frames) {
			s.frames = s.frames[:0]
			s.head = 0
		}

		return f, true
	}

	last := len(s.frames) - 1
	f = s.frames[last]
	s.frames = s.frames[:last]

	return f, true
}

// Len returns the number of saved frames.
func (s *Store) Len() int {
	return len(s.frames) - s.head
}
