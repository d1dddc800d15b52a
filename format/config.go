package format

import (
	"fmt"
	"iter"
)

// ConfigCount is the number of distinct traversal configurations.
// It equals 2 (queue) × 2 (relative) × 2 (ccw) × 4 (first direction) × 4 (start direction) × 2 (start right).
const ConfigCount = 256

// Config is one parameterization of the traversal engine.
//
// A configuration selects the backtrack discipline, the direction choice policy and the
// starting boundary cell. Every Config maps to exactly one index byte, which is stored as
// the first byte of an encoded polyomino.
type Config struct {
	// UseQueue restores saved branches first-in-first-out instead of last-in-first-out.
	UseQueue bool
	// Relative prefers continuing forward, then turning, instead of a fixed compass order.
	Relative bool
	// CCW selects left-first turns (relative) or counter-clockwise compass order (absolute).
	CCW bool
	// FirstDirection is the preferred compass direction in absolute mode.
	FirstDirection Direction
	// StartDirection selects the boundary side scanned for the starting cell.
	StartDirection Direction
	// StartRight selects the opposite end of the scanned boundary and a left-turned initial facing.
	StartRight bool
}

// Index bit layout, outermost axis in the highest bits:
//
//	bit 7: UseQueue
//	bit 6: Relative
//	bit 5: CCW
//	bits 3-4: FirstDirection
//	bits 1-2: StartDirection
//	bit 0: StartRight
const (
	queueBit    = 7
	relativeBit = 6
	ccwBit      = 5
	firstShift  = 3
	startShift  = 1
)

// ConfigFromIndex returns the configuration stored under the given index byte.
// The mapping is total: every byte value is a valid configuration.
func ConfigFromIndex(idx uint8) Config {
	return Config{
		UseQueue:       idx&(1<<queueBit) != 0,
		Relative:       idx&(1<<relativeBit) != 0,
		CCW:            idx&(1<<ccwBit) != 0,
		FirstDirection: Direction((idx >> firstShift) & 0x3),
		StartDirection: Direction((idx >> startShift) & 0x3),
		StartRight:     idx&1 != 0,
	}
}

// Index returns the index byte of the configuration.
// It is the inverse of ConfigFromIndex.
func (c Config) Index() uint8 {
	var idx uint8
	if c.UseQueue {
		idx |= 1 << queueBit
	}
	if c.Relative {
		idx |= 1 << relativeBit
	}
	if c.CCW {
		idx |= 1 << ccwBit
	}
	idx |= uint8(c.FirstDirection&0x3) << firstShift
	idx |= uint8(c.StartDirection&0x3) << startShift
	if c.StartRight {
		idx |= 1
	}

	return idx
}

// InitialFacing returns the facing the walk starts with.
func (c Config) InitialFacing() Direction {
	if c.StartRight {
		return c.StartDirection.TurnLeft()
	}

	return c.StartDirection.TurnRight()
}

func (c Config) String() string {
	return fmt.Sprintf("config{queue=%t relative=%t ccw=%t first=%s start=%s startRight=%t}",
		c.UseQueue, c.Relative, c.CCW, c.FirstDirection, c.StartDirection, c.StartRight)
}

// AllConfigs returns an iterator over every configuration in index order.
func AllConfigs() iter.Seq2[uint8, Config] {
	return func(yield func(uint8, Config) bool) {
		for i := 0; i < ConfigCount; i++ {
			idx := uint8(i) //nolint:gosec
			if !yield(idx, ConfigFromIndex(idx)) {
				return
			}
		}
	}
}
