package format

type (
	// Direction is one of the four compass directions a walk can face.
	Direction uint8
	// Command is a single instruction of the traversal command alphabet.
	Command uint8
	// CompressionType identifies the compression applied to a shape set data payload.
	CompressionType uint8
)

// Directions are ordered clockwise so that a quarter turn is a modular step.
const (
	DirUp    Direction = iota // DirUp moves towards +y.
	DirRight                  // DirRight moves towards +x.
	DirDown                   // DirDown moves towards -y.
	DirLeft                   // DirLeft moves towards -x.
)

// DirectionCount is the number of compass directions.
const DirectionCount = 4

const (
	CmdForward   Command = 0x0 // CmdForward keeps facing and advances to the next unvisited cell.
	CmdTurnRight Command = 0x1 // CmdTurnRight turns clockwise, then advances.
	CmdTurnLeft  Command = 0x2 // CmdTurnLeft turns counter-clockwise, then advances.
	CmdPush      Command = 0x3 // CmdPush saves the current position and facing.
	CmdPop       Command = 0x4 // CmdPop restores the next saved position and facing.
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

// TurnRight returns the direction after a clockwise quarter turn.
func (d Direction) TurnRight() Direction {
	return (d + 1) & 0x3
}

// TurnLeft returns the direction after a counter-clockwise quarter turn.
func (d Direction) TurnLeft() Direction {
	return (d + 3) & 0x3
}

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	return (d + 2) & 0x3
}

// Vector returns the unit step of the direction. Up is +y.
func (d Direction) Vector() (dx, dy int) {
	switch d & 0x3 {
	case DirUp:
		return 0, 1
	case DirRight:
		return 1, 0
	case DirDown:
		return 0, -1
	default:
		return -1, 0
	}
}

// IsValid reports whether d is one of the four compass directions.
func (d Direction) IsValid() bool {
	return d <= DirLeft
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	default:
		return "unknown"
	}
}

// IsMove reports whether the command moves the walk to a new cell.
func (c Command) IsMove() bool {
	return c <= CmdTurnLeft
}

func (c Command) String() string {
	switch c {
	case CmdForward:
		return "forward"
	case CmdTurnRight:
		return "turnRight"
	case CmdTurnLeft:
		return "turnLeft"
	case CmdPush:
		return "push"
	case CmdPop:
		return "pop"
	default:
		return "unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
