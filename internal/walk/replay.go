package walk

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/arloliu/polycode/errs"
	"github.com/arloliu/polycode/format"
	"github.com/arloliu/polycode/internal/backtrack"
	"github.com/arloliu/polycode/internal/grid"
	"github.com/arloliu/polycode/shape"
)

// ReplayOptions controls the decode-side walk.
type ReplayOptions struct {
	// Strict rejects a pop with no saved frame instead of ignoring it.
	Strict bool
	// Logger receives diagnostics for tolerated malformed commands. Nil disables logging.
	Logger *zap.Logger
}

// Replay reconstructs the cells visited by a command stream.
//
// The walk starts at (0,0) facing cfg.InitialFacing(). Moves advance over visited cells and
// land on the first unvisited one. The result is not normalized.
//
// Parameters:
//   - cmds: command stream
//   - cfg: traversal configuration the stream was produced with
//   - opts: replay options
//
// Returns:
//   - []shape.Coord: visited cells in unspecified order
//   - error: errs.ErrInvalidInput for malformed streams
func Replay(cmds []format.Command, cfg format.Config, opts ReplayOptions) ([]shape.Coord, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	visited := grid.NewSparse()
	store := backtrack.New(backtrack.ModeOf(cfg))
	x, y := 0, 0
	dir := cfg.InitialFacing()
	visited.MarkVisited(x, y)

	for i, cmd := range cmds {
		switch cmd {
		case format.CmdPush:
			store.Push(backtrack.Frame{Dir: dir, X: x, Y: y, PushAt: i})
		case format.CmdPop:
			f, ok := store.Pop()
			if !ok {
				if opts.Strict {
					return nil, fmt.Errorf("%w: %w at command %d", errs.ErrInvalidInput, errs.ErrEmptyBacktrack, i)
				}
				logger.Debug("ignoring pop on empty backtrack store", zap.Int("command", i))

				continue
			}
			x, y, dir = f.X, f.Y, f.Dir
		case format.CmdForward, format.CmdTurnLeft, format.CmdTurnRight:
			dir = turn(dir, cmd)
			// A ray crosses at most Len() visited cells, so this limit always lands. The
			// error is kept for the bound check, not as a reachable decode failure.
			nx, ny, ok := advance(visited, x, y, dir, visited.Len()+1)
			if !ok {
				return nil, fmt.Errorf("%w: move %s at command %d found no unvisited cell", errs.ErrInvalidInput, dir, i)
			}
			x, y = nx, ny
			visited.MarkVisited(x, y)
		default:
			return nil, fmt.Errorf("%w: unknown command %d at %d", errs.ErrInvalidInput, cmd, i)
		}
	}

	return visited.Coords(), nil
}

// advance steps from (x, y) along dir until it reaches a cell occ has not visited.
//
// It gives up after limit steps. A limit of one more than the number of visited cells is a
// proven bound: the cells passed over are distinct visited cells, so the step after the last
// of them lands. Replay always passes that bound.
func advance(occ grid.Occupancy, x, y int, dir format.Direction, limit int) (int, int, bool) {
	dx, dy := dir.Vector()
	for range limit {
		x += dx
		y += dy
		if !occ.IsVisited(x, y) {
			return x, y, true
		}
	}

	return 0, 0, false
}
