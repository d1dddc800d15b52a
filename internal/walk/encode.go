package walk

import (
	"fmt"

	"github.com/arloliu/polycode/errs"
	"github.com/arloliu/polycode/format"
	"github.com/arloliu/polycode/internal/backtrack"
	"github.com/arloliu/polycode/internal/grid"
)

// Options controls the encode-side walk.
type Options struct {
	// DisablePruning keeps the push of every branch found to be a dead end on pop. The
	// stream stays decodable but is longer.
	DisablePruning bool
	// PrunePending also drops the pushes of branches still saved when the walk ends.
	// Such pushes are never restored, so decoding is unaffected, but the bytes no longer
	// match the plain pop-pruned walk.
	PrunePending bool
}

// walker holds the mutable state of one encode-side walk.
type walker struct {
	g     *grid.Dense
	cfg   format.Config
	store *backtrack.Store
	log   *commandLog
	prune bool

	x, y int
	dir  format.Direction
}

// Encode walks g under cfg and returns the command stream covering every cell.
//
// The walk marks cells Processed as it lands on them, so g is consumed: pass a clone when
// the same grid is walked more than once.
//
// Parameters:
//   - g: dense grid whose Filled cells form the polyomino
//   - cfg: traversal configuration
//   - opts: walk options
//
// Returns:
//   - []format.Command: the command stream, empty for grids with at most one cell
//   - error: errs.ErrUncoverableShape when the walk gets stuck before every cell is visited
func Encode(g *grid.Dense, cfg format.Config, opts Options) ([]format.Command, error) {
	if !g.HasFilled() {
		return []format.Command{}, nil
	}

	x, y, ok := StartPoint(g, cfg)
	if !ok {
		return nil, fmt.Errorf("%w: no start cell for %s", errs.ErrUncoverableShape, cfg)
	}

	// Every pop restores a distinct frame and every frame comes from a push that precedes a
	// move, so the stream never exceeds three commands per landed cell.
	w := &walker{
		g:     g,
		cfg:   cfg,
		store: backtrack.New(backtrack.ModeOf(cfg)),
		log:   newCommandLog(3 * g.Remaining()),
		prune: !opts.DisablePruning,
		x:     x,
		y:     y,
		dir:   cfg.InitialFacing(),
	}
	defer w.log.close()

	g.MarkProcessed(x, y)
	for g.HasFilled() {
		if err := w.step(); err != nil {
			return nil, err
		}
	}

	if opts.PrunePending {
		w.dropPending()
	}

	return w.log.commands(), nil
}

// step emits the commands for one decision point.
func (w *walker) step() error {
	filled := w.filled()
	push, cmd := w.decide(filled)

	if push {
		pos := w.log.append(format.CmdPush)
		w.store.Push(backtrack.Frame{Dir: w.dir, X: w.x, Y: w.y, PushAt: pos})
	}

	if cmd == format.CmdPop {
		if !w.pop() {
			return fmt.Errorf("%w: walk stuck at (%d,%d) with %d cells left under %s",
				errs.ErrUncoverableShape, w.x, w.y, w.g.Remaining(), w.cfg)
		}
		w.log.append(format.CmdPop)

		return nil
	}

	w.dir = turn(w.dir, cmd)
	tx, ty, ok := w.g.Reachable(w.x, w.y, w.dir)
	if !ok {
		// decide only returns directions with a reachable cell.
		return fmt.Errorf("%w: %s blocked at (%d,%d) under %s",
			errs.ErrUncoverableShape, w.dir, w.x, w.y, w.cfg)
	}
	w.x, w.y = tx, ty
	w.g.MarkProcessed(tx, ty)
	w.log.append(cmd)

	return nil
}

// filled reports, per direction, whether a forward move would land on a Filled cell.
func (w *walker) filled() [format.DirectionCount]bool {
	var out [format.DirectionCount]bool
	for d := range format.DirectionCount {
		_, _, out[d] = w.g.Reachable(w.x, w.y, format.Direction(d))
	}

	return out
}

// pop restores the next live frame.
//
// With pruning, a restored frame without any reachable cell is a dead end: its push is
// tombstoned and the next frame is tried. pop reports false when no live frame remains.
func (w *walker) pop() bool {
	for {
		f, ok := w.store.Pop()
		if !ok {
			return false
		}
		w.x, w.y, w.dir = f.X, f.Y, f.Dir

		if !w.prune || anyFilled(w.filled()) {
			return true
		}
		w.log.tombstone(f.PushAt)
	}
}

// dropPending tombstones the pushes of frames still saved when the walk ends.
// They are never restored, so removing them leaves every other pop unchanged.
func (w *walker) dropPending() {
	for {
		f, ok := w.store.Pop()
		if !ok {
			return
		}
		w.log.tombstone(f.PushAt)
	}
}

// decide applies the direction choice policy.
//
// It returns whether the current position is a branch point, and either the move command
// to take or CmdPop when no direction other than the reverse of the facing is reachable.
func (w *walker) decide(filled [format.DirectionCount]bool) (bool, format.Command) {
	back := w.dir.Reverse()
	count := 0
	for d, ok := range filled {
		if ok && format.Direction(d) != back {
			count++
		}
	}
	if count == 0 {
		return false, format.CmdPop
	}
	push := count > 1

	if w.cfg.Relative {
		return push, w.relative(filled)
	}

	return push, w.absolute(filled)
}

// relative prefers forward, then the configured turn, then the other turn.
func (w *walker) relative(filled [format.DirectionCount]bool) format.Command {
	first, second := format.CmdTurnRight, format.CmdTurnLeft
	if w.cfg.CCW {
		first, second = second, first
	}

	switch {
	case filled[w.dir]:
		return format.CmdForward
	case filled[turn(w.dir, first)]:
		return first
	default:
		return second
	}
}

// absolute prefers the configured first direction, then walks the compass clockwise
// (or counter-clockwise) from it, never choosing the reverse of the facing.
func (w *walker) absolute(filled [format.DirectionCount]bool) format.Command {
	rot := format.Direction.TurnRight
	if w.cfg.CCW {
		rot = format.Direction.TurnLeft
	}

	fd := w.cfg.FirstDirection
	back := w.dir.Reverse()
	for range 3 {
		if filled[fd] && fd != back {
			return w.commandTo(fd)
		}
		fd = rot(fd)
	}

	return w.commandTo(fd)
}

// commandTo returns the move command that faces to. to is never the reverse of the facing.
func (w *walker) commandTo(to format.Direction) format.Command {
	switch to {
	case w.dir:
		return format.CmdForward
	case w.dir.TurnLeft():
		return format.CmdTurnLeft
	default:
		return format.CmdTurnRight
	}
}

// StartPoint returns the boundary cell the walk starts from.
//
// Row 0 is the bottom row. The start side and end are chosen by the configuration:
//
//	left,  !right: column 0, lowest filled row
//	left,  right:  column 0, highest filled row
//	up,    !right: top row, leftmost filled column
//	up,    right:  top row, rightmost filled column
//	right, !right: last column, highest filled row
//	right, right:  last column, lowest filled row
//	down,  !right: row 0, rightmost filled column
//	down,  right:  row 0, leftmost filled column
//
// Scanning from these ends keeps the reverse of the initial facing empty.
func StartPoint(g *grid.Dense, cfg format.Config) (x, y int, ok bool) {
	w, h := g.Width(), g.Height()
	if w == 0 || h == 0 {
		return 0, 0, false
	}

	column := func(col int, fromTop bool) (int, int, bool) {
		for i := range h {
			r := i
			if fromTop {
				r = h - 1 - i
			}
			if g.State(col, r) == grid.Filled {
				return col, r, true
			}
		}

		return 0, 0, false
	}
	row := func(r int, fromRight bool) (int, int, bool) {
		for i := range w {
			col := i
			if fromRight {
				col = w - 1 - i
			}
			if g.State(col, r) == grid.Filled {
				return col, r, true
			}
		}

		return 0, 0, false
	}

	switch cfg.StartDirection {
	case format.DirLeft:
		return column(0, cfg.StartRight)
	case format.DirUp:
		return row(h-1, cfg.StartRight)
	case format.DirRight:
		return column(w-1, !cfg.StartRight)
	default:
		return row(0, !cfg.StartRight)
	}
}

// turn applies the rotation of a move command to dir.
func turn(dir format.Direction, cmd format.Command) format.Direction {
	switch cmd {
	case format.CmdTurnLeft:
		return dir.TurnLeft()
	case format.CmdTurnRight:
		return dir.TurnRight()
	default:
		return dir
	}
}

func anyFilled(filled [format.DirectionCount]bool) bool {
	for _, ok := range filled {
		if ok {
			return true
		}
	}

	return false
}
