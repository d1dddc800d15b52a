package walk

import (
	"github.com/arloliu/polycode/format"
	"github.com/arloliu/polycode/internal/pool"
)

// commandLog is an append-only command sequence with per-entry tombstones.
//
// Dead-end pruning tombstones a push by its log position. Tombstoned entries are skipped
// when the log is finalized, so no entry is ever removed while the walk is running.
type commandLog struct {
	cmds    []format.Command
	dead    []bool
	n       int
	live    int
	release []func()
}

func newCommandLog(capacity int) *commandLog {
	cmds, releaseCmds := pool.GetCommandSlice(capacity)
	dead, releaseDead := pool.GetBoolSlice(capacity)

	return &commandLog{
		cmds:    cmds,
		dead:    dead,
		release: []func(){releaseCmds, releaseDead},
	}
}

// append adds cmd and returns its log position.
func (l *commandLog) append(cmd format.Command) int {
	if l.n == len(l.cmds) {
		l.cmds = append(l.cmds, cmd)
		l.dead = append(l.dead, false)
	} else {
		l.cmds[l.n] = cmd
		l.dead[l.n] = false
	}
	l.n++
	l.live++

	return l.n - 1
}

// tombstone marks the entry at pos as removed.
func (l *commandLog) tombstone(pos int) {
	if pos < 0 || pos >= l.n || l.dead[pos] {
		return
	}
	l.dead[pos] = true
	l.live--
}

// Len returns the number of live entries.
func (l *commandLog) Len() int {
	return l.live
}

// commands returns the live entries in order as a new slice.
func (l *commandLog) commands() []format.Command {
	out := make([]format.Command, 0, l.live)
	for i := range l.n {
		if !l.dead[i] {
			out = append(out, l.cmds[i])
		}
	}

	return out
}

// close returns the pooled storage. The log cannot be used afterwards.
func (l *commandLog) close() {
	for _, fn := range l.release {
		fn()
	}
	l.release = nil
	l.cmds = nil
	l.dead = nil
}
