// Package walk implements the traversal engine shared by the encoder and decoder.
//
// Encode walks a dense grid under one traversal configuration and emits the command
// stream that covers every cell. Replay runs the same walk in reverse over an unbounded
// visited set, reconstructing the cells from the command stream alone.
//
// Commands have identical meaning on both sides:
//
//   - forward: advance in the facing direction, skipping visited cells, and land on the
//     first unvisited cell.
//   - turnLeft / turnRight: rotate a quarter turn, then behave as forward.
//   - push: save the current position and facing.
//   - pop: restore a saved position and facing (stack or queue order).
package walk
