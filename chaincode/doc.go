// Package chaincode encodes polyominoes into compact byte sequences and decodes them back.
//
// A polyomino is walked by a greedy traversal with backtracking that emits five commands:
// forward, turnLeft, turnRight, push and pop. The commands are packed into 2 or 4 bits
// each. Encode tries all 256 traversal configurations and keeps the shortest result,
// breaking ties by the lexicographically smaller byte sequence. The winning configuration
// index is stored as the first byte so Decode can replay the walk.
//
// # Encoded layout
//
//	[index byte][command bits, MSB first][1-bit padding to the next byte]
//
// An empty polyomino encodes to an empty byte sequence.
//
// # Example
//
//	data, err := chaincode.Encode(cells)
//	if err != nil {
//	    return err
//	}
//	decoded, err := chaincode.Decode(data)
//
// Decoded cells are normalized: translated so that the minimum x and y are 0, sorted by
// (y, x).
package chaincode
