package encoding

import (
	"encoding/binary"
	"iter"
	"math/bits"

	"github.com/arloliu/polycode/format"
	"github.com/arloliu/polycode/internal/pool"
)

// Command bit codes, written most significant bit first.
//
//	forward   00
//	turnRight 01
//	turnLeft  10
//	push      11
//	pop       1111
//
// The table is a prefix code only in context: push shares its pattern with the first half
// of pop. The traversal engine always emits a move right after a push, so "11" followed by
// "11" is never a push followed by a push.
const (
	codeForward   uint64 = 0b00
	codeTurnRight uint64 = 0b01
	codeTurnLeft  uint64 = 0b10
	codePush      uint64 = 0b11
	codePop       uint64 = 0b1111

	pairBits   = 2
	popBits    = 4
	maxPadBits = 6
)

// CommandEncoder packs traversal commands into a byte sequence.
//
// Bits are accumulated MSB-first in a 64-bit buffer and flushed to a pooled byte buffer.
// The final partial byte is padded with 1 bits. An optional leading index byte carries the
// traversal configuration.
type CommandEncoder struct {
	bitBuf   uint64 // Bit buffer for accumulating bits before writing to byte buffer
	bitCount int    // Number of valid bits in bitBuf
	cmdBits  int    // Number of command bits written, excluding index byte and padding
	count    int    // Number of commands written

	buf *pool.ByteBuffer
}

// NewCommandEncoder creates a command encoder backed by a pooled buffer.
//
// Returns:
//   - *CommandEncoder: A new encoder; call Finish to obtain the bytes and release the buffer
func NewCommandEncoder() *CommandEncoder {
	return &CommandEncoder{
		buf: pool.GetCodeBuffer(),
	}
}

// WriteIndex writes the configuration index byte. It must precede every command.
func (e *CommandEncoder) WriteIndex(idx uint8) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	e.writeBits(uint64(idx), 8)
}

// Write appends a single command.
func (e *CommandEncoder) Write(cmd format.Command) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	e.count++
	switch cmd {
	case format.CmdForward:
		e.writeBits(codeForward, pairBits)
		e.cmdBits += pairBits
	case format.CmdTurnRight:
		e.writeBits(codeTurnRight, pairBits)
		e.cmdBits += pairBits
	case format.CmdTurnLeft:
		e.writeBits(codeTurnLeft, pairBits)
		e.cmdBits += pairBits
	case format.CmdPush:
		e.writeBits(codePush, pairBits)
		e.cmdBits += pairBits
	case format.CmdPop:
		e.writeBits(codePop, popBits)
		e.cmdBits += popBits
	default:
		panic("unknown command")
	}
}

// WriteSlice appends commands in order.
func (e *CommandEncoder) WriteSlice(cmds []format.Command) {
	for _, cmd := range cmds {
		e.Write(cmd)
	}
}

// Len returns the number of commands written.
func (e *CommandEncoder) Len() int {
	return e.count
}

// BitLen returns the number of command bits written, excluding the index byte and padding.
func (e *CommandEncoder) BitLen() int {
	return e.cmdBits
}

// Finish pads the final byte with 1 bits, returns the encoded bytes and releases the
// pooled buffer. The encoder cannot be used afterwards.
//
// Returns:
//   - []byte: encoded bytes owned by the caller
func (e *CommandEncoder) Finish() []byte {
	if e.buf == nil {
		panic("encoder already finished")
	}

	if rem := e.bitCount % 8; rem != 0 {
		pad := 8 - rem
		e.writeBits((1<<pad)-1, pad)
	}
	e.flushBits()

	out := make([]byte, e.buf.Len())
	copy(out, e.buf.Bytes())

	pool.PutCodeBuffer(e.buf)
	e.buf = nil

	return out
}

// writeBits appends the low numBits bits of value (numBits <= 8).
func (e *CommandEncoder) writeBits(value uint64, numBits int) {
	available := 64 - e.bitCount
	if numBits <= available {
		e.bitBuf = (e.bitBuf << numBits) | value
		e.bitCount += numBits
		if e.bitCount == 64 {
			e.flushBits()
		}

		return
	}

	highBits := numBits - available
	e.bitBuf = (e.bitBuf << available) | (value >> highBits)
	e.bitCount = 64
	e.flushBits()

	e.bitBuf = value & ((1 << highBits) - 1)
	e.bitCount = highBits
}

// flushBits writes the whole bytes of the bit buffer to the byte buffer.
// Callers only flush at byte boundaries.
func (e *CommandEncoder) flushBits() {
	if e.bitCount == 0 {
		return
	}

	numBytes := (e.bitCount + 7) / 8
	alignedBits := e.bitBuf << (64 - e.bitCount)

	startLen := e.buf.Len()
	e.buf.ExtendOrGrow(numBytes)
	bs := e.buf.Slice(startLen, startLen+numBytes)

	if numBytes == 8 {
		binary.BigEndian.PutUint64(bs, alignedBits)
	} else {
		for i := range numBytes {
			bs[i] = byte(alignedBits >> (56 - i*8))
		}
	}

	e.bitBuf = 0
	e.bitCount = 0
}

// Pack encodes an index byte followed by cmds.
//
// Parameters:
//   - idx: configuration index byte
//   - cmds: command stream
//
// Returns:
//   - []byte: index byte followed by the padded command bits
func Pack(idx uint8, cmds []format.Command) []byte {
	enc := NewCommandEncoder()
	enc.WriteIndex(idx)
	enc.WriteSlice(cmds)

	return enc.Finish()
}

// CommandDecoder unpacks a command payload produced by CommandEncoder.
//
// The decoder is stateless and can be used concurrently for different payloads.
type CommandDecoder struct{}

// NewCommandDecoder creates a command decoder.
func NewCommandDecoder() CommandDecoder {
	return CommandDecoder{}
}

// PaddingBits returns the number of padding bits at the end of a payload.
//
// Padding is the trailing run of 1 bits of the final byte, rounded down to an even count
// and capped at 6. A well-formed stream always ends with a move command, whose code never
// ends in the pair "11", so the rule recovers the exact padding the encoder added.
func PaddingBits(payload []byte) int {
	if len(payload) == 0 {
		return 0
	}

	trailing := bits.TrailingZeros8(^payload[len(payload)-1])

	return min(trailing&^1, maxPadBits)
}

// All returns an iterator over the commands of a payload (without the index byte).
//
// Decoding is greedy: the pattern 1111 is tried first, then the 2-bit codes.
//
// Parameters:
//   - payload: packed command bytes
//
// Returns:
//   - iter.Seq[format.Command]: commands in stream order
func (d CommandDecoder) All(payload []byte) iter.Seq[format.Command] {
	return func(yield func(format.Command) bool) {
		br := newBitReader(payload, len(payload)*8-PaddingBits(payload))
		for {
			pair, ok := br.readPair()
			if !ok {
				return
			}

			var cmd format.Command
			switch pair {
			case codeForward:
				cmd = format.CmdForward
			case codeTurnRight:
				cmd = format.CmdTurnRight
			case codeTurnLeft:
				cmd = format.CmdTurnLeft
			default:
				cmd = format.CmdPush
				if next, ok := br.peekPair(); ok && next == codePush {
					br.skipPair()
					cmd = format.CmdPop
				}
			}

			if !yield(cmd) {
				return
			}
		}
	}
}

// Decode unpacks every command of a payload (without the index byte).
func (d CommandDecoder) Decode(payload []byte) []format.Command {
	cmds := make([]format.Command, 0, len(payload)*4)
	for cmd := range d.All(payload) {
		cmds = append(cmds, cmd)
	}

	return cmds
}

// bitReader reads 2-bit pairs MSB-first up to a bit limit.
type bitReader struct {
	data     []byte // Source data
	bytePos  int    // Current byte position
	bitBuf   uint64 // Buffer holding current bits, left-aligned
	bitCount int    // Number of valid bits in buffer
	left     int    // Bits left before the limit
}

func newBitReader(data []byte, limit int) *bitReader {
	return &bitReader{
		data: data,
		left: max(limit, 0),
	}
}

// readPair consumes the next 2 bits.
func (br *bitReader) readPair() (uint64, bool) {
	v, ok := br.peekPair()
	if !ok {
		return 0, false
	}
	br.skipPair()

	return v, true
}

// peekPair returns the next 2 bits without consuming them.
func (br *bitReader) peekPair() (uint64, bool) {
	if br.left < pairBits {
		return 0, false
	}
	if br.bitCount == 0 && !br.fillBuffer() {
		return 0, false
	}

	return br.bitBuf >> 62, true
}

func (br *bitReader) skipPair() {
	br.bitBuf <<= pairBits
	br.bitCount -= pairBits
	br.left -= pairBits
}

// fillBuffer loads up to 8 bytes into the bit buffer.
// Bit counts stay even, so a pair never straddles two loads.
func (br *bitReader) fillBuffer() bool {
	if br.bytePos >= len(br.data) {
		return false
	}

	bytesToRead := min(8, len(br.data)-br.bytePos)
	if bytesToRead == 8 {
		br.bitBuf = binary.BigEndian.Uint64(br.data[br.bytePos : br.bytePos+8])
		br.bytePos += 8
		br.bitCount = 64

		return true
	}

	br.bitBuf = 0
	for range bytesToRead {
		br.bitBuf = (br.bitBuf << 8) | uint64(br.data[br.bytePos])
		br.bytePos++
	}
	br.bitBuf <<= (8 - bytesToRead) * 8
	br.bitCount = bytesToRead * 8

	return true
}
