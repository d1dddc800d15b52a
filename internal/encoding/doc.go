// Package encoding holds the bit-level and byte-level codecs behind polycode.
//
// CommandEncoder and CommandDecoder pack traversal commands two bits at a time, most
// significant bit first, after a configuration index byte. The last byte is padded with
// one bits. On decode, the trailing run of ones in the last byte, rounded down to whole
// pairs and capped at six bits, is treated as padding; encoded streams always end with a
// move, so the run never swallows a command.
//
//	enc := encoding.NewCommandEncoder()
//	enc.WriteIndex(cfg.Index())
//	enc.WriteSlice(cmds)
//	data := enc.Finish()
//
// EncodeShapeNames and DecodeShapeNames read and write the optional names payload of a
// shape set.
//
// This package is internal; use the chaincode and shapeset packages instead.
package encoding
