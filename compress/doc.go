// Package compress provides the codecs applied to the data payload of a shape set.
//
// Encoded polyominoes are already close to their entropy individually, but a shape set
// usually holds many similar shapes, so a general-purpose compressor over the concatenated
// payload still pays off. Four algorithms are supported:
//
//   - None: payload stored as is
//   - Zstd: best ratio; pure Go by default, cgo based with the gozstd build tag
//   - S2: fast with a good ratio
//   - LZ4: fastest decompression
//
// Codecs are looked up by format.CompressionType:
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress(payload)
//
// The shapeset package records the algorithm in the container header and picks the
// matching codec on decode.
package compress
