package shapeset

import (
	"fmt"

	"github.com/arloliu/polycode/chaincode"
	"github.com/arloliu/polycode/format"
	"github.com/arloliu/polycode/internal/options"
)

// EncoderConfig holds the settings of an Encoder.
type EncoderConfig struct {
	compression format.CompressionType
	bigEndian   bool
	encodeOpts  []chaincode.EncodeOption
}

func newEncoderConfig() *EncoderConfig {
	return &EncoderConfig{
		compression: format.CompressionZstd,
	}
}

// EncoderOption is a functional option for configuring NewEncoder.
type EncoderOption = options.Option[*EncoderConfig]

// WithCompression sets the compression of the data payload. Default is Zstd.
func WithCompression(compression format.CompressionType) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		switch compression {
		case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
			c.compression = compression
			return nil
		default:
			return fmt.Errorf("invalid data compression: %s", compression)
		}
	})
}

// WithLittleEndian stores fixed-width fields little-endian. This is the default.
func WithLittleEndian() EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.bigEndian = false
	})
}

// WithBigEndian stores fixed-width fields big-endian.
func WithBigEndian() EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.bigEndian = true
	})
}

// WithEncodeOptions passes options to chaincode.Encode for every added shape.
func WithEncodeOptions(opts ...chaincode.EncodeOption) EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.encodeOpts = append(c.encodeOpts, opts...)
	})
}

// DecoderConfig holds the settings of a Decoder.
type DecoderConfig struct {
	verifyChecksum bool
	decodeOpts     []chaincode.DecodeOption
}

func newDecoderConfig() *DecoderConfig {
	return &DecoderConfig{verifyChecksum: true}
}

// DecoderOption is a functional option for configuring NewDecoder.
type DecoderOption = options.Option[*DecoderConfig]

// WithChecksum enables or disables the data payload checksum check. Default is true.
func WithChecksum(enabled bool) DecoderOption {
	return options.NoError(func(c *DecoderConfig) {
		c.verifyChecksum = enabled
	})
}

// WithDecodeOptions passes options to chaincode.Decode when shapes are read from the set.
func WithDecodeOptions(opts ...chaincode.DecodeOption) DecoderOption {
	return options.NoError(func(c *DecoderConfig) {
		c.decodeOpts = append(c.decodeOpts, opts...)
	})
}
