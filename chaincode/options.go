package chaincode

import (
	"fmt"

	"github.com/arloliu/polycode/internal/options"
)

// EncodeConfig holds the settings of an encode call.
type EncodeConfig struct {
	concurrency       int
	pruning           bool
	pendingPruning    bool
	connectivityCheck bool
}

func newEncodeConfig() *EncodeConfig {
	return &EncodeConfig{
		concurrency: 1,
		pruning:     true,
	}
}

// EncodeOption is a functional option for configuring Encode, EncodeWithConfig and Candidates.
type EncodeOption = options.Option[*EncodeConfig]

// WithConcurrency sets the number of workers searching the configurations.
// The result does not depend on the worker count. Default is 1.
func WithConcurrency(n int) EncodeOption {
	return options.New(func(c *EncodeConfig) error {
		if n < 1 {
			return fmt.Errorf("invalid concurrency: %d", n)
		}
		c.concurrency = n

		return nil
	})
}

// WithPruning enables or disables dead-end pruning of push commands.
// Disabling it produces longer but still decodable streams. Default is true.
func WithPruning(enabled bool) EncodeOption {
	return options.NoError(func(c *EncodeConfig) {
		c.pruning = enabled
	})
}

// WithPendingPruning also removes the pushes of branches that are still saved when the
// walk ends. Those pushes are never popped, so the stream decodes to the same cells in
// fewer bits, but the output differs from the standard encoding. Default is false.
func WithPendingPruning(enabled bool) EncodeOption {
	return options.NoError(func(c *EncodeConfig) {
		c.pendingPruning = enabled
	})
}

// WithConnectivityCheck rejects shapes that are not 4-connected before searching.
// Default is false, in which case such shapes fail with errs.ErrUncoverableShape.
func WithConnectivityCheck(enabled bool) EncodeOption {
	return options.NoError(func(c *EncodeConfig) {
		c.connectivityCheck = enabled
	})
}

// DecodeConfig holds the settings of a decode call.
type DecodeConfig struct {
	strict bool
}

// DecodeOption is a functional option for configuring Decode.
type DecodeOption = options.Option[*DecodeConfig]

// WithStrict makes Decode reject a pop with no saved branch instead of ignoring it.
// Default is false.
func WithStrict(strict bool) DecodeOption {
	return options.NoError(func(c *DecodeConfig) {
		c.strict = strict
	})
}
