package regression

import (
	"fmt"

	"github.com/arloliu/polycode/chaincode"
	"github.com/arloliu/polycode/internal/options"
)

// minCellCounts is the smallest number of distinct cell counts a quadratic fit can use.
const minCellCounts = 3

// AnalyzeConfig controls how shapes are encoded and fitted.
type AnalyzeConfig struct {
	encodeOpts    []chaincode.EncodeOption
	minCellCounts int
}

func newAnalyzeConfig() *AnalyzeConfig {
	return &AnalyzeConfig{minCellCounts: minCellCounts}
}

// AnalyzeOption configures an analysis.
type AnalyzeOption = options.Option[*AnalyzeConfig]

// WithEncodeOptions sets the options AnalyzeShapes encodes with, for example
// chaincode.WithPruning(false) to model the unpruned stream.
func WithEncodeOptions(opts ...chaincode.EncodeOption) AnalyzeOption {
	return options.NoError(func(cfg *AnalyzeConfig) {
		cfg.encodeOpts = append(cfg.encodeOpts, opts...)
	})
}

// WithMinCellCounts sets how many distinct cell counts the samples must cover.
// Values below three are rejected.
func WithMinCellCounts(n int) AnalyzeOption {
	return options.New(func(cfg *AnalyzeConfig) error {
		if n < minCellCounts {
			return fmt.Errorf("min cell counts must be at least %d, got %d", minCellCounts, n)
		}
		cfg.minCellCounts = n

		return nil
	})
}
