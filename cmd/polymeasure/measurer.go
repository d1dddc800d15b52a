package main

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"go.uber.org/zap"

	"github.com/arloliu/polycode/chaincode"
	"github.com/arloliu/polycode/compress"
	"github.com/arloliu/polycode/errs"
	"github.com/arloliu/polycode/internal/hash"
	"github.com/arloliu/polycode/regression"
	"github.com/arloliu/polycode/shape"
	"github.com/arloliu/polycode/shapeset"
)

// Bucket aggregates the encoded sizes of shapes with the same cell count.
type Bucket struct {
	Cells      int
	Count      int
	MinBytes   int
	MaxBytes   int
	TotalBytes int
}

// AvgBytes returns the mean encoded size in the bucket.
func (b Bucket) AvgBytes() float64 {
	if b.Count == 0 {
		return 0
	}

	return float64(b.TotalBytes) / float64(b.Count)
}

// Report is the outcome of one measurement run.
type Report struct {
	Shapes     int
	TotalCells int
	// TotalBytes is the encoded size with pruning, NaiveBytes without.
	TotalBytes int
	NaiveBytes int
	Buckets    []Bucket
	// Winners counts how often each configuration index produced the shortest encoding.
	Winners map[uint8]int
	// Fingerprint is an xxHash64 digest over every encoded shape, in order.
	Fingerprint uint64
	// Model is nil when the shapes cover too few distinct cell counts.
	Model *regression.Result
	// Payload describes compressing the concatenated encodings with the chosen codec.
	Payload compress.Stats
	SetPath string
	SetSize int
}

// PruningSavings returns the fraction of bytes dead-end pruning removed.
func (r *Report) PruningSavings() float64 {
	if r.NaiveBytes == 0 {
		return 0
	}

	return 1 - float64(r.TotalBytes)/float64(r.NaiveBytes)
}

// Measure encodes every shape with and without pruning, verifies each round trip and
// collects the statistics of the run. With cfg.Output set, the pruned encodings are also
// written as a shape set.
func Measure(shapes [][]shape.Coord, cfg Config, logger *zap.Logger) (*Report, error) {
	ct, err := cfg.CompressionType()
	if err != nil {
		return nil, err
	}

	opts := []chaincode.EncodeOption{chaincode.WithConcurrency(cfg.Concurrency)}
	naiveOpts := []chaincode.EncodeOption{chaincode.WithConcurrency(cfg.Concurrency), chaincode.WithPruning(false)}

	report := &Report{Shapes: len(shapes), Winners: make(map[uint8]int)}
	buckets := make(map[int]*Bucket)
	samples := make([]regression.Sample, 0, len(shapes))
	encoded := make([][]byte, 0, len(shapes))
	digest := hash.NewDigest()
	var payload []byte

	for i, cells := range shapes {
		data, err := chaincode.Encode(cells, opts...)
		if err != nil {
			return nil, fmt.Errorf("encoding shape %d: %w", i, err)
		}
		naive, err := chaincode.Encode(cells, naiveOpts...)
		if err != nil {
			return nil, fmt.Errorf("encoding shape %d without pruning: %w", i, err)
		}

		decoded, err := chaincode.Decode(data, chaincode.WithStrict(true))
		if err != nil {
			return nil, fmt.Errorf("decoding shape %d: %w", i, err)
		}
		if !shape.EqualNormalized(decoded, cells) {
			return nil, fmt.Errorf("shape %d: round trip mismatch, %d cells in, %d out", i, len(cells), len(decoded))
		}

		n := len(cells)
		b, ok := buckets[n]
		if !ok {
			b = &Bucket{Cells: n, MinBytes: len(data), MaxBytes: len(data)}
			buckets[n] = b
		}
		b.Count++
		b.TotalBytes += len(data)
		b.MinBytes = min(b.MinBytes, len(data))
		b.MaxBytes = max(b.MaxBytes, len(data))

		report.TotalCells += n
		report.TotalBytes += len(data)
		report.NaiveBytes += len(naive)
		if len(data) > 0 {
			report.Winners[data[0]]++
		}

		digest.Add(data)
		payload = append(payload, data...)
		encoded = append(encoded, data)
		samples = append(samples, regression.Sample{Cells: n, Bytes: len(data)})

		if ce := logger.Check(zap.DebugLevel, "encoded shape"); ce != nil {
			ce.Write(zap.Int("shape", i), zap.Int("cells", n), zap.Int("bytes", len(data)), zap.Int("naive", len(naive)))
		}
	}

	for _, b := range buckets {
		report.Buckets = append(report.Buckets, *b)
	}
	slices.SortFunc(report.Buckets, func(a, b Bucket) int { return a.Cells - b.Cells })
	report.Fingerprint = digest.Sum64()

	report.Model, err = regression.Analyze(samples)
	if errors.Is(err, errs.ErrInsufficientSamples) {
		logger.Warn("skipping size model", zap.Error(err))
	} else if err != nil {
		return nil, err
	}

	report.Payload, err = compress.Measure(ct, payload)
	if err != nil {
		return nil, fmt.Errorf("measuring %s compression: %w", ct, err)
	}

	if cfg.Output != "" {
		size, err := writeShapeSet(cfg, encoded)
		if err != nil {
			return nil, err
		}
		report.SetPath = cfg.Output
		report.SetSize = size
		logger.Info("wrote shape set", zap.String("path", cfg.Output), zap.Int("bytes", size), zap.Stringer("compression", ct))
	}

	return report, nil
}

func writeShapeSet(cfg Config, encoded [][]byte) (int, error) {
	ct, err := cfg.CompressionType()
	if err != nil {
		return 0, err
	}

	enc, err := shapeset.NewEncoder(shapeset.WithCompression(ct))
	if err != nil {
		return 0, err
	}
	for i, data := range encoded {
		if err := enc.AddEncoded(uint64(i), data); err != nil { //nolint:gosec
			return 0, fmt.Errorf("adding shape %d: %w", i, err)
		}
	}

	data, err := enc.Finish()
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(cfg.Output, data, 0o600); err != nil {
		return 0, fmt.Errorf("writing shape set: %w", err)
	}

	return len(data), nil
}
