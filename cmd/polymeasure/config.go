package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/polycode/compress"
	"github.com/arloliu/polycode/format"
)

// Config holds the measurement parameters. Every field can come from the YAML file given
// with --config; flags set on the command line override the file.
type Config struct {
	Shapes      int    `yaml:"shapes"`
	MinCells    int    `yaml:"min_cells"`
	MaxCells    int    `yaml:"max_cells"`
	Seed        int64  `yaml:"seed"`
	Concurrency int    `yaml:"concurrency"`
	Compression string `yaml:"compression"`
	// Output is the path of the shape set file to write. Empty skips writing.
	Output  string `yaml:"output"`
	Verbose bool   `yaml:"verbose"`
}

// Default returns the configuration used when neither a file nor flags set a value.
func Default() Config {
	return Config{
		Shapes:      500,
		MinCells:    4,
		MaxCells:    64,
		Seed:        42,
		Concurrency: runtime.GOMAXPROCS(0),
		Compression: "zstd",
	}
}

// LoadFile reads a YAML configuration on top of the defaults.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// CompressionType returns the parsed shape set compression.
func (c Config) CompressionType() (format.CompressionType, error) {
	return compress.ParseCompressionType(c.Compression)
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errList []error
	if c.Shapes <= 0 {
		errList = append(errList, fmt.Errorf("shapes must be positive, got %d", c.Shapes))
	}
	if c.MinCells < 1 {
		errList = append(errList, fmt.Errorf("min-cells must be at least 1, got %d", c.MinCells))
	}
	if c.MaxCells < c.MinCells {
		errList = append(errList, fmt.Errorf("max-cells %d is below min-cells %d", c.MaxCells, c.MinCells))
	}
	if c.Concurrency < 1 {
		errList = append(errList, fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency))
	}
	if _, err := c.CompressionType(); err != nil {
		errList = append(errList, err)
	}

	return errors.Join(errList...)
}
