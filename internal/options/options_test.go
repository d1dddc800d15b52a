package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type sampleConfig struct {
	workers int
	strict  bool
	trace   []string
}

func withWorkers(n int) Option[*sampleConfig] {
	return New(func(c *sampleConfig) error {
		if n < 1 {
			return errors.New("workers must be positive")
		}
		c.workers = n
		c.trace = append(c.trace, "workers")

		return nil
	})
}

func withStrict(strict bool) Option[*sampleConfig] {
	return NoError(func(c *sampleConfig) {
		c.strict = strict
		c.trace = append(c.trace, "strict")
	})
}

func TestApply(t *testing.T) {
	t.Run("applies in order", func(t *testing.T) {
		cfg := &sampleConfig{}
		err := Apply(cfg, withStrict(true), withWorkers(4), withStrict(false))
		require.NoError(t, err)
		require.Equal(t, 4, cfg.workers)
		require.False(t, cfg.strict)
		require.Equal(t, []string{"strict", "workers", "strict"}, cfg.trace)
	})

	t.Run("stops at first error", func(t *testing.T) {
		cfg := &sampleConfig{}
		err := Apply(cfg, withWorkers(0), withStrict(true))
		require.EqualError(t, err, "workers must be positive")
		require.False(t, cfg.strict)
		require.Empty(t, cfg.trace)
	})

	t.Run("no options", func(t *testing.T) {
		cfg := &sampleConfig{workers: 2}
		require.NoError(t, Apply(cfg))
		require.Equal(t, 2, cfg.workers)
	})

	t.Run("nil option skipped", func(t *testing.T) {
		cfg := &sampleConfig{}
		require.NoError(t, Apply(cfg, nil, withWorkers(3)))
		require.Equal(t, 3, cfg.workers)
	})
}
