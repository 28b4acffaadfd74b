// UCSC Course Recommender - Catalog-Driven Course Recommendations
// Copyright 2026 dharshinik0
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dharshinik0/ucsc-course-recommender

package recommend

import "fmt"

// Config contains all configuration for the recommendation engine.
type Config struct {
	// DefaultTopN is the result length used when a request leaves TopN
	// unset.
	DefaultTopN int `json:"default_top_n" koanf:"default_top_n"`

	// MaxTopN caps TopN for any single request.
	MaxTopN int `json:"max_top_n" koanf:"max_top_n"`

	// MinTokenLength drops tokens shorter than this during indexing.
	MinTokenLength int `json:"min_token_length" koanf:"min_token_length"`
}

// DefaultConfig returns the configuration used when none is provided.
func DefaultConfig() *Config {
	return &Config{
		DefaultTopN:    5,
		MaxTopN:        50,
		MinTokenLength: 2,
	}
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.DefaultTopN <= 0 {
		return fmt.Errorf("default_top_n must be positive, got %d", c.DefaultTopN)
	}
	if c.MaxTopN < c.DefaultTopN {
		return fmt.Errorf("max_top_n %d must be >= default_top_n %d", c.MaxTopN, c.DefaultTopN)
	}
	if c.MinTokenLength < 1 {
		return fmt.Errorf("min_token_length must be >= 1, got %d", c.MinTokenLength)
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
