package tienlen

import "tienlen-server/internal/rng"

// Options are options for creating a new game
type Options struct {
	// RNG shuffles the deck before the deal
	RNG rng.Generator
}

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{
		RNG: rng.Crypto{},
	}
}
