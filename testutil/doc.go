// Package testutil provides testing utilities for stargo.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random star fields and computing
// exact minimum hop counts as ground truth.
//
// # Random Galaxy Generation
//
//	rng := testutil.NewRNG(seed)
//	systems := testutil.RandomGalaxy(rng, 500, 100, 400)
//
// # Exact Search (Ground Truth)
//
//	hops := testutil.ExactMinHops(systems, start, goal, base, boost)
package testutil
