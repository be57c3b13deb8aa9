// Package detail generates procedural micro-details for inspected objects.
//
// # Determinism
//
// Every call derives its own random source from (seed, object id, zoom level)
// instead of drawing from a shared generator. Identical inputs therefore
// reproduce identical text across processes and call orders, which keeps
// save files stable: a reloaded game regenerates exactly what the player saw.
// The derivation is versioned by derivationVersion and must not change for a
// given version.
//
// # Caching
//
// GenerateDetails memoizes by (object id, zoom level). SetSeed drops the whole
// cache so generated content never outlives the seed that produced it.
package detail
