// Package model defines the artifact value types stored by embergo.
//
// # Artifact Types
//
//   - Problem: a bias-weighted interaction graph (linear + quadratic biases,
//     offset, variable domain)
//   - Graph: an undirected topology, used both as a problem's interaction
//     structure and as the physical device an embedding maps onto
//   - SampleSet: an ordered multiset of (assignment, energy, occurrences)
//     records with free-form metadata
//
// All three are plain values: problems and graphs are immutable once
// fingerprinted, sample sets grow only through [Concat]. None of the types
// hold references to the store that persisted them.
package model
