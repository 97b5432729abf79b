// Package circuit implements the operation model, the relation-based lazy
// timing algebra, and the composite-operation engine for declarative
// quantum gate circuits.
//
// Operations are added to a composite with optional explicit timing
// relations to other operations; concrete start/end times are resolved on
// demand from the relation graph rather than stored. Operations on the
// same channel are serialized in insertion order unless the caller
// declares a relation that overrides it.
//
// Key design constraints:
//   - Timing resolution is a pure, uncached computation. Mutating a
//     duration source is immediately visible on the next resolution.
//   - Relation references are non-owning; identity is Go interface
//     identity. Copying requires an explicit TransferTable, and a
//     reference missing from the table degrades to "no reference" with a
//     recorded warning instead of failing.
//   - Single-goroutine access only; no internal locking.
package circuit
