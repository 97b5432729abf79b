// Package graph provides the generic branch-DAG primitives underlying
// circuit scheduling.
//
// A Branch fixes two sentinel nodes, an entry and an exit, so that callers
// always attach new nodes before the exit and always enumerate from the
// entry. Nodes carry an arbitrary payload value; the circuit package wraps
// them around operations.
//
// Key design constraints:
//   - Single-goroutine access only; no internal locking.
//   - Layer iteration is capped by MaxLayerIterations: pathological cyclic
//     wiring truncates with a warning instead of hanging.
//   - Paths is exponential in the branching factor and is opt-in; linear
//     consumers use Nodes.
package graph
