package circuit

import "errors"

// ErrEmptyCircuit is returned by lookups that need at least one operation
// in the circuit.
var ErrEmptyCircuit = errors.New("circuit: no operations added")
