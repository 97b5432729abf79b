// Package ops provides the operation catalog for transmon-style circuits:
// single- and two-qubit gates, dispersive measurement, barriers and
// virtual placeholders.
//
// Catalog operations are built through a Factory bound to a duration
// table, so that gate durations follow the table at resolution time
// instead of being frozen at construction.
package ops
