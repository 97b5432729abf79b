// Package render produces deterministic text views of resolved circuit
// schedules, for inspection and golden testing.
package render

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/qutech-delft/circuitgraph/circuit"
)

var titleCaser = cases.Title(language.English)

// namer is satisfied by catalog operations carrying a display name.
type namer interface {
	Name() string
}

// Schedule renders the operations as a fixed-layout table, one row per
// operation in schedule order, with resolved start and end times.
func Schedule(name string, operations []circuit.Operation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "schedule %s: %d operations, duration %.2f\n",
		name, len(operations), scheduleDuration(operations))
	for i, op := range operations {
		fmt.Fprintf(&b, "%2d | %-14s | %-5s | %7.2f | %7.2f | %s\n",
			i, displayName(op), qubitList(op), op.StartTime(), op.EndTime(), channelList(op))
	}
	return b.String()
}

func scheduleDuration(operations []circuit.Operation) float64 {
	duration := 0.0
	for _, op := range operations {
		if end := op.EndTime(); end > duration {
			duration = end
		}
	}
	return duration
}

func displayName(op circuit.Operation) string {
	named, ok := op.(namer)
	if !ok {
		return fmt.Sprintf("%T", op)
	}
	return titleCaser.String(strings.ReplaceAll(named.Name(), "_", " "))
}

func qubitList(op circuit.Operation) string {
	seen := make(map[int]struct{})
	var qubits []int
	for _, id := range op.ChannelIdentifiers() {
		if _, ok := seen[id.Qubit]; ok {
			continue
		}
		seen[id.Qubit] = struct{}{}
		qubits = append(qubits, id.Qubit)
	}
	sort.Ints(qubits)
	parts := make([]string, 0, len(qubits))
	for _, qubit := range qubits {
		parts = append(parts, strconv.Itoa(qubit))
	}
	return strings.Join(parts, ",")
}

func channelList(op circuit.Operation) string {
	ids := op.ChannelIdentifiers()
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, id.String())
	}
	return strings.Join(parts, ",")
}
