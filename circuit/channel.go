package circuit

import "fmt"

// QubitChannel enumerates the resource lanes of a single qubit. Two
// operations occupying a matching channel on the same qubit are serialized
// unless an explicit relation overrides the ordering.
type QubitChannel int

const (
	// ChannelReadout carries dispersive measurement pulses.
	ChannelReadout QubitChannel = iota + 1
	// ChannelMicrowave carries single-qubit drive pulses.
	ChannelMicrowave
	// ChannelFlux carries flux bias pulses for two-qubit interactions.
	ChannelFlux
	// ChannelAll claims every lane of the qubit at once.
	ChannelAll
)

func (c QubitChannel) String() string {
	switch c {
	case ChannelReadout:
		return "readout"
	case ChannelMicrowave:
		return "microwave"
	case ChannelFlux:
		return "flux"
	case ChannelAll:
		return "all"
	default:
		return fmt.Sprintf("channel(%d)", int(c))
	}
}

// ChannelID identifies one resource lane on a specific qubit.
type ChannelID struct {
	Qubit   int
	Channel QubitChannel
}

func (c ChannelID) String() string {
	return fmt.Sprintf("q%d/%s", c.Qubit, c.Channel)
}

// Matches implements the relaxed channel equality used for scheduling:
// identifiers on different qubits never match, identifiers on the same
// qubit match when their channel kinds are equal or when either side
// claims ChannelAll.
func (c ChannelID) Matches(other ChannelID) bool {
	if c.Qubit != other.Qubit {
		return false
	}
	if c.Channel == other.Channel {
		return true
	}
	return c.Channel == ChannelAll || other.Channel == ChannelAll
}

// anyChannelMatches reports whether any identifier in claimed matches any
// identifier in candidates under the relaxed equality.
func anyChannelMatches(claimed, candidates []ChannelID) bool {
	for _, a := range claimed {
		for _, b := range candidates {
			if a.Matches(b) {
				return true
			}
		}
	}
	return false
}

// uniqueChannels filters identifiers that match an earlier identifier
// under the relaxed equality, preserving first-seen order.
func uniqueChannels(ids []ChannelID) []ChannelID {
	result := ids[:0:0]
	for _, id := range ids {
		duplicate := false
		for _, kept := range result {
			if kept.Matches(id) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			result = append(result, id)
		}
	}
	return result
}
