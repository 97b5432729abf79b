package circuit

import "github.com/google/uuid"

// Operation is a single schedulable circuit instruction. Implementations
// describe which channels they occupy, how they relate in time to other
// operations, and how they duplicate themselves.
//
// StartTime, Duration and EndTime are pure computations resolved through
// the relation chain on every call; nothing is cached.
type Operation interface {
	// ChannelIdentifiers lists the channels the operation occupies.
	ChannelIdentifiers() []ChannelID

	// RelationLink returns the timing relation of the operation. An
	// operation without an explicit relation starts at time zero.
	RelationLink() RelationLink
	// SetRelationLink replaces the timing relation.
	SetRelationLink(link RelationLink)

	// StartTime resolves the absolute start time through the relation.
	StartTime() float64
	// Duration resolves the current duration of the operation.
	Duration() float64
	// EndTime resolves StartTime plus Duration.
	EndTime() float64

	// Repetitions returns the intended repetition count. Primitive
	// operations always report 1.
	Repetitions() int

	// Copy duplicates the operation, remapping its relation reference
	// through the transfer table. A nil table drops all references.
	Copy(table *TransferTable) Operation
	// ApplyModifiers applies pending structural modifiers in place and
	// returns the operation. Primitive operations return themselves.
	ApplyModifiers() Operation
	// Decomposed returns the flat primitive operations, depth first.
	// Primitive operations return themselves as a single element.
	Decomposed() []Operation
}

// HasRelation reports whether op carries a relation with a resolvable
// reference.
func HasRelation(op Operation) bool {
	link := op.RelationLink()
	return link != nil && link.Reference() != nil
}

// DurationStrategy resolves the duration of an operation at call time.
type DurationStrategy interface {
	VariableDuration(op Operation) float64
}

// FixedDurationStrategy always reports the same duration.
type FixedDurationStrategy struct {
	Duration float64
}

func (s FixedDurationStrategy) VariableDuration(Operation) float64 { return s.Duration }

// DynamicDurationStrategy resolves the duration through a callback,
// re-evaluated on every timing resolution.
type DynamicDurationStrategy struct {
	Call func() float64
}

func (s DynamicDurationStrategy) VariableDuration(Operation) float64 { return s.Call() }

// RepetitionStrategy resolves the repetition count of an operation at the
// moment modifiers are applied.
type RepetitionStrategy interface {
	RepetitionCount(op Operation) int
}

// FixedRepetitionStrategy always reports the same count.
type FixedRepetitionStrategy struct {
	Repetitions int
}

func (s FixedRepetitionStrategy) RepetitionCount(Operation) int { return s.Repetitions }

// DynamicRepetitionStrategy resolves the count through a callback.
type DynamicRepetitionStrategy struct {
	Call func() int
}

func (s DynamicRepetitionStrategy) RepetitionCount(Operation) int { return s.Call() }

// AcquisitionTag identifies a logical acquisition stream: measurements of
// one qubit under one caller-chosen label.
type AcquisitionTag struct {
	QubitIndex int
	Tag        string
}

// AcquisitionID identifies a single acquisition instance. The unique
// component separates repeated measurements in the same stream; every
// measurement copy receives a fresh one.
type AcquisitionID struct {
	AcquisitionTag
	Unique uuid.UUID
}

// NewAcquisitionID creates an identifier for one measurement instance.
func NewAcquisitionID(qubit int, tag string) AcquisitionID {
	return AcquisitionID{
		AcquisitionTag: AcquisitionTag{QubitIndex: qubit, Tag: tag},
		Unique:         uuid.New(),
	}
}

// EqualTag reports whether two identifiers belong to the same logical
// acquisition stream, ignoring the unique component.
func (id AcquisitionID) EqualTag(other AcquisitionID) bool {
	return id.AcquisitionTag == other.AcquisitionTag
}

// AcquisitionInfo carries the resolved indices of one acquisition.
// Indices are -1 when the acquisition is not part of the scanned circuit.
type AcquisitionInfo struct {
	// QubitLevelIndex counts preceding acquisitions on the same qubit.
	QubitLevelIndex int
	// CircuitLevelIndex counts preceding acquisitions anywhere.
	CircuitLevelIndex int
}

// AcquisitionOperation is implemented by operations that record a
// measurement outcome.
type AcquisitionOperation interface {
	Operation
	AcquisitionIdentifier() AcquisitionID
	AcquisitionIndex() int
	CircuitLevelAcquisitionIndex() int
}

// AcquisitionStrategy resolves acquisition indices against a reference
// circuit.
type AcquisitionStrategy interface {
	AcquisitionInfo(op AcquisitionOperation) AcquisitionInfo
	// Copy remaps the strategy's reference circuit through the transfer
	// table so that copied measurements index into the copied circuit.
	Copy(table *TransferTable) AcquisitionStrategy
}
