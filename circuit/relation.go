package circuit

import "fmt"

// RelationType describes how an operation is anchored in time to a
// reference operation.
type RelationType int

const (
	// FollowedBy starts the operation at the reference end time.
	FollowedBy RelationType = iota + 1
	// JoinedStart aligns the operation start with the reference start.
	JoinedStart
	// JoinedEnd aligns the operation end with the reference end.
	JoinedEnd
)

func (r RelationType) String() string {
	switch r {
	case FollowedBy:
		return "followed_by"
	case JoinedStart:
		return "joined_start"
	case JoinedEnd:
		return "joined_end"
	default:
		return fmt.Sprintf("relation(%d)", int(r))
	}
}

// MultiRelationType selects one reference out of a candidate group.
type MultiRelationType int

const (
	// Earliest selects the candidate with the earliest end time.
	Earliest MultiRelationType = iota + 1
	// Latest selects the candidate with the latest end time.
	Latest
)

func (r MultiRelationType) String() string {
	switch r {
	case Earliest:
		return "earliest"
	case Latest:
		return "latest"
	default:
		return fmt.Sprintf("multi_relation(%d)", int(r))
	}
}

// RelationLink anchors an operation in time relative to zero or more
// reference operations. References are non-owning; link values never
// outlive a copy without an explicit transfer through a TransferTable.
type RelationLink interface {
	// Reference resolves the effective reference operation, nil when the
	// link carries none.
	Reference() Operation
	// Relation returns the relation kind applied to the reference.
	Relation() RelationType
	// StartTime resolves the absolute start time of an operation with the
	// given duration. A link without a reference resolves to zero.
	StartTime(duration float64) float64
	// Copy duplicates the link, remapping references through the table.
	// References absent from the table are dropped with a warning.
	Copy(table *TransferTable) RelationLink
}

// Link anchors an operation to a single reference. The zero value is the
// "no relation" link and resolves start times to zero.
type Link struct {
	ref Operation
	rel RelationType
}

// NewLink creates a relation to a single reference operation.
func NewLink(ref Operation, rel RelationType) Link {
	return Link{ref: ref, rel: rel}
}

func (l Link) Reference() Operation { return l.ref }
func (l Link) Relation() RelationType { return l.rel }

func (l Link) StartTime(duration float64) float64 {
	if l.ref == nil {
		return 0
	}
	switch l.rel {
	case FollowedBy:
		return l.ref.EndTime()
	case JoinedStart:
		return l.ref.StartTime()
	case JoinedEnd:
		return l.ref.EndTime() - duration
	default:
		panic(fmt.Sprintf("circuit: start time for relation type %v not implemented", l.rel))
	}
}

func (l Link) Copy(table *TransferTable) RelationLink {
	if l.ref == nil {
		return Link{}
	}
	ref, ok := table.Resolve(l.ref)
	if !ok {
		table.warnDropped(l.ref)
		return Link{}
	}
	return Link{ref: ref, rel: l.rel}
}

// MultiLink anchors an operation to a group of candidate references and
// resolves the effective reference at call time.
type MultiLink struct {
	refs  []Operation
	group MultiRelationType
	rel   RelationType
}

// NewMultiLink creates a relation whose reference is selected from refs
// by the group rule on every resolution.
func NewMultiLink(refs []Operation, group MultiRelationType, rel RelationType) MultiLink {
	return MultiLink{refs: refs, group: group, rel: rel}
}

// Reference resolves the group rule over the candidates. Ties keep the
// first-encountered candidate.
func (l MultiLink) Reference() Operation {
	if len(l.refs) == 0 {
		return nil
	}
	chosen := l.refs[0]
	for _, ref := range l.refs[1:] {
		switch l.group {
		case Earliest:
			if ref.EndTime() < chosen.EndTime() {
				chosen = ref
			}
		default:
			if ref.EndTime() > chosen.EndTime() {
				chosen = ref
			}
		}
	}
	return chosen
}

func (l MultiLink) Relation() RelationType { return l.rel }

// References returns the candidate group.
func (l MultiLink) References() []Operation { return l.refs }

func (l MultiLink) StartTime(duration float64) float64 {
	return NewLink(l.Reference(), l.rel).StartTime(duration)
}

// Copy remaps every candidate through the table. Candidates absent from
// the table are dropped with a warning; a fully dropped group degrades to
// the no-relation link.
func (l MultiLink) Copy(table *TransferTable) RelationLink {
	var refs []Operation
	for _, ref := range l.refs {
		transferred, ok := table.Resolve(ref)
		if !ok {
			table.warnDropped(ref)
			continue
		}
		refs = append(refs, transferred)
	}
	if len(refs) == 0 {
		return Link{}
	}
	return MultiLink{refs: refs, group: l.group, rel: l.rel}
}

// TransferTable maps original operations to their copies while a circuit
// is duplicated. Relation links consult it to point copied operations at
// copied references instead of the originals.
type TransferTable struct {
	entries map[Operation]Operation
	log     *WarningLog
}

// NewTransferTable creates an empty table recording dropped references to
// log. A nil log still emits through slog.
func NewTransferTable(log *WarningLog) *TransferTable {
	return &TransferTable{entries: make(map[Operation]Operation), log: log}
}

// Put registers the copy of an original operation.
func (t *TransferTable) Put(original, replacement Operation) {
	t.entries[original] = replacement
}

// Resolve looks up the copy of an original operation. A nil table
// resolves nothing.
func (t *TransferTable) Resolve(original Operation) (Operation, bool) {
	if t == nil {
		return nil, false
	}
	replacement, ok := t.entries[original]
	return replacement, ok
}

func (t *TransferTable) warnDropped(ref Operation) {
	var log *WarningLog
	if t != nil {
		log = t.log
	}
	log.Record(WarnDroppedRelation, fmt.Sprintf("%p", ref),
		"relation reference %T not found in transfer lookup, dropping relation", ref)
}
