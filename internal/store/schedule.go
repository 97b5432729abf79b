package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/qutech-delft/circuitgraph/circuit"
)

// Schedule is one exported snapshot of a resolved circuit.
type Schedule struct {
	ID         int64
	Name       string
	NumQubits  int
	Duration   float64
	Operations []ScheduledOperation
}

// ScheduledOperation is one primitive operation row of a schedule.
// Qubits and Channels are comma-joined lists, resolved at export time.
type ScheduledOperation struct {
	Position  int
	Name      string
	Qubits    string
	Channels  string
	StartTime float64
	Duration  float64
	EndTime   float64
}

// namer is satisfied by catalog operations carrying a display name.
type namer interface {
	Name() string
}

// SnapshotOperations resolves the given operations into schedule rows.
func SnapshotOperations(operations []circuit.Operation) []ScheduledOperation {
	rows := make([]ScheduledOperation, 0, len(operations))
	for position, op := range operations {
		rows = append(rows, ScheduledOperation{
			Position:  position,
			Name:      operationName(op),
			Qubits:    qubitList(op),
			Channels:  channelList(op),
			StartTime: op.StartTime(),
			Duration:  op.Duration(),
			EndTime:   op.EndTime(),
		})
	}
	return rows
}

// WriteSchedule exports a resolved circuit snapshot in one transaction
// and returns the schedule id.
func (s *Store) WriteSchedule(ctx context.Context, name string, numQubits int, operations []circuit.Operation) (int64, error) {
	rows := SnapshotOperations(operations)
	duration := 0.0
	for _, row := range rows {
		if row.EndTime > duration {
			duration = row.EndTime
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("write schedule: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	result, err := tx.ExecContext(ctx, `
		INSERT INTO schedules (name, num_qubits, duration)
		VALUES (?, ?, ?)
	`, name, numQubits, duration)
	if err != nil {
		return 0, fmt.Errorf("write schedule: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("write schedule: %w", err)
	}

	for _, row := range rows {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO schedule_operations
			(schedule_id, position, name, qubits, channels, start_time, duration, end_time)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, id, row.Position, row.Name, row.Qubits, row.Channels,
			row.StartTime, row.Duration, row.EndTime)
		if err != nil {
			return 0, fmt.Errorf("write schedule operation %d: %w", row.Position, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("write schedule: commit: %w", err)
	}
	return id, nil
}

// ReadSchedule loads an exported schedule by id. Returns ErrNotFound for
// unknown ids.
func (s *Store) ReadSchedule(ctx context.Context, id int64) (Schedule, error) {
	var schedule Schedule
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, num_qubits, duration
		FROM schedules WHERE id = ?
	`, id).Scan(&schedule.ID, &schedule.Name, &schedule.NumQubits, &schedule.Duration)
	if errors.Is(err, sql.ErrNoRows) {
		return Schedule{}, ErrNotFound
	}
	if err != nil {
		return Schedule{}, fmt.Errorf("read schedule: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT position, name, qubits, channels, start_time, duration, end_time
		FROM schedule_operations
		WHERE schedule_id = ?
		ORDER BY position ASC
	`, id)
	if err != nil {
		return Schedule{}, fmt.Errorf("read schedule operations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var op ScheduledOperation
		if err := rows.Scan(&op.Position, &op.Name, &op.Qubits, &op.Channels,
			&op.StartTime, &op.Duration, &op.EndTime); err != nil {
			return Schedule{}, fmt.Errorf("scan schedule operation: %w", err)
		}
		schedule.Operations = append(schedule.Operations, op)
	}
	if err := rows.Err(); err != nil {
		return Schedule{}, fmt.Errorf("read schedule operations: %w", err)
	}
	return schedule, nil
}

// ListSchedules returns the exported schedules without their operation
// rows, most recent first.
func (s *Store) ListSchedules(ctx context.Context) ([]Schedule, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, num_qubits, duration
		FROM schedules
		ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	defer rows.Close()

	var schedules []Schedule
	for rows.Next() {
		var schedule Schedule
		if err := rows.Scan(&schedule.ID, &schedule.Name, &schedule.NumQubits, &schedule.Duration); err != nil {
			return nil, fmt.Errorf("scan schedule: %w", err)
		}
		schedules = append(schedules, schedule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	return schedules, nil
}

func operationName(op circuit.Operation) string {
	named, ok := op.(namer)
	if !ok {
		return fmt.Sprintf("%T", op)
	}
	return named.Name()
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
