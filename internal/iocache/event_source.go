package iocache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/LakGar/Coco-sub001/internal/contract"
	"github.com/LakGar/Coco-sub001/schema"
)

// SQLEventSource answers the snapshot engine's queries from the host's care tables.
type SQLEventSource struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.EventSource = &SQLEventSource{} // Compile-time check

// NewSQLEventSource opens the care database. It does not create or migrate
// tables; see MigrateEvents for local databases.
func NewSQLEventSource(backend schema.DatabaseBackend, connStr string) (*SQLEventSource, error) {
	if backend == schema.NoneBackend {
		return nil, fmt.Errorf("events backend cannot be none")
	}
	db, err := openDatabase(backend, connStr, contract.GetEventsDBFilePath())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize event source: %w", err)
	}
	return &SQLEventSource{db: db, backend: backend}, nil
}

// NewSQLEventSourceFromDB wraps an already open connection.
func NewSQLEventSourceFromDB(db *sql.DB, backend schema.DatabaseBackend) *SQLEventSource {
	return &SQLEventSource{db: db, backend: backend}
}

// DB returns the underlying connection.
func (es *SQLEventSource) DB() *sql.DB {
	return es.db
}

// Close closes the underlying DB connection.
func (es *SQLEventSource) Close() error {
	if es.db != nil {
		return es.db.Close()
	}
	return nil
}

// query rebinds placeholders, formats time arguments and runs the query.
func (es *SQLEventSource) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	for i, arg := range args {
		if t, ok := arg.(time.Time); ok {
			args[i] = formatTime(t, es.backend)
		}
	}
	return es.db.QueryContext(ctx, rebind(query, es.backend), args...)
}

func (es *SQLEventSource) table(name string) string {
	return quoteTableName(name, es.backend)
}

// Tasks returns tasks completed (by last update) or due within [from, to).
func (es *SQLEventSource) Tasks(ctx context.Context, entityID string, from, to time.Time) ([]schema.TaskRecord, error) {
	q := fmt.Sprintf(`SELECT id, title, status, type, due_date, updated_at FROM %s
		WHERE owner_entity_id = ?
		AND ((status = ? AND updated_at >= ? AND updated_at < ?) OR (due_date >= ? AND due_date < ?))
		ORDER BY id`, es.table("tasks"))
	rows, err := es.query(ctx, q, entityID, string(schema.TaskDone), from, to, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	return scanTasks(rows)
}

// MedicationTasks returns medication-typed tasks due within [from, to).
func (es *SQLEventSource) MedicationTasks(ctx context.Context, entityID string, from, to time.Time) ([]schema.TaskRecord, error) {
	q := fmt.Sprintf(`SELECT id, title, status, type, due_date, updated_at FROM %s
		WHERE owner_entity_id = ? AND type = ? AND due_date >= ? AND due_date < ?
		ORDER BY id`, es.table("tasks"))
	rows, err := es.query(ctx, q, entityID, string(schema.TaskTypeMedication), from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query medication tasks: %w", err)
	}
	return scanTasks(rows)
}

func scanTasks(rows *sql.Rows) ([]schema.TaskRecord, error) {
	defer func() { _ = rows.Close() }()

	var results []schema.TaskRecord
	for rows.Next() {
		var record schema.TaskRecord
		var status, taskType string
		var due, updated dbTime
		if err := rows.Scan(&record.ID, &record.Title, &status, &taskType, &due, &updated); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		record.Status = schema.TaskStatus(status)
		record.Type = schema.TaskType(taskType)
		if due.Valid {
			dueDate := due.Time
			record.DueDate = &dueDate
		}
		record.UpdatedAt = updated.Time
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tasks: %w", err)
	}
	return results, nil
}

// Moods returns mood observations recorded within [from, to).
func (es *SQLEventSource) Moods(ctx context.Context, entityID string, from, to time.Time) ([]schema.MoodRecord, error) {
	q := fmt.Sprintf(`SELECT rating, observed_at FROM %s
		WHERE owner_entity_id = ? AND observed_at >= ? AND observed_at < ?
		ORDER BY observed_at`, es.table("moods"))
	rows, err := es.query(ctx, q, entityID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query moods: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.MoodRecord
	for rows.Next() {
		var record schema.MoodRecord
		var observed dbTime
		if err := rows.Scan(&record.Rating, &observed); err != nil {
			return nil, fmt.Errorf("failed to scan mood: %w", err)
		}
		record.ObservedAt = observed.Time
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating moods: %w", err)
	}
	return results, nil
}

// RoutineInstances returns routine check-ins dated within [from, to).
func (es *SQLEventSource) RoutineInstances(ctx context.Context, entityID string, from, to time.Time) ([]schema.RoutineInstance, error) {
	q := fmt.Sprintf(`SELECT routine_id, instance_date, answers FROM %s
		WHERE owner_entity_id = ? AND instance_date >= ? AND instance_date < ?
		ORDER BY instance_date, routine_id`, es.table("routine_instances"))
	rows, err := es.query(ctx, q, entityID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query routine instances: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RoutineInstance
	for rows.Next() {
		var record schema.RoutineInstance
		var date dbTime
		var answers sql.NullString
		if err := rows.Scan(&record.RoutineID, &date, &answers); err != nil {
			return nil, fmt.Errorf("failed to scan routine instance: %w", err)
		}
		record.Date = date.Time
		record.Answers = map[string]any{}
		if answers.Valid && answers.String != "" {
			if err := json.Unmarshal([]byte(answers.String), &record.Answers); err != nil {
				return nil, fmt.Errorf("failed to decode answers for routine %s: %w", record.RoutineID, err)
			}
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating routine instances: %w", err)
	}
	return results, nil
}

// BurdenAssessments returns assessments submitted within [from, to), oldest first.
func (es *SQLEventSource) BurdenAssessments(ctx context.Context, entityID string, from, to time.Time) ([]schema.BurdenAssessment, error) {
	q := fmt.Sprintf(`SELECT score, submitted_at FROM %s
		WHERE owner_entity_id = ? AND submitted_at >= ? AND submitted_at < ?
		ORDER BY submitted_at`, es.table("burden_assessments"))
	rows, err := es.query(ctx, q, entityID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query burden assessments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.BurdenAssessment
	for rows.Next() {
		var record schema.BurdenAssessment
		var submitted dbTime
		if err := rows.Scan(&record.Score, &submitted); err != nil {
			return nil, fmt.Errorf("failed to scan burden assessment: %w", err)
		}
		record.SubmittedAt = submitted.Time
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating burden assessments: %w", err)
	}
	return results, nil
}

// ActiveRoutineCount returns the number of routines not archived.
func (es *SQLEventSource) ActiveRoutineCount(ctx context.Context, entityID string) (int, error) {
	q := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE owner_entity_id = ? AND archived_at IS NULL`, es.table("routines"))
	var count int
	if err := es.db.QueryRowContext(ctx, rebind(q, es.backend), entityID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active routines: %w", err)
	}
	return count, nil
}

// NoteCount returns the number of notes created within [from, to).
func (es *SQLEventSource) NoteCount(ctx context.Context, entityID string, from, to time.Time) (int, error) {
	q := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE owner_entity_id = ? AND created_at >= ? AND created_at < ?`, es.table("notes"))
	var count int
	err := es.db.QueryRowContext(ctx, rebind(q, es.backend), entityID,
		formatTime(from, es.backend), formatTime(to, es.backend)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count notes: %w", err)
	}
	return count, nil
}
