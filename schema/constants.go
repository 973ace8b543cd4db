package schema

import "errors"

// Custom string types for type safety.
type (
	// Severity represents how urgent a highlight is.
	Severity string

	// TaskStatus represents the workflow state of a task.
	TaskStatus string

	// TaskType represents the kind of a task.
	TaskType string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents a database backend for snapshots or events.
	DatabaseBackend string
)

// All highlight severities.
const (
	SeverityInfo     Severity = "info"
	SeverityWarn     Severity = "warn"
	SeverityCritical Severity = "critical"
)

// Task statuses as stored by the host.
const (
	TaskTodo       TaskStatus = "TODO"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskDone       TaskStatus = "DONE"
	TaskCancelled  TaskStatus = "CANCELLED"
)

// Task types as stored by the host.
const (
	TaskTypeGeneral     TaskType = "GENERAL"
	TaskTypeMedication  TaskType = "MEDICATION"
	TaskTypeAppointment TaskType = "APPOINTMENT"
)

// Metric keys used in SeriesPoint.Metrics.
const (
	MetricCompleted = "completed"
	MetricOverdue   = "overdue"
	MetricDueSoon   = "dueSoon"
	MetricPositive  = "positive"
	MetricLow       = "low"
	MetricAgitated  = "agitated"
	MetricTotal     = "total"
	MetricPercent   = "percent"
)

// Metric key sets per source, in display order.
var (
	TaskMetricKeys       = []string{MetricCompleted, MetricOverdue, MetricDueSoon}
	MoodMetricKeys       = []string{MetricPositive, MetricLow, MetricAgitated, MetricTotal}
	RoutineMetricKeys    = []string{MetricCompleted, MetricTotal, MetricPercent}
	MedicationMetricKeys = []string{MetricCompleted, MetricTotal, MetricPercent}
)

// Mood ratings grouped into buckets. Anything not listed here is agitated
// (anxious, irritable, restless, confused, ...).
var (
	PositiveMoods = map[string]struct{}{"calm": {}, "content": {}, "neutral": {}, "relaxed": {}}
	LowMoods      = map[string]struct{}{"sad": {}, "withdrawn": {}, "tired": {}}
)

// Supported window sizes in days.
const (
	WeekWindow  = 7
	MonthWindow = 30
)

// ValidWindowDays lists all valid window sizes.
var ValidWindowDays = map[int]struct{}{
	WeekWindow:  {},
	MonthWindow: {},
}

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	CSVOut     OutputMode = "csv"
	ParquetOut OutputMode = "parquet"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	JSONOut:    {},
	CSVOut:     {},
	ParquetOut: {},
}

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// Sentinel errors.
var (
	ErrInvalidWindow      = errors.New("window days must be 7 or 30")
	ErrUnsupportedBackend = errors.New("unsupported database backend")
)

// ValidateWindowDays returns ErrInvalidWindow for anything other than 7 or 30.
func ValidateWindowDays(windowDays int) error {
	if _, ok := ValidWindowDays[windowDays]; !ok {
		return ErrInvalidWindow
	}
	return nil
}
