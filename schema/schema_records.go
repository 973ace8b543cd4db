package schema

import "time"

// TaskRecord is a task as returned by the host's task queries.
type TaskRecord struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Status    TaskStatus `json:"status"`
	Type      TaskType   `json:"type"`
	DueDate   *time.Time `json:"dueDate,omitempty"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// IsDone reports whether the task has been completed.
func (t TaskRecord) IsDone() bool {
	return t.Status == TaskDone
}

// MoodRecord is a single mood observation for the care recipient.
type MoodRecord struct {
	Rating     string    `json:"rating"`
	ObservedAt time.Time `json:"observedAt"`
}

// RoutineInstance is one day's check-in for a routine. Answers is empty when
// nobody filled the check-in in.
type RoutineInstance struct {
	RoutineID string         `json:"routineId"`
	Date      time.Time      `json:"date"`
	Answers   map[string]any `json:"answers"`
}

// BurdenAssessment is a submitted caregiver-burden questionnaire.
type BurdenAssessment struct {
	Score       float64   `json:"score"`
	SubmittedAt time.Time `json:"submittedAt"`
}
