package iocache

import (
	"context"
	"fmt"
	"time"

	"github.com/LakGar/Coco-sub001/schema"
)

// SeedSummary counts the rows written by SeedEvents.
type SeedSummary struct {
	Tasks     int `json:"tasks"`
	Moods     int `json:"moods"`
	Routines  int `json:"routines"`
	Instances int `json:"routine_instances"`
	Burden    int `json:"burden_assessments"`
	Notes     int `json:"notes"`
}

var seedMoods = []string{"calm", "content", "anxious", "tired", "neutral", "irritable", "relaxed"}

// SeedEvents writes a deterministic demo history covering the given number of
// days ending on now's calendar day. The later half of the history trends
// worse so that a fresh snapshot shows highlights.
func SeedEvents(ctx context.Context, es *SQLEventSource, entityID string, now time.Time, days int) (SeedSummary, error) {
	var summary SeedSummary
	if days <= 0 {
		return summary, fmt.Errorf("days must be positive (received %d)", days)
	}

	today := schema.StartOfDay(now)
	start := today.AddDate(0, 0, -(days - 1))

	routineIDs := []string{entityID + "-morning", entityID + "-evening"}
	for _, id := range routineIDs {
		if err := es.InsertRoutine(ctx, entityID, id, id, start, nil); err != nil {
			return summary, err
		}
		summary.Routines++
	}
	archived := start.AddDate(0, 0, 1)
	if err := es.InsertRoutine(ctx, entityID, entityID+"-retired", "retired", start, &archived); err != nil {
		return summary, err
	}
	summary.Routines++

	for i := range days {
		day := start.AddDate(0, 0, i)
		late := i >= days/2

		medStatus := schema.TaskDone
		if i%3 == 2 || (late && i%2 == 1) {
			medStatus = schema.TaskTodo
		}
		due := day.Add(9 * time.Hour)
		if err := es.InsertTask(ctx, entityID, schema.TaskRecord{
			Title: "Morning medication", Status: medStatus, Type: schema.TaskTypeMedication,
			DueDate: &due, UpdatedAt: due,
		}); err != nil {
			return summary, err
		}
		summary.Tasks++

		if i%2 == 0 {
			chore := day.Add(15 * time.Hour)
			status := schema.TaskTodo
			if !late {
				status = schema.TaskDone
			}
			if err := es.InsertTask(ctx, entityID, schema.TaskRecord{
				Title: "Pick up groceries", Status: status, Type: schema.TaskTypeGeneral,
				DueDate: &chore, UpdatedAt: chore,
			}); err != nil {
				return summary, err
			}
			summary.Tasks++
		}

		rating := seedMoods[i%len(seedMoods)]
		if late && i%2 == 0 {
			rating = "restless"
		}
		if err := es.InsertMood(ctx, entityID, schema.MoodRecord{Rating: rating, ObservedAt: day.Add(12 * time.Hour)}); err != nil {
			return summary, err
		}
		summary.Moods++

		for j, id := range routineIDs {
			answers := map[string]any{"done": true}
			if late && j == 1 {
				answers = map[string]any{}
			}
			if err := es.InsertRoutineInstance(ctx, entityID, schema.RoutineInstance{RoutineID: id, Date: day, Answers: answers}); err != nil {
				return summary, err
			}
			summary.Instances++
		}

		if i%7 == 6 {
			score := 30.0 + float64(i)
			if err := es.InsertBurdenAssessment(ctx, entityID, schema.BurdenAssessment{Score: score, SubmittedAt: day.Add(20 * time.Hour)}); err != nil {
				return summary, err
			}
			summary.Burden++
		}

		if err := es.InsertNote(ctx, entityID, day.Add(18*time.Hour)); err != nil {
			return summary, err
		}
		summary.Notes++
	}

	return summary, nil
}
