package schema

import "github.com/fivetwenty-io/hevy-client/pkg/hevy"

// cloneWorkout deep-copies a workout so the validated payload never shares
// memory with the caller's candidate. A nil exercise list becomes empty
// because the API expects the key to be present.
func cloneWorkout(workout hevy.WorkoutCreate) hevy.WorkoutCreate {
	clone := hevy.WorkoutCreate{
		Title:       workout.Title,
		Description: clonePtr(workout.Description),
		StartTime:   workout.StartTime,
		EndTime:     workout.EndTime,
		IsPrivate:   clonePtr(workout.IsPrivate),
		Exercises:   make([]hevy.Exercise, 0, len(workout.Exercises)),
	}

	for _, exercise := range workout.Exercises {
		clone.Exercises = append(clone.Exercises, cloneExercise(exercise))
	}

	return clone
}

func cloneExercise(exercise hevy.Exercise) hevy.Exercise {
	clone := hevy.Exercise{
		ExerciseTemplateID: exercise.ExerciseTemplateID,
		SupersetID:         clonePtr(exercise.SupersetID),
		Notes:              clonePtr(exercise.Notes),
	}

	if exercise.Sets != nil {
		clone.Sets = make([]hevy.Set, 0, len(exercise.Sets))
	}

	for _, set := range exercise.Sets {
		clone.Sets = append(clone.Sets, hevy.Set{
			Type:            set.Type,
			WeightKg:        clonePtr(set.WeightKg),
			Reps:            clonePtr(set.Reps),
			DistanceMeters:  clonePtr(set.DistanceMeters),
			DurationSeconds: clonePtr(set.DurationSeconds),
			CustomMetric:    clonePtr(set.CustomMetric),
			RPE:             clonePtr(set.RPE),
		})
	}

	return clone
}

func clonePtr[T any](value *T) *T {
	if value == nil {
		return nil
	}

	clone := *value

	return &clone
}
