package schema_test

import (
	"testing"
	"time"

	"github.com/fivetwenty-io/hevy-client/internal/schema"
	"github.com/fivetwenty-io/hevy-client/pkg/hevy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const workoutYAML = `
title: Morning Run
description: easy pace
start_time: "2024-08-14T06:00:00Z"
end_time: "2024-08-14T06:45:00Z"
is_private: true
mood: great
exercises:
  - exercise_template_id: "AC1BB830"
    sets:
      - type: normal
        distance_meters: 8000
        duration_seconds: 2700
`

func TestDecode_YAML(t *testing.T) {
	t.Parallel()

	var workout hevy.WorkoutCreate

	err := schema.Decode([]byte(workoutYAML), schema.FormatYAML, &workout)
	require.NoError(t, err)

	assert.Equal(t, "Morning Run", workout.Title)
	require.NotNil(t, workout.Description)
	assert.Equal(t, "easy pace", *workout.Description)
	assert.Equal(t, time.Date(2024, 8, 14, 6, 45, 0, 0, time.UTC), workout.EndTime.UTC())
	require.NotNil(t, workout.IsPrivate)
	assert.True(t, *workout.IsPrivate)
	require.Len(t, workout.Exercises, 1)
	require.Len(t, workout.Exercises[0].Sets, 1)
	assert.InDelta(t, 8000, *workout.Exercises[0].Sets[0].DistanceMeters, 0.001)
}

func TestDecode_JSON(t *testing.T) {
	t.Parallel()

	input := `{"title":"T","start_time":"2024-08-14T06:00:00Z","end_time":"2024-08-14T07:00:00Z","is_private":false,"exercises":[]}`

	var workout hevy.WorkoutCreate

	err := schema.Decode([]byte(input), schema.FormatJSON, &workout)
	require.NoError(t, err)

	_, err = schema.New().ValidateWorkout(&workout)
	require.NoError(t, err)
}

func TestDecode_TypeMismatch(t *testing.T) {
	t.Parallel()

	input := `{
		"title": "T",
		"is_private": "yes",
		"start_time": "last tuesday",
		"exercises": [
			{"exercise_template_id": "X", "sets": [{"type": "normal", "reps": 2.5}, {"type": "normal", "weight_kg": "heavy"}]},
			"squat"
		]
	}`

	var workout hevy.WorkoutCreate

	err := schema.Decode([]byte(input), schema.FormatJSON, &workout)

	var validationErr *hevy.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []hevy.FieldError{
		{Path: "start_time", Message: "must be an RFC 3339 timestamp"},
		{Path: "is_private", Message: "must be a boolean"},
		{Path: "exercises.0.sets.0.reps", Message: "must be an integer"},
		{Path: "exercises.0.sets.1.weight_kg", Message: "must be numeric"},
		{Path: "exercises.1", Message: "must be an object"},
	}, validationErr.Fields)

	assert.Equal(t, "T", workout.Title)
	assert.Nil(t, workout.IsPrivate)
	require.Len(t, workout.Exercises, 2)
	require.Len(t, workout.Exercises[0].Sets, 2)
	assert.Equal(t, "X", workout.Exercises[0].ExerciseTemplateID)
	assert.Nil(t, workout.Exercises[0].Sets[1].WeightKg)
	assert.Equal(t, "normal", workout.Exercises[0].Sets[1].Type)
}

func TestDecode_RootMismatch(t *testing.T) {
	t.Parallel()

	var workout hevy.WorkoutCreate

	err := schema.Decode([]byte(`["not", "a", "workout"]`), schema.FormatJSON, &workout)

	var validationErr *hevy.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Len(t, validationErr.Fields, 1)
	assert.Equal(t, "value: must be an object", validationErr.Fields[0].String())
}

func TestDecode_InvalidTarget(t *testing.T) {
	t.Parallel()

	var workout hevy.WorkoutCreate

	err := schema.Decode([]byte(`{}`), schema.FormatJSON, workout)
	require.Error(t, err)
	assert.False(t, hevy.IsValidationError(err))
}

func TestValidator_DecodeWorkout(t *testing.T) {
	t.Parallel()

	t.Run("reports every violation", func(t *testing.T) {
		t.Parallel()

		input := `{"exercises":[{"exercise_template_id":"X","sets":[{"type":"normal"},{"type":"normal"},{"weight_kg":"heavy"}]}]}`

		_, err := schema.New().DecodeWorkout([]byte(input), schema.FormatJSON)

		var validationErr *hevy.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, []string{
			"exercises.0.sets.2.weight_kg",
			"title",
			"start_time",
			"end_time",
			"is_private",
			"exercises.0.sets.2.type",
		}, validationErr.Paths())
		assert.Equal(t, "must be numeric", validationErr.Fields[0].Message)
		assert.Contains(t, validationErr.Error(), "exercises.0.sets.2.weight_kg: must be numeric\ntitle: is required")
	})

	t.Run("mismatched field is reported once", func(t *testing.T) {
		t.Parallel()

		input := `{"title":123,"start_time":"2024-08-14T06:00:00Z","end_time":"2024-08-14T07:00:00Z","is_private":false,"exercises":[7]}`

		_, err := schema.New().DecodeWorkout([]byte(input), schema.FormatJSON)

		var validationErr *hevy.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, []hevy.FieldError{
			{Path: "title", Message: "must be a string"},
			{Path: "exercises.0", Message: "must be an object"},
		}, validationErr.Fields)
	})

	t.Run("valid YAML", func(t *testing.T) {
		t.Parallel()

		workout, err := schema.New().DecodeWorkout([]byte(workoutYAML), schema.FormatYAML)
		require.NoError(t, err)
		assert.Equal(t, "Morning Run", workout.Title)
	})

	t.Run("malformed input", func(t *testing.T) {
		t.Parallel()

		_, err := schema.New().DecodeWorkout([]byte("{"), schema.FormatJSON)

		var validationErr *hevy.ValidationError
		require.ErrorAs(t, err, &validationErr)
		require.Len(t, validationErr.Fields, 1)
		assert.Empty(t, validationErr.Fields[0].Path)
	})
}

func TestDecode_Malformed(t *testing.T) {
	t.Parallel()

	var workout hevy.WorkoutCreate

	err := schema.Decode([]byte("title: [unterminated"), schema.FormatYAML, &workout)
	assert.True(t, hevy.IsValidationError(err))

	err = schema.Decode([]byte("{"), schema.FormatJSON, &workout)
	assert.True(t, hevy.IsValidationError(err))
}
