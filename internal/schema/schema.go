// Package schema checks create payloads before they are sent. Validation
// never stops at the first problem: every violation in the payload,
// including those nested in lists, is reported in one *hevy.ValidationError.
package schema

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/fivetwenty-io/hevy-client/pkg/hevy"
)

const tagAfterStartTime = "after_start_time"

// Validated holds a payload that passed validation. It can only be built by
// this package, so holding one proves the payload was checked.
type Validated[T any] struct {
	value T
}

// Value returns a copy of the validated payload.
func (v Validated[T]) Value() T {
	return v.value
}

// MarshalJSON encodes the validated payload.
func (v Validated[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.value)
}

// Validator validates create payloads. It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

// New creates a validator with the workout rules registered.
func New() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonFieldName)
	validate.RegisterStructValidation(workoutTimes, hevy.WorkoutCreate{})

	return &Validator{validate: validate}
}

// ValidateWorkout checks a workout candidate and returns its sanitized copy.
func (v *Validator) ValidateWorkout(candidate *hevy.WorkoutCreate) (Validated[hevy.WorkoutCreate], error) {
	return Validate(v, candidate, cloneWorkout)
}

// Validate checks candidate against its struct tags and registered struct
// rules. On success the result holds sanitize(*candidate).
func Validate[T any](v *Validator, candidate *T, sanitize func(T) T) (Validated[T], error) {
	if candidate == nil {
		return Validated[T]{}, &hevy.ValidationError{
			Fields: []hevy.FieldError{{Message: "is required"}},
		}
	}

	err := v.validate.Struct(candidate)
	if err != nil {
		return Validated[T]{}, toValidationError(err)
	}

	return Validated[T]{value: sanitize(*candidate)}, nil
}

func toValidationError(err error) *hevy.ValidationError {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &hevy.ValidationError{Fields: []hevy.FieldError{{Message: err.Error()}}}
	}

	fields := make([]hevy.FieldError, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		fields = append(fields, hevy.FieldError{
			Path:    fieldPath(fieldErr.Namespace()),
			Message: fieldMessage(fieldErr),
		})
	}

	return &hevy.ValidationError{Fields: fields}
}

// fieldPath turns "WorkoutCreate.exercises[0].sets[2].weight_kg" into
// "exercises.0.sets.2.weight_kg".
func fieldPath(namespace string) string {
	_, path, found := strings.Cut(namespace, ".")
	if !found {
		return namespace
	}

	path = strings.ReplaceAll(path, "[", ".")

	return strings.ReplaceAll(path, "]", "")
}

func fieldMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "gte":
		return "must be at least " + fieldErr.Param()
	case "lte":
		return "must be at most " + fieldErr.Param()
	case tagAfterStartTime:
		return "must not be before start_time"
	default:
		return "failed " + fieldErr.Tag() + " check"
	}
}

func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}

	if name == "" {
		return field.Name
	}

	return name
}

func workoutTimes(level validator.StructLevel) {
	workout, ok := level.Current().Interface().(hevy.WorkoutCreate)
	if !ok || workout.StartTime.IsZero() || workout.EndTime.IsZero() {
		return
	}

	if workout.EndTime.Before(workout.StartTime) {
		level.ReportError(workout.EndTime, "end_time", "EndTime", tagAfterStartTime, "")
	}
}
