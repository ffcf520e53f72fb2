package hevy

import (
	"time"

	"github.com/fivetwenty-io/hevy-client/internal/constants"
)

// MaxPageSize is the largest page size the workouts list endpoint accepts.
const MaxPageSize = constants.MaxPageSize

// Common set types. The API owns the list, so other values are passed through.
const (
	SetTypeWarmup  = "warmup"
	SetTypeNormal  = "normal"
	SetTypeFailure = "failure"
	SetTypeDropset = "dropset"
)

// WorkoutCreate is the candidate payload for creating a workout. Only the
// fields declared here are ever sent; validation runs before any request.
type WorkoutCreate struct {
	Title       string     `json:"title"                 yaml:"title"                 validate:"required"`
	Description *string    `json:"description,omitempty" yaml:"description,omitempty"`
	StartTime   time.Time  `json:"start_time"            yaml:"start_time"            validate:"required"`
	EndTime     time.Time  `json:"end_time"              yaml:"end_time"              validate:"required"`
	IsPrivate   *bool      `json:"is_private"            yaml:"is_private"            validate:"required"`
	Exercises   []Exercise `json:"exercises"             yaml:"exercises"             validate:"dive"`
}

// Exercise is one exercise within a workout.
type Exercise struct {
	ExerciseTemplateID string  `json:"exercise_template_id"  yaml:"exercise_template_id"  validate:"required"`
	SupersetID         *string `json:"superset_id,omitempty" yaml:"superset_id,omitempty"`
	Notes              *string `json:"notes,omitempty"       yaml:"notes,omitempty"`
	Sets               []Set   `json:"sets,omitempty"        yaml:"sets,omitempty"        validate:"dive"`
}

// Set is one set within an exercise.
type Set struct {
	Type            string   `json:"type"                       yaml:"type"                       validate:"required"`
	WeightKg        *float64 `json:"weight_kg,omitempty"        yaml:"weight_kg,omitempty"        validate:"omitempty,gte=0"`
	Reps            *int     `json:"reps,omitempty"             yaml:"reps,omitempty"             validate:"omitempty,gte=0"`
	DistanceMeters  *float64 `json:"distance_meters,omitempty"  yaml:"distance_meters,omitempty"  validate:"omitempty,gte=0"`
	DurationSeconds *int     `json:"duration_seconds,omitempty" yaml:"duration_seconds,omitempty" validate:"omitempty,gte=0"`
	CustomMetric    *float64 `json:"custom_metric,omitempty"    yaml:"custom_metric,omitempty"`
	RPE             *float64 `json:"rpe,omitempty"              yaml:"rpe,omitempty"`
}

// Bool returns a pointer to v, for optional and required-pointer fields.
func Bool(v bool) *bool { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }
