package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/hevy-client/internal/constants"
	"github.com/fivetwenty-io/hevy-client/pkg/hevy"
)

const createWorkoutYAML = `
title: Friday Leg Day
start_time: "2024-08-14T12:00:00Z"
end_time: "2024-08-14T13:00:00Z"
is_private: false
exercises:
  - exercise_template_id: D04AC939
    sets:
      - type: normal
        weight_kg: 100
        reps: 10
`

func TestNewWorkoutsCommand(t *testing.T) {
	cmd := NewWorkoutsCommand()
	assert.Equal(t, "workouts", cmd.Use)
	assert.Equal(t, []string{"workout", "w"}, cmd.Aliases)

	var commandNames []string
	for _, subcmd := range cmd.Commands() {
		commandNames = append(commandNames, subcmd.Name())
	}

	assert.ElementsMatch(t, []string{"list", "count", "get", "create"}, commandNames)

	list := findSubcommand(cmd, "list")
	require.NotNil(t, list)
	assert.Equal(t, "1", list.Flags().Lookup("page").DefValue)
	assert.Equal(t, "5", list.Flags().Lookup("page-size").DefValue)

	create := findSubcommand(cmd, "create")
	require.NotNil(t, create)
	assert.Equal(t, "f", create.Flags().Lookup("file").Shorthand)
}

func TestWorkoutsCount(t *testing.T) {
	isolateEnvironment(t)

	stub := newAPIStub(t, http.StatusOK, `{"workout_count":42}`)

	out, err := executeCommand(t, nil, "workouts", "count", "--api", stub.URL, "--api-key", "cli-key", "--output", "json")
	require.NoError(t, err)

	var result map[string]int

	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 42, result["workout_count"])

	requests := stub.captured()
	require.Len(t, requests, 1)
	assert.Equal(t, "/v1/workouts/count", requests[0].path)
	assert.Equal(t, "cli-key", requests[0].apiKey)
}

func TestWorkoutsList(t *testing.T) {
	isolateEnvironment(t)

	stub := newAPIStub(t, http.StatusOK,
		`{"page":2,"page_count":4,"workouts":[{"id":"w-1","title":"Push","start_time":"2024-08-14T12:00:00Z","exercises":[{},{}]}]}`)

	t.Setenv("HEVY_API_KEY", "env-key")

	out, err := executeCommand(t, nil, "workouts", "list", "--api", stub.URL, "--page", "2", "--page-size", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "w-1")
	assert.Contains(t, out, "Push")
	assert.Contains(t, out, "Page 2 of 4")

	requests := stub.captured()
	require.Len(t, requests, 1)
	assert.Equal(t, "env-key", requests[0].apiKey)
	assert.Contains(t, requests[0].query, "page=2")
	assert.Contains(t, requests[0].query, "pageSize=10")
}

func TestWorkoutsList_InvalidPageSize(t *testing.T) {
	isolateEnvironment(t)

	stub := newAPIStub(t, http.StatusOK, `{}`)

	_, err := executeCommand(t, nil, "workouts", "list", "--api", stub.URL, "--api-key", "k", "--page-size", "11")
	require.ErrorIs(t, err, hevy.ErrInvalidPageSize)
	assert.Empty(t, stub.captured())
}

func TestWorkoutsGet_NotFound(t *testing.T) {
	isolateEnvironment(t)

	stub := newAPIStub(t, http.StatusNotFound, `{"error":"Workout not found"}`)

	_, err := executeCommand(t, nil, "workouts", "get", "missing-id", "--api", stub.URL, "--api-key", "k")
	require.Error(t, err)
	assert.True(t, hevy.IsNotFound(err))
	assert.Contains(t, err.Error(), "Workout not found")
}

func TestWorkoutsGet_YAML(t *testing.T) {
	isolateEnvironment(t)

	stub := newAPIStub(t, http.StatusOK, `{"id":"abc","title":"Legs"}`)

	out, err := executeCommand(t, nil, "workouts", "get", " abc ", "--api", stub.URL, "--api-key", "k", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "title: Legs")

	requests := stub.captured()
	require.Len(t, requests, 1)
	assert.Equal(t, "/v1/workouts/abc", requests[0].path)
}

func TestWorkoutsCreate(t *testing.T) {
	isolateEnvironment(t)

	stub := newAPIStub(t, http.StatusCreated, `{"workout":[{"id":"new-id","title":"Friday Leg Day"}]}`)

	file := filepath.Join(t.TempDir(), "workout.yaml")
	require.NoError(t, os.WriteFile(file, []byte(createWorkoutYAML), 0o600))

	out, err := executeCommand(t, nil, "workouts", "create", "--file", file, "--api", stub.URL, "--api-key", "k")
	require.NoError(t, err)
	assert.Contains(t, out, "new-id")

	requests := stub.captured()
	require.Len(t, requests, 1)
	assert.Equal(t, http.MethodPost, requests[0].method)

	var envelope map[string]map[string]interface{}

	require.NoError(t, json.Unmarshal(requests[0].body, &envelope))
	assert.Equal(t, "Friday Leg Day", envelope["workout"]["title"])
}

func TestWorkoutsCreate_FromStdin(t *testing.T) {
	isolateEnvironment(t)

	stub := newAPIStub(t, http.StatusCreated, `{"workout":[]}`)

	out, err := executeCommand(t, strings.NewReader(createWorkoutYAML),
		"workouts", "create", "-f", "-", "--api", stub.URL, "--api-key", "k")
	require.NoError(t, err)
	assert.Contains(t, out, "Workout created")
	assert.Len(t, stub.captured(), 1)
}

func TestWorkoutsCreate_InvalidInput(t *testing.T) {
	isolateEnvironment(t)

	stub := newAPIStub(t, http.StatusCreated, `{}`)
	dir := t.TempDir()

	t.Run("missing title", func(t *testing.T) {
		file := filepath.Join(dir, "untitled.yml")
		content := strings.Replace(createWorkoutYAML, "title: Friday Leg Day\n", "", 1)
		require.NoError(t, os.WriteFile(file, []byte(content), 0o600))

		_, err := executeCommand(t, nil, "workouts", "create", "--file", file, "--api", stub.URL, "--api-key", "k")

		var validationErr *hevy.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, []string{"title"}, validationErr.Paths())
	})

	t.Run("wrong type", func(t *testing.T) {
		file := filepath.Join(dir, "typed.json")
		require.NoError(t, os.WriteFile(file, []byte(`{"title":123}`), 0o600))

		_, err := executeCommand(t, nil, "workouts", "create", "--file", file, "--api", stub.URL, "--api-key", "k")

		var validationErr *hevy.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, []string{"title", "start_time", "end_time", "is_private"}, validationErr.Paths())
		assert.Equal(t, "must be a string", validationErr.Fields[0].Message)
	})

	t.Run("nested type errors", func(t *testing.T) {
		file := filepath.Join(dir, "nested.yaml")
		content := strings.Replace(createWorkoutYAML, "weight_kg: 100", "weight_kg: heavy", 1)
		require.NoError(t, os.WriteFile(file, []byte(content), 0o600))

		_, err := executeCommand(t, nil, "workouts", "create", "--file", file, "--api", stub.URL, "--api-key", "k")

		var validationErr *hevy.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, []string{"exercises.0.sets.0.weight_kg"}, validationErr.Paths())
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := executeCommand(t, nil, "workouts", "create", "--file", "workout.txt", "--api", stub.URL, "--api-key", "k")
		require.ErrorIs(t, err, constants.ErrUnsupportedFileFormat)
	})

	t.Run("no file", func(t *testing.T) {
		_, err := executeCommand(t, nil, "workouts", "create", "--api", stub.URL, "--api-key", "k")
		require.ErrorIs(t, err, constants.ErrWorkoutFileRequired)
	})

	assert.Empty(t, stub.captured())
}

func TestWorkouts_NoAPIKey(t *testing.T) {
	isolateEnvironment(t)

	_, err := executeCommand(t, nil, "workouts", "count")
	require.ErrorIs(t, err, constants.ErrNoAPIKeyConfigured)
}

func TestWorkouts_Unauthorized(t *testing.T) {
	isolateEnvironment(t)

	stub := newAPIStub(t, http.StatusUnauthorized, `{"error":"Unauthorized"}`)

	_, err := executeCommand(t, nil, "workouts", "count", "--api", stub.URL, "--api-key", "revoked")
	require.Error(t, err)
	assert.True(t, hevy.IsAuthenticationError(err))
	assert.Equal(t, "failed to count workouts: API request failed: invalid API key", err.Error())
}

type pagedWorkouts struct {
	hevy.WorkoutsClient

	mu    sync.Mutex
	pages []int
}

func (p *pagedWorkouts) List(_ context.Context, page, pageSize int) (hevy.Record, error) {
	if page < 1 {
		return nil, hevy.NewRequestError(hevy.ErrInvalidPage)
	}

	p.mu.Lock()
	p.pages = append(p.pages, page)
	p.mu.Unlock()

	workouts := make([]any, 0, pageSize)
	for index := range pageSize {
		workouts = append(workouts, map[string]any{"id": fmt.Sprintf("p%d-w%d", page, index)})
	}

	return hevy.Record{"page": float64(page), "page_count": float64(9), "workouts": workouts}, nil
}

func TestFetchWorkoutPages(t *testing.T) {
	t.Run("merges pages in order", func(t *testing.T) {
		fake := &pagedWorkouts{}

		result, err := fetchWorkoutPages(context.Background(), fake, 2, 2, 3)
		require.NoError(t, err)

		var ids []string
		for _, workout := range result.Records("workouts") {
			ids = append(ids, workout["id"].(string))
		}

		assert.Equal(t, []string{"p2-w0", "p2-w1", "p3-w0", "p3-w1", "p4-w0", "p4-w1"}, ids)
		assert.ElementsMatch(t, []int{2, 3, 4}, fake.pages)

		pageCount, ok := result.Int("page_count")
		require.True(t, ok)
		assert.Equal(t, 9, pageCount)
	})

	t.Run("single page is passed through", func(t *testing.T) {
		fake := &pagedWorkouts{}

		result, err := fetchWorkoutPages(context.Background(), fake, 1, 1, 1)
		require.NoError(t, err)
		assert.Equal(t, float64(1), result["page"])
		assert.Equal(t, []int{1}, fake.pages)
	})

	t.Run("page count is capped", func(t *testing.T) {
		fake := &pagedWorkouts{}

		_, err := fetchWorkoutPages(context.Background(), fake, 1, 10, constants.MaxPages+1)
		require.ErrorIs(t, err, constants.ErrTooManyPages)
		assert.Empty(t, fake.pages)

		_, err = fetchWorkoutPages(context.Background(), fake, 1, 1, 1_000_000_000)
		require.ErrorIs(t, err, constants.ErrTooManyPages)
		assert.Empty(t, fake.pages)
	})

	t.Run("invalid first page makes no calls", func(t *testing.T) {
		fake := &pagedWorkouts{}

		_, err := fetchWorkoutPages(context.Background(), fake, 0, 5, 3)
		require.ErrorIs(t, err, hevy.ErrInvalidPage)
		assert.Empty(t, fake.pages)
	})
}

func TestWorkoutsList_Pages(t *testing.T) {
	isolateEnvironment(t)

	stub := newAPIStub(t, http.StatusOK, `{"page_count":5,"workouts":[{"id":"w"}]}`)

	out, err := executeCommand(t, nil, "workouts", "list", "--pages", "3", "--api", stub.URL, "--api-key", "k", "-o", "json")
	require.NoError(t, err)

	var result map[string]interface{}

	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Len(t, result["workouts"], 3)
	assert.Len(t, stub.captured(), 3)
}

func TestWorkoutsList_TooManyPages(t *testing.T) {
	isolateEnvironment(t)

	stub := newAPIStub(t, http.StatusOK, `{}`)

	_, err := executeCommand(t, nil, "workouts", "list", "--pages", "1000000000", "--api", stub.URL, "--api-key", "k")
	require.ErrorIs(t, err, constants.ErrTooManyPages)
	assert.Empty(t, stub.captured())
}
